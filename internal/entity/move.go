package entity

type Move struct {
	Tile     Tile  `json:"tile"`
	Slot     Slot  `json:"slot"`
	Rotation uint8 `json:"rotation"`
}

func NewMove(tile Tile, slot Slot, rotation uint8) Move {
	return Move{Tile: tile, Slot: slot, Rotation: rotation}
}

// Placed returns the tile as it lands on the board.
func (that Move) Placed() Tile {
	return that.Tile.Rotate(int(that.Rotation))
}
