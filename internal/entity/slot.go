package entity

import "fmt"

// Slot is a board coordinate. X is the column, Y the row; Y grows downwards.
type Slot struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func NewSlot(x, y uint8) Slot {
	return Slot{X: x, Y: y}
}

// Compare orders slots by X, then by Y.
func (that Slot) Compare(other Slot) int {
	switch {
	case that.X < other.X:
		return -1
	case that.X > other.X:
		return 1
	case that.Y < other.Y:
		return -1
	case that.Y > other.Y:
		return 1
	default:
		return 0
	}
}

// Neighbor returns the slot one step towards the side (Top, Right, Bottom or Left).
// ok is false when the step would leave the non-negative quadrant.
func (that Slot) Neighbor(side int) (Slot, bool) {
	switch side {
	case Top:
		if that.Y == 0 {
			return Slot{}, false
		}
		return Slot{X: that.X, Y: that.Y - 1}, true
	case Right:
		if that.X == maxCoordinate {
			return Slot{}, false
		}
		return Slot{X: that.X + 1, Y: that.Y}, true
	case Bottom:
		if that.Y == maxCoordinate {
			return Slot{}, false
		}
		return Slot{X: that.X, Y: that.Y + 1}, true
	case Left:
		if that.X == 0 {
			return Slot{}, false
		}
		return Slot{X: that.X - 1, Y: that.Y}, true
	default:
		return Slot{}, false
	}
}

func (that Slot) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

const maxCoordinate = ^uint8(0)
