package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/carcassonne-backend/internal/apperror"
)

// MaxBoardAxis is bounded by the one-byte coordinates of the wire format.
const MaxBoardAxis = int(maxCoordinate) + 1

var ErrInvalidBoardAxis = errors.New("invalid board axis")

// Board is an axis*axis grid plus the frontier: the sorted set of empty on-board
// slots adjacent to a placed tile, or only the center slot while the board is empty.
type Board struct {
	axis     int
	tiles    []Tile
	frontier []Slot
}

func NewBoard(axis int) (*Board, error) {
	if axis < 1 || axis > MaxBoardAxis {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardAxis, axis)
	}

	board := &Board{
		axis:  axis,
		tiles: make([]Tile, axis*axis),
	}
	board.frontier = []Slot{board.Center()}

	return board, nil
}

func (that *Board) Axis() int {
	return that.axis
}

func (that *Board) Center() Slot {
	mid := uint8((that.axis - 1) / 2)
	return NewSlot(mid, mid)
}

func (that *Board) OnBoard(slot Slot) bool {
	return int(slot.X) < that.axis && int(slot.Y) < that.axis
}

func (that *Board) index(slot Slot) int {
	return that.axis*int(slot.X) + int(slot.Y)
}

// TileAt returns the tile on the slot; empty and off-board slots read as an empty tile.
func (that *Board) TileAt(slot Slot) Tile {
	if !that.OnBoard(slot) {
		return Tile{}
	}

	return that.tiles[that.index(slot)]
}

func (that *Board) IsEmpty(slot Slot) bool {
	return that.TileAt(slot).IsEmpty()
}

// IsPlaceable is a binary search over the frontier.
func (that *Board) IsPlaceable(slot Slot) bool {
	_, found := slices.BinarySearchFunc(that.frontier, slot, Slot.Compare)
	return found
}

// Frontier returns a copy of the placeable slots in ascending order.
func (that *Board) Frontier() []Slot {
	return slices.Clone(that.frontier)
}

// Place writes the tile and updates the frontier. The slot must be placeable;
// edge matching is the caller's job.
func (that *Board) Place(slot Slot, tile Tile) error {
	idx, found := slices.BinarySearchFunc(that.frontier, slot, Slot.Compare)
	if !found {
		return fmt.Errorf("%w: %s", apperror.ErrNotPlaceable, slot)
	}

	if tile.IsEmpty() {
		return apperror.ErrEmptyTile
	}

	that.tiles[that.index(slot)] = tile
	that.frontier = slices.Delete(that.frontier, idx, idx+1)

	for _, side := range [...]int{Top, Left, Right, Bottom} {
		neighbor, ok := slot.Neighbor(side)
		if !ok || !that.OnBoard(neighbor) || !that.IsEmpty(neighbor) {
			continue
		}

		at, present := slices.BinarySearchFunc(that.frontier, neighbor, Slot.Compare)
		if present {
			continue
		}

		that.frontier = slices.Insert(that.frontier, at, neighbor)
	}

	return nil
}

// Placed counts the non-empty cells.
func (that *Board) Placed() int {
	count := 0
	for _, tile := range that.tiles {
		if !tile.IsEmpty() {
			count++
		}
	}

	return count
}

func (that *Board) Clone() *Board {
	return &Board{
		axis:     that.axis,
		tiles:    slices.Clone(that.tiles),
		frontier: slices.Clone(that.frontier),
	}
}

// String renders the grid row by row, each tile as a 3x3 block, columns tab separated.
func (that *Board) String() string {
	var sb strings.Builder

	for y := range that.axis {
		for line := range TileLines {
			for x := range that.axis {
				lines := that.TileAt(NewSlot(uint8(x), uint8(y))).Lines()
				sb.WriteString(lines[line])

				if x == that.axis-1 {
					sb.WriteByte('\n')
				} else {
					sb.WriteByte('\t')
				}
			}
		}
	}

	return sb.String()
}
