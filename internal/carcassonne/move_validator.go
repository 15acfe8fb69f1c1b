package carcassonne

import (
	"fmt"

	"github.com/rocketscienceinc/carcassonne-backend/internal/apperror"
	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

const maxRotation = 3

var sides = [...]int{entity.Top, entity.Right, entity.Bottom, entity.Left}

// Validate - checks the move against the board without touching it.
func Validate(board *entity.Board, move entity.Move) error {
	if !board.IsPlaceable(move.Slot) {
		return fmt.Errorf("%w: %s", apperror.ErrNotPlaceable, move.Slot)
	}

	if move.Rotation > maxRotation {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidRotation, move.Rotation)
	}

	if move.Tile.IsEmpty() {
		return apperror.ErrEmptyTile
	}

	placed := move.Placed()

	for _, side := range sides {
		neighbor, ok := move.Slot.Neighbor(side)
		if !ok || !board.OnBoard(neighbor) {
			continue
		}

		// the neighbor on side d touches us with its edge (d+2)%4
		pair := board.TileAt(neighbor).Edges[(side+2)%len(sides)]
		if pair == entity.EdgeEmpty {
			continue
		}

		if pair != placed.Edges[side] {
			return fmt.Errorf("%w: %s side %d", apperror.ErrEdgeMismatch, neighbor, side)
		}
	}

	return nil
}

// PlayMove - validates the move and places the rotated tile. A rejected move leaves the board unchanged.
func PlayMove(board *entity.Board, move entity.Move) error {
	if err := Validate(board, move); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	if err := board.Place(move.Slot, move.Placed()); err != nil {
		return fmt.Errorf("failed to place tile: %w", err)
	}

	return nil
}
