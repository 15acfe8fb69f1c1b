package entity

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/carcassonne-backend/internal/apperror"
)

var roadTile = NewTile([EdgeCount]Edge{EdgeRoad, EdgeRoad, EdgeRoad, EdgeRoad, EdgeRoad}, AttributeNone)

func newBoard(t *testing.T, axis int) *Board {
	t.Helper()

	board, err := NewBoard(axis)
	require.NoError(t, err)

	return board
}

// bruteFrontier recomputes the frontier by scanning the whole grid.
func bruteFrontier(board *Board) []Slot {
	if board.Placed() == 0 {
		return []Slot{board.Center()}
	}

	frontier := []Slot{}
	for x := range board.Axis() {
		for y := range board.Axis() {
			slot := NewSlot(uint8(x), uint8(y))
			if !board.IsEmpty(slot) {
				continue
			}

			for _, side := range []int{Top, Right, Bottom, Left} {
				neighbor, ok := slot.Neighbor(side)
				if ok && board.OnBoard(neighbor) && !board.IsEmpty(neighbor) {
					frontier = append(frontier, slot)
					break
				}
			}
		}
	}

	return frontier
}

func TestNewBoard(t *testing.T) {
	t.Run("Empty 5x5 board has only the center placeable", func(t *testing.T) {
		// When: creating a 5x5 board
		board := newBoard(t, 5)

		// Then: the frontier is the center slot and every cell is empty
		assert.Equal(t, []Slot{NewSlot(2, 2)}, board.Frontier())
		assert.Equal(t, 0, board.Placed())
		assert.True(t, board.IsPlaceable(NewSlot(2, 2)))
		assert.False(t, board.IsPlaceable(NewSlot(0, 0)))
	})

	t.Run("Invalid axis", func(t *testing.T) {
		for _, axis := range []int{0, -3, MaxBoardAxis + 1} {
			_, err := NewBoard(axis)

			assert.ErrorIs(t, err, ErrInvalidBoardAxis, "axis=%d", axis)
		}
	})

	t.Run("Largest axis still addresses every cell with one byte", func(t *testing.T) {
		board := newBoard(t, MaxBoardAxis)

		assert.True(t, board.OnBoard(NewSlot(255, 255)))
		assert.Equal(t, NewSlot(127, 127), board.Center())
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("First tile on the center opens its four neighbors", func(t *testing.T) {
		// Given: an empty 5x5 board
		board := newBoard(t, 5)

		// When: placing any tile on the center
		err := board.Place(NewSlot(2, 2), roadTile)

		// Then: the frontier holds the four neighbors in coordinate order
		require.NoError(t, err)
		assert.Equal(t, []Slot{
			NewSlot(1, 2),
			NewSlot(2, 1),
			NewSlot(2, 3),
			NewSlot(3, 2),
		}, board.Frontier())
		assert.Equal(t, roadTile, board.TileAt(NewSlot(2, 2)))
	})

	t.Run("Slot outside the frontier is rejected", func(t *testing.T) {
		// Given: an empty board
		board := newBoard(t, 5)
		before := board.Clone()

		// When: placing away from the center
		err := board.Place(NewSlot(0, 0), roadTile)

		// Then: ErrNotPlaceable and the board is untouched
		require.ErrorIs(t, err, apperror.ErrNotPlaceable)
		assert.Equal(t, before, board)
	})

	t.Run("Empty tile is rejected", func(t *testing.T) {
		board := newBoard(t, 5)

		err := board.Place(board.Center(), Tile{})

		require.ErrorIs(t, err, apperror.ErrEmptyTile)
		assert.Equal(t, []Slot{board.Center()}, board.Frontier())
	})

	t.Run("Neighbors off the board are never added", func(t *testing.T) {
		// Given: a 2x2 board whose center is the corner (0,0)
		board := newBoard(t, 2)
		require.Equal(t, NewSlot(0, 0), board.Center())

		// When: placing on the corner
		require.NoError(t, board.Place(NewSlot(0, 0), roadTile))

		// Then: only the two on-board neighbors join the frontier
		assert.Equal(t, []Slot{NewSlot(0, 1), NewSlot(1, 0)}, board.Frontier())
	})

	t.Run("Shared neighbor is inserted once", func(t *testing.T) {
		// Given: tiles on (2,2) and (2,1)
		board := newBoard(t, 5)
		require.NoError(t, board.Place(NewSlot(2, 2), roadTile))
		require.NoError(t, board.Place(NewSlot(2, 1), roadTile))

		// When: placing on (1,2), which touches (1,1) together with (2,1)
		require.NoError(t, board.Place(NewSlot(1, 2), roadTile))

		// Then: the frontier stays strictly sorted without duplicates
		frontier := board.Frontier()
		assert.True(t, slices.IsSortedFunc(frontier, Slot.Compare))
		assert.Equal(t, len(frontier), len(slices.CompactFunc(slices.Clone(frontier), func(a, b Slot) bool { return a == b })))
		assert.Equal(t, bruteFrontier(board), frontier)
	})

	t.Run("Filling a one cell board empties the frontier", func(t *testing.T) {
		board := newBoard(t, 1)

		require.NoError(t, board.Place(NewSlot(0, 0), roadTile))

		assert.Empty(t, board.Frontier())
		assert.False(t, board.IsPlaceable(NewSlot(0, 0)))
	})
}

func TestBoard_FrontierInvariant(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 2024} {
		// Given: a 7x7 board and a seeded source
		board := newBoard(t, 7)
		rng := rand.New(rand.NewSource(seed))

		require.Equal(t, bruteFrontier(board), board.Frontier())

		// When: filling the board one random frontier slot at a time
		for board.Placed() < 49 {
			frontier := board.Frontier()
			require.NotEmpty(t, frontier)

			slot := frontier[rng.Intn(len(frontier))]
			require.NoError(t, board.Place(slot, roadTile))

			// Then: after every step the incremental frontier matches a full rescan
			require.Equal(t, bruteFrontier(board), board.Frontier(), "seed=%d placed=%d", seed, board.Placed())
		}

		assert.Empty(t, board.Frontier())
	}
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one tile and its clone
	board := newBoard(t, 5)
	require.NoError(t, board.Place(board.Center(), roadTile))
	clone := board.Clone()

	// When: the original keeps changing
	require.NoError(t, board.Place(NewSlot(2, 1), roadTile))

	// Then: the clone does not
	assert.True(t, clone.IsEmpty(NewSlot(2, 1)))
	assert.True(t, clone.IsPlaceable(NewSlot(2, 1)))
}

func TestBoard_String(t *testing.T) {
	// Given: a 3x3 board with a tile in the middle
	board := newBoard(t, 3)
	require.NoError(t, board.Place(board.Center(), mixedTile))

	// When: rendering
	rendered := board.String()

	// Then: three lines per row, tab separated columns
	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, " . \tsC \t . ", lines[3])
	assert.Equal(t, "...\tCRF\t...", lines[4])
	assert.Equal(t, " . \t R \t . ", lines[5])
}

func TestSlot_Compare(t *testing.T) {
	assert.Equal(t, -1, NewSlot(1, 9).Compare(NewSlot(2, 0)))
	assert.Equal(t, 1, NewSlot(2, 1).Compare(NewSlot(2, 0)))
	assert.Equal(t, 0, NewSlot(3, 3).Compare(NewSlot(3, 3)))
}

func TestSlot_Neighbor(t *testing.T) {
	t.Run("Decrement past zero is rejected, not wrapped", func(t *testing.T) {
		_, ok := NewSlot(0, 4).Neighbor(Left)
		assert.False(t, ok)

		_, ok = NewSlot(4, 0).Neighbor(Top)
		assert.False(t, ok)
	})

	t.Run("Top is the row above", func(t *testing.T) {
		up, ok := NewSlot(2, 2).Neighbor(Top)

		require.True(t, ok)
		assert.Equal(t, NewSlot(2, 1), up)
	})
}
