package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

const (
	TileSize  = 7            // 5 edges, 1 reserved byte, 1 attribute
	MoveSize  = TileSize + 3 // tile, x, y, rotation
	ClockSize = 8            // little-endian uint64

	reservedByte  = entity.EdgeCount
	attributeByte = reservedByte + 1
)

var ErrShortBuffer = errors.New("buffer too short")

func EncodeTile(tile entity.Tile) [TileSize]byte {
	var buf [TileSize]byte
	PutTile(buf[:], tile)
	return buf
}

func PutTile(buf []byte, tile entity.Tile) {
	_ = buf[TileSize-1]

	for i, edge := range tile.Edges {
		buf[i] = byte(edge)
	}
	buf[reservedByte] = 0
	buf[attributeByte] = byte(tile.Attribute)
}

func DecodeTile(buf []byte) (entity.Tile, error) {
	if len(buf) < TileSize {
		return entity.Tile{}, fmt.Errorf("%w: tile needs %d bytes, got %d", ErrShortBuffer, TileSize, len(buf))
	}

	var edges [entity.EdgeCount]entity.Edge
	for i := range edges {
		edges[i] = entity.Edge(buf[i])
	}

	return entity.NewTile(edges, entity.Attribute(buf[attributeByte])), nil
}

func EncodeMove(move entity.Move) [MoveSize]byte {
	var buf [MoveSize]byte
	PutMove(buf[:], move)
	return buf
}

func PutMove(buf []byte, move entity.Move) {
	_ = buf[MoveSize-1]

	PutTile(buf, move.Tile)
	buf[TileSize] = move.Slot.X
	buf[TileSize+1] = move.Slot.Y
	buf[TileSize+2] = move.Rotation
}

func DecodeMove(buf []byte) (entity.Move, error) {
	if len(buf) < MoveSize {
		return entity.Move{}, fmt.Errorf("%w: move needs %d bytes, got %d", ErrShortBuffer, MoveSize, len(buf))
	}

	tile, err := DecodeTile(buf)
	if err != nil {
		return entity.Move{}, err
	}

	slot := entity.NewSlot(buf[TileSize], buf[TileSize+1])

	return entity.NewMove(tile, slot, buf[TileSize+2]), nil
}

func EncodeClock(seconds uint64) [ClockSize]byte {
	var buf [ClockSize]byte
	binary.LittleEndian.PutUint64(buf[:], seconds)
	return buf
}

func DecodeClock(buf []byte) (uint64, error) {
	if len(buf) < ClockSize {
		return 0, fmt.Errorf("%w: clock needs %d bytes, got %d", ErrShortBuffer, ClockSize, len(buf))
	}

	return binary.LittleEndian.Uint64(buf), nil
}

// EncodeDeck concatenates one tile frame per deck entry, in deck order.
func EncodeDeck(tiles []entity.Tile) []byte {
	buf := make([]byte, len(tiles)*TileSize)
	for i, tile := range tiles {
		PutTile(buf[i*TileSize:], tile)
	}

	return buf
}

func DecodeDeck(buf []byte) ([]entity.Tile, error) {
	if len(buf)%TileSize != 0 {
		return nil, fmt.Errorf("%w: deck length %d is not a multiple of %d", ErrShortBuffer, len(buf), TileSize)
	}

	tiles := make([]entity.Tile, 0, len(buf)/TileSize)
	for off := 0; off < len(buf); off += TileSize {
		tile, err := DecodeTile(buf[off:])
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, tile)
	}

	return tiles, nil
}
