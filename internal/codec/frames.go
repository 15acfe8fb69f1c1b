package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

const (
	HandshakeSize = 1 + ClockSize
	// FrameSize is shared by turn and termination frames so clients always read the same amount.
	FrameSize    = 1 + TileSize + MoveSize
	RedirectSize = 2
)

type Handshake struct {
	First bool
	Clock uint64
}

func EncodeHandshake(h Handshake) [HandshakeSize]byte {
	var buf [HandshakeSize]byte
	buf[0] = boolByte(h.First)
	clock := EncodeClock(h.Clock)
	copy(buf[1:], clock[:])
	return buf
}

func DecodeHandshake(buf []byte) (Handshake, error) {
	if len(buf) < HandshakeSize {
		return Handshake{}, fmt.Errorf("%w: handshake needs %d bytes, got %d", ErrShortBuffer, HandshakeSize, len(buf))
	}

	clock, err := DecodeClock(buf[1:])
	if err != nil {
		return Handshake{}, err
	}

	return Handshake{First: buf[0] != 0, Clock: clock}, nil
}

// Frame is a decoded server to player message: a turn while Over is false,
// the termination notice otherwise.
type Frame struct {
	Over   bool
	Tile   entity.Tile
	Prev   entity.Move
	Winner bool
	Reason entity.Reason
}

func EncodeTurn(tile entity.Tile, prev entity.Move) [FrameSize]byte {
	var buf [FrameSize]byte
	buf[0] = 0
	PutTile(buf[1:], tile)
	PutMove(buf[1+TileSize:], prev)
	return buf
}

func EncodeTermination(winner bool, reason entity.Reason) [FrameSize]byte {
	var buf [FrameSize]byte
	buf[0] = 1
	buf[1] = boolByte(winner)
	buf[2] = byte(reason)
	return buf
}

func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < FrameSize {
		return Frame{}, fmt.Errorf("%w: frame needs %d bytes, got %d", ErrShortBuffer, FrameSize, len(buf))
	}

	if buf[0] != 0 {
		return Frame{Over: true, Winner: buf[1] != 0, Reason: entity.Reason(buf[2])}, nil
	}

	tile, err := DecodeTile(buf[1:])
	if err != nil {
		return Frame{}, err
	}

	prev, err := DecodeMove(buf[1+TileSize:])
	if err != nil {
		return Frame{}, err
	}

	return Frame{Tile: tile, Prev: prev}, nil
}

// EncodeRedirect tells a lobby connection which port its session listens on.
func EncodeRedirect(port uint16) [RedirectSize]byte {
	var buf [RedirectSize]byte
	binary.BigEndian.PutUint16(buf[:], port)
	return buf
}

func DecodeRedirect(buf []byte) (uint16, error) {
	if len(buf) < RedirectSize {
		return 0, fmt.Errorf("%w: redirect needs %d bytes, got %d", ErrShortBuffer, RedirectSize, len(buf))
	}

	return binary.BigEndian.Uint16(buf), nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
