package entity

import "strings"

type Edge uint8

const (
	EdgeEmpty Edge = iota
	EdgeRoad
	EdgeField
	EdgeCity
)

// Attribute is carried through unchanged; only scoring would interpret it.
type Attribute uint8

const (
	AttributeNone Attribute = iota
	AttributeShield
	AttributeMonastery
)

// Edge indexes inside Tile.Edges.
const (
	Top = iota
	Right
	Bottom
	Left
	Center

	EdgeCount = 5
	sides     = 4
)

type Tile struct {
	Edges     [EdgeCount]Edge `json:"edges"`
	Attribute Attribute       `json:"attribute"`
}

func NewTile(edges [EdgeCount]Edge, attribute Attribute) Tile {
	return Tile{Edges: edges, Attribute: attribute}
}

// Rotate shifts the four outer edges clockwise by k quarter turns; the center stays.
func (that Tile) Rotate(k int) Tile {
	k %= sides
	if k < 0 {
		k += sides
	}

	rotated := that
	for i := range sides {
		rotated.Edges[(i+k)%sides] = that.Edges[i]
	}

	return rotated
}

func (that Tile) Equal(other Tile) bool {
	return that == other
}

// IsEmpty reports whether every edge is EdgeEmpty, which is how an unplaced cell looks.
func (that Tile) IsEmpty() bool {
	for _, edge := range that.Edges {
		if edge != EdgeEmpty {
			return false
		}
	}

	return true
}

func (that Edge) symbol() byte {
	switch that {
	case EdgeRoad:
		return 'R'
	case EdgeField:
		return 'F'
	case EdgeCity:
		return 'C'
	default:
		return '.'
	}
}

// TileLines is the height of a rendered tile.
const TileLines = 3

// Lines renders the tile as a 3x3 block:
//
//	.T.
//	LCR
//	.B.
func (that Tile) Lines() [TileLines]string {
	mark := byte(' ')
	switch that.Attribute {
	case AttributeShield:
		mark = 's'
	case AttributeMonastery:
		mark = 'm'
	}

	return [TileLines]string{
		string([]byte{mark, that.Edges[Top].symbol(), ' '}),
		string([]byte{that.Edges[Left].symbol(), that.Edges[Center].symbol(), that.Edges[Right].symbol()}),
		string([]byte{' ', that.Edges[Bottom].symbol(), ' '}),
	}
}

func (that Tile) String() string {
	lines := that.Lines()
	return strings.Join(lines[:], "\n")
}
