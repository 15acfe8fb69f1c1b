package deck

import (
	"math/rand"

	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

// TileCount is the size of the standard deck.
const TileCount = 72

const (
	road  = entity.EdgeRoad
	field = entity.EdgeField
	city  = entity.EdgeCity

	plain     = entity.AttributeNone
	shield    = entity.AttributeShield
	monastery = entity.AttributeMonastery
)

type group struct {
	count      int
	edges      [entity.EdgeCount]entity.Edge
	attributes []entity.Attribute // cycled over count, nil means plain
}

// Tileset: http://russcon.org/RussCon/carcassonne/tiles.html
// The first group is the start tile and must stay first.
var standard = []group{
	{1, [5]entity.Edge{city, road, field, road, road}, nil},
	{1, [5]entity.Edge{city, city, city, city, city}, []entity.Attribute{shield}},
	{1, [5]entity.Edge{road, road, road, road, road}, nil},
	{4, [5]entity.Edge{city, city, field, city, city}, []entity.Attribute{plain, plain, plain, shield}},
	{3, [5]entity.Edge{city, city, road, city, city}, []entity.Attribute{plain, shield, shield}},
	{4, [5]entity.Edge{field, road, road, road, road}, nil},
	{3, [5]entity.Edge{field, city, field, city, city}, []entity.Attribute{plain, shield, shield}},
	{8, [5]entity.Edge{road, field, road, field, road}, nil},
	{5, [5]entity.Edge{city, road, road, city, city}, []entity.Attribute{plain, plain, shield, plain, shield}},
	{5, [5]entity.Edge{city, field, field, city, city}, []entity.Attribute{plain, plain, plain, shield, shield}},
	{9, [5]entity.Edge{field, field, road, road, road}, nil},
	{2, [5]entity.Edge{city, city, field, field, field}, nil},
	{3, [5]entity.Edge{field, city, field, city, field}, nil},
	{2, [5]entity.Edge{field, field, road, field, field}, []entity.Attribute{monastery}},
	{4, [5]entity.Edge{field, field, field, field, field}, []entity.Attribute{monastery}},
	{5, [5]entity.Edge{city, field, field, field, field}, nil},
	{3, [5]entity.Edge{city, road, road, field, road}, nil},
	{3, [5]entity.Edge{city, field, road, road, road}, nil},
	{3, [5]entity.Edge{city, road, road, road, road}, nil},
	{3, [5]entity.Edge{city, road, field, road, road}, nil},
}

// New returns the standard deck in its fixed, unshuffled order.
func New() []entity.Tile {
	tiles := make([]entity.Tile, 0, TileCount)

	for _, g := range standard {
		for i := range g.count {
			attribute := plain
			if len(g.attributes) > 0 {
				attribute = g.attributes[i%len(g.attributes)]
			}

			tiles = append(tiles, entity.NewTile(g.edges, attribute))
		}
	}

	return tiles
}

// Shuffle permutes tiles[1:] in place with the given source; the start tile never moves.
func Shuffle(tiles []entity.Tile, rng *rand.Rand) {
	if len(tiles) < 2 {
		return
	}

	rest := tiles[1:]
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
}
