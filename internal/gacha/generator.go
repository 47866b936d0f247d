package gacha

import (
	"github.com/lovejzzz/GrooveLounge/internal/game"
)

// Generator draws cards from box rarity tables.
type Generator struct {
	catalog *game.Catalog
	rng     RandomSource
}

// NewGenerator creates a generator over a catalog. A nil rng means the
// crypto default.
func NewGenerator(catalog *game.Catalog, rng RandomSource) *Generator {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Generator{catalog: catalog, rng: rng}
}

// Generate draws one card from the given box.
//
// Category: a single uniform roll split into thirds: [0,.33) character,
// [.33,.66) weapon, [.66,1) instrument. Type: uniform index into the
// category's roster. Rarity: walk the box table in declared order
// accumulating probability; the first tier whose cumulative sum exceeds
// the roll wins. A roll landing past the whole table (probabilities
// summing below 1) falls back to classic rather than failing.
func (g *Generator) Generate(boxID string) (game.Card, error) {
	box, err := g.catalog.Box(boxID)
	if err != nil {
		return game.Card{}, err
	}

	category := g.drawCategory()
	types := g.catalog.TypesFor(category)
	typ := types[g.rng.IntN(len(types))]
	rarity := g.drawRarity(box)

	return game.Card{
		Category: category,
		Type:     typ,
		Rarity:   rarity,
		Value:    game.RarityValue(rarity),
		ID:       game.CardID(typ, rarity),
	}, nil
}

func (g *Generator) drawCategory() game.Category {
	roll := g.rng.Float64()
	switch {
	case roll < 0.33:
		return game.Character
	case roll < 0.66:
		return game.Weapon
	default:
		return game.Instrument
	}
}

func (g *Generator) drawRarity(box game.BoxDefinition) game.Rarity {
	roll := g.rng.Float64()
	cumulative := 0.0
	for _, entry := range box.Rarities {
		cumulative += entry.Prob
		if roll < cumulative {
			return entry.Rarity
		}
	}
	// residual gap
	return game.Classic
}
