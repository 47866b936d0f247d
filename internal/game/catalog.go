package game

import "errors"

var ErrUnknownBox = errors.New("unknown box id")

// Catalog is the full static rarity model: the purchasable boxes plus
// the category/type roster. Immutable once built.
type Catalog struct {
	Boxes []BoxDefinition
	Types map[Category][]string

	byID map[string]int
}

// NewCatalog indexes boxes by id. Callers are expected to run Validate
// on anything that did not come from DefaultCatalog.
func NewCatalog(boxes []BoxDefinition, types map[Category][]string) *Catalog {
	c := &Catalog{
		Boxes: boxes,
		Types: types,
		byID:  make(map[string]int, len(boxes)),
	}
	for i, b := range boxes {
		c.byID[b.ID] = i
	}
	return c
}

// Box looks up a box definition by id.
func (c *Catalog) Box(id string) (BoxDefinition, error) {
	i, ok := c.byID[id]
	if !ok {
		return BoxDefinition{}, ErrUnknownBox
	}
	return c.Boxes[i], nil
}

// TypesFor returns the ordered type list of a category.
func (c *Catalog) TypesFor(cat Category) []string {
	return c.Types[cat]
}

// DefaultCatalog returns the shipped game data: three boxes and the
// fixed category rosters.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]BoxDefinition{
			{
				ID:   "conqueror",
				Name: "Conqueror Box",
				Cost: 100,
				Rarities: []RarityEntry{
					{Classic, 0.55},
					{Silver, 0.20},
					{Gold, 0.10},
					{Rare, 0.06},
					{Supreme, 0.035},
					{Epic, 0.025},
					{Legendary, 0.018},
					{Mythic, 0.009},
					{Secret, 0.003},
				},
			},
			{
				ID:   "maestro",
				Name: "Maestro Box",
				Cost: 200,
				Rarities: []RarityEntry{
					{Silver, 0.35},
					{Gold, 0.25},
					{Rare, 0.20},
					{Supreme, 0.10},
					{Epic, 0.06},
					{Legendary, 0.025},
					{Mythic, 0.01},
					{Secret, 0.005},
				},
			},
			{
				ID:   "visionary",
				Name: "Visionary Box",
				Cost: 500,
				Rarities: []RarityEntry{
					{Supreme, 0.45},
					{Epic, 0.25},
					{Legendary, 0.15},
					{Mythic, 0.10},
					{Secret, 0.05},
				},
			},
		},
		map[Category][]string{
			Character:  {"bird", "boat", "cat", "elephant", "monk", "rat", "robot"},
			Weapon:     {"crossbow", "dagger", "pistol", "polearm", "spear", "sword"},
			Instrument: {"bass", "clarinet", "flute", "harmonica", "keys", "saxophone", "trombone", "trumpet", "ukulele", "violin"},
		},
	)
}
