package game

// Rarity is one of the nine ordered card tiers.
type Rarity string

const (
	Classic   Rarity = "classic"
	Silver    Rarity = "silver"
	Gold      Rarity = "gold"
	Rare      Rarity = "rare"
	Supreme   Rarity = "supreme"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
	Mythic    Rarity = "mythic"
	Secret    Rarity = "secret"
)

// Rarities lists every tier in ascending order. A set is complete once
// one card of each distinct tier is owned.
var Rarities = []Rarity{Classic, Silver, Gold, Rare, Supreme, Epic, Legendary, Mythic, Secret}

// Category groups card types.
type Category string

const (
	Character  Category = "character"
	Weapon     Category = "weapon"
	Instrument Category = "instrument"
)

var Categories = []Category{Character, Weapon, Instrument}

// VariableValue is the sale value of a secret card before it is resolved.
// The real amount is rolled only when the card is sold.
const VariableValue = -1

var rarityValues = map[Rarity]int{
	Classic:   10,
	Silver:    20,
	Gold:      40,
	Rare:      80,
	Supreme:   150,
	Epic:      225,
	Legendary: 350,
	Mythic:    600,
	Secret:    VariableValue,
}

// RarityValue returns the fixed coin value of a tier, or VariableValue
// for secret.
func RarityValue(r Rarity) int {
	return rarityValues[r]
}

// ValidRarity reports whether r is one of the nine tiers.
func ValidRarity(r Rarity) bool {
	_, ok := rarityValues[r]
	return ok
}

// ValidCategory reports whether c is one of the three categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// RarityEntry is one row of a box's probability table. Table order
// matters: draws walk entries in declared order.
type RarityEntry struct {
	Rarity Rarity  `yaml:"rarity" json:"rarity"`
	Prob   float64 `yaml:"prob" json:"prob"`
}

// BoxDefinition is a purchasable box: a cost and an ordered rarity table.
// Probabilities may sum to less than 1; the residual gap falls back to
// classic at draw time.
type BoxDefinition struct {
	ID       string        `yaml:"id" json:"id"`
	Name     string        `yaml:"name" json:"name"`
	Cost     int           `yaml:"cost" json:"cost"`
	Rarities []RarityEntry `yaml:"rarities" json:"rarities"`
}

// Card is a generated, not-yet-claimed reward.
type Card struct {
	Category Category `json:"category"`
	Type     string   `json:"type"`
	Rarity   Rarity   `json:"rarity"`
	// Value is VariableValue for secret cards until sale time.
	Value int `json:"value"`
	// ID is "<type>-<rarity>". The category is not part of the id; saved
	// games rely on this exact form, so validation keeps type names
	// disjoint across categories instead of changing the format.
	ID string `json:"id"`
}

// CardID builds the legacy "<type>-<rarity>" identifier.
func CardID(typ string, r Rarity) string {
	return typ + "-" + string(r)
}

// SetID identifies a (category,type) set inside completedSets.
func SetID(c Category, typ string) string {
	return string(c) + "-" + typ
}
