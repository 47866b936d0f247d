package game

import (
	"fmt"
	"math"
	"strings"
)

// probEpsilon absorbs float accumulation noise when summing a table.
const probEpsilon = 1e-9

// Validate checks semantic constraints of a catalog.
func Validate(c *Catalog) error {
	var errs []string

	if len(c.Boxes) == 0 {
		errs = append(errs, "catalog must define at least one box")
	}

	seenBox := map[string]bool{}
	for _, b := range c.Boxes {
		if b.ID == "" {
			errs = append(errs, "box id must not be empty")
			continue
		}
		if seenBox[b.ID] {
			errs = append(errs, fmt.Sprintf("duplicate box id %q", b.ID))
		}
		seenBox[b.ID] = true

		if b.Cost <= 0 {
			errs = append(errs, fmt.Sprintf("box %q: cost must be >= 1", b.ID))
		}
		if len(b.Rarities) == 0 {
			errs = append(errs, fmt.Sprintf("box %q: rarity table must not be empty", b.ID))
		}

		sum := 0.0
		seenTier := map[Rarity]bool{}
		for i, e := range b.Rarities {
			if !ValidRarity(e.Rarity) {
				errs = append(errs, fmt.Sprintf("box %q: rarities[%d] has unknown tier %q", b.ID, i, e.Rarity))
			}
			if math.IsNaN(e.Prob) || e.Prob < 0 || e.Prob > 1 {
				errs = append(errs, fmt.Sprintf("box %q: rarities[%d] prob must be in [0,1]", b.ID, i))
				continue
			}
			if seenTier[e.Rarity] {
				errs = append(errs, fmt.Sprintf("box %q: tier %q listed twice", b.ID, e.Rarity))
			}
			seenTier[e.Rarity] = true
			sum += e.Prob
		}
		if sum > 1+probEpsilon {
			errs = append(errs, fmt.Sprintf("box %q: rarity probabilities sum to %.4f, must be <= 1", b.ID, sum))
		}
	}

	// Card ids are "<type>-<rarity>" with no category, so a type name
	// shared by two categories would collide in saved collections.
	// Guard the format here instead of changing it.
	typeOwner := map[string]Category{}
	for _, cat := range Categories {
		list := c.Types[cat]
		if len(list) == 0 {
			errs = append(errs, fmt.Sprintf("category %q must have at least one type", cat))
		}
		for _, typ := range list {
			if typ == "" {
				errs = append(errs, fmt.Sprintf("category %q: type name must not be empty", cat))
				continue
			}
			if strings.Contains(typ, "-") {
				errs = append(errs, fmt.Sprintf("category %q: type %q must not contain '-'", cat, typ))
			}
			if owner, ok := typeOwner[typ]; ok && owner != cat {
				errs = append(errs, fmt.Sprintf("type %q appears in both %q and %q", typ, owner, cat))
			}
			typeOwner[typ] = cat
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
