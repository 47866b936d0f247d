package collection

import (
	"strings"

	"github.com/lovejzzz/GrooveLounge/internal/game"
)

// Store holds every owned card id, keyed category → type. The same id
// may appear more than once: each occurrence is one owned copy, kept in
// claim order.
type Store struct {
	owned map[game.Category]map[string][]string
}

// New returns an empty store.
func New() *Store {
	return &Store{owned: make(map[game.Category]map[string][]string)}
}

// FromSnapshot restores a store from a persisted collection map. The
// input is deep-copied; nil maps are tolerated.
func FromSnapshot(snap map[game.Category]map[string][]string) *Store {
	s := New()
	for cat, types := range snap {
		for typ, ids := range types {
			for _, id := range ids {
				s.Add(cat, typ, id)
			}
		}
	}
	return s
}

// Add appends one occurrence, creating category/type entries as needed.
func (s *Store) Add(cat game.Category, typ, cardID string) {
	if s.owned[cat] == nil {
		s.owned[cat] = make(map[string][]string)
	}
	s.owned[cat][typ] = append(s.owned[cat][typ], cardID)
}

// Remove drops the first occurrence of cardID. Returns false when none
// is present. The last-copy rule is enforced by the session, not here.
func (s *Store) Remove(cat game.Category, typ, cardID string) bool {
	ids := s.owned[cat][typ]
	for i, id := range ids {
		if id == cardID {
			s.owned[cat][typ] = append(ids[:i:i], ids[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll drops every card of a (category,type) pair and returns how
// many were removed.
func (s *Store) RemoveAll(cat game.Category, typ string) int {
	n := len(s.owned[cat][typ])
	if n > 0 {
		delete(s.owned[cat], typ)
	}
	return n
}

// OwnedCount counts occurrences of one card id.
func (s *Store) OwnedCount(cat game.Category, typ, cardID string) int {
	n := 0
	for _, id := range s.owned[cat][typ] {
		if id == cardID {
			n++
		}
	}
	return n
}

// IsSetComplete reports whether the distinct rarities owned for a
// (category,type) pair cover all nine tiers. Duplicates don't count;
// order doesn't matter.
func (s *Store) IsSetComplete(cat game.Category, typ string) bool {
	distinct := make(map[game.Rarity]bool)
	for _, id := range s.owned[cat][typ] {
		// ids are "<type>-<rarity>"
		if _, after, ok := strings.Cut(id, "-"); ok {
			distinct[game.Rarity(after)] = true
		}
	}
	for _, r := range game.Rarities {
		if !distinct[r] {
			return false
		}
	}
	return true
}

// TotalCards sums every occurrence across the whole collection.
func (s *Store) TotalCards() int {
	n := 0
	for _, types := range s.owned {
		for _, ids := range types {
			n += len(ids)
		}
	}
	return n
}

// Snapshot returns a deep copy of the collection, with every category
// present even when empty (the persisted layout always carries all
// three).
func (s *Store) Snapshot() map[game.Category]map[string][]string {
	snap := make(map[game.Category]map[string][]string, len(game.Categories))
	for _, cat := range game.Categories {
		snap[cat] = make(map[string][]string)
		for typ, ids := range s.owned[cat] {
			snap[cat][typ] = append([]string(nil), ids...)
		}
	}
	return snap
}
