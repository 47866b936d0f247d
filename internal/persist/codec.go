package persist

import (
	"encoding/json"
	"fmt"

	"github.com/lovejzzz/GrooveLounge/internal/game"
)

// State is the subset of session state that survives a restart. The
// JSON layout matches the legacy "lootBoxGame" save blob; pending
// cards, the open box and the developer flag are never persisted.
type State struct {
	Coins         int                                   `json:"coins"`
	Collection    map[game.Category]map[string][]string `json:"collection"`
	CompletedSets []string                              `json:"completedSets"`
	// Legacy field older saves carry. Ignored on read, written empty.
	SeenCards []string `json:"seenCards"`
}

// Defaults is a fresh profile: starting coins, an empty collection with
// all three categories present, no completed sets.
func Defaults(startCoins int) State {
	collection := make(map[game.Category]map[string][]string, len(game.Categories))
	for _, cat := range game.Categories {
		collection[cat] = map[string][]string{}
	}
	return State{
		Coins:         startCoins,
		Collection:    collection,
		CompletedSets: []string{},
		SeenCards:     []string{},
	}
}

// Encode serializes a state to the save blob.
func Encode(st State) ([]byte, error) {
	if st.SeenCards == nil {
		st.SeenCards = []string{}
	}
	if st.CompletedSets == nil {
		st.CompletedSets = []string{}
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode save state: %w", err)
	}
	return b, nil
}

// Decode restores a state from a blob. Missing or malformed fields fall
// back field-by-field to Defaults; an empty blob is a fresh profile.
// The returned state is always usable; the error only reports that
// the blob was malformed.
func Decode(blob []byte, startCoins int) (State, error) {
	st := Defaults(startCoins)
	if len(blob) == 0 {
		return st, nil
	}

	var raw struct {
		Coins         *int                                  `json:"coins"`
		Collection    map[game.Category]map[string][]string `json:"collection"`
		CompletedSets []string                              `json:"completedSets"`
	}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return st, fmt.Errorf("malformed save state: %w", err)
	}

	if raw.Coins != nil && *raw.Coins >= 0 {
		st.Coins = *raw.Coins
	}
	for _, cat := range game.Categories {
		for typ, ids := range raw.Collection[cat] {
			st.Collection[cat][typ] = append([]string(nil), ids...)
		}
	}
	if raw.CompletedSets != nil {
		st.CompletedSets = append([]string(nil), raw.CompletedSets...)
	}
	return st, nil
}
