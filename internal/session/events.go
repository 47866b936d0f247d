package session

import "github.com/lovejzzz/GrooveLounge/internal/game"

// EventKind names the notifications a presentation layer can subscribe
// to. The engine never depends on a listener being attached.
type EventKind string

const (
	CardRevealed   EventKind = "card_revealed"
	SetCompleted   EventKind = "set_completed"
	BalanceChanged EventKind = "balance_changed"
)

// Event is one notification. Only the fields relevant to its kind are
// set.
type Event struct {
	Kind    EventKind
	Card    *game.Card // CardRevealed
	SetID   string     // SetCompleted
	Reward  int        // SetCompleted
	Balance int        // BalanceChanged
}

// Listener receives events synchronously, in operation order.
type Listener func(Event)
