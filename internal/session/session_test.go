package session

import (
	"context"
	"testing"

	"github.com/lovejzzz/GrooveLounge/internal/economy"
	"github.com/lovejzzz/GrooveLounge/internal/gacha"
	"github.com/lovejzzz/GrooveLounge/internal/game"
	"github.com/lovejzzz/GrooveLounge/internal/persist"
)

func newTestSession(t *testing.T, seed uint64) *Session {
	t.Helper()
	s, err := New(Params{RNG: gacha.NewSeededRNG(seed)})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// fillSet claims one card of every tier for a (category,type) through
// developer mode, turning it back off afterwards.
func fillSet(s *Session, cat game.Category, typ string) {
	s.SetDeveloperMode(true)
	for _, r := range game.Rarities {
		s.DevAddCard(cat, typ, r)
	}
	s.SetDeveloperMode(false)
}

func TestOpenBoxDebitsAndSetsPending(t *testing.T) {
	s := newTestSession(t, 1)

	card, err := s.OpenBox("conqueror")
	if err != nil {
		t.Fatal(err)
	}
	if s.Balance() != 1900 {
		t.Errorf("balance = %d, want 1900", s.Balance())
	}
	pending := s.Pending()
	if pending == nil || pending.ID != card.ID {
		t.Fatalf("pending = %+v, want the revealed card", pending)
	}
	if s.CurrentBox() != "conqueror" {
		t.Errorf("currentBox = %q", s.CurrentBox())
	}
}

func TestOpenBoxUnknown(t *testing.T) {
	s := newTestSession(t, 1)
	if _, err := s.OpenBox("nope"); err != game.ErrUnknownBox {
		t.Fatalf("expected ErrUnknownBox, got %v", err)
	}
	if s.Balance() != DefaultStartingCoins || s.Pending() != nil {
		t.Fatal("rejected open mutated the session")
	}
}

func TestOpenBoxInsufficientFunds(t *testing.T) {
	s, err := New(Params{RNG: gacha.NewSeededRNG(1), StartCoins: 50})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.OpenBox("conqueror"); err != economy.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if s.Balance() != 50 || s.Pending() != nil {
		t.Fatal("rejected open mutated the session")
	}
}

func TestClaimMovesPendingIntoCollection(t *testing.T) {
	s := newTestSession(t, 2)

	card, err := s.OpenBox("conqueror")
	if err != nil {
		t.Fatal(err)
	}
	out := s.Claim()
	if !out.Claimed || out.Card.ID != card.ID {
		t.Fatalf("claim outcome = %+v", out)
	}
	if s.Pending() != nil {
		t.Error("pending not cleared")
	}
	if got := s.OwnedCount(card.Category, card.Type, card.Rarity); got != 1 {
		t.Errorf("owned count = %d, want 1", got)
	}
}

func TestClaimWithNothingPendingIsNoop(t *testing.T) {
	s := newTestSession(t, 3)
	before := s.Balance()

	out := s.Claim()
	if out.Claimed {
		t.Fatal("claim with nothing pending reported claimed")
	}
	if s.Balance() != before || s.TotalCards() != 0 {
		t.Fatal("no-op claim mutated the session")
	}
}

func TestDiscardForfeitsCard(t *testing.T) {
	s := newTestSession(t, 4)

	if _, err := s.OpenBox("conqueror"); err != nil {
		t.Fatal(err)
	}
	s.Discard()
	if s.Pending() != nil {
		t.Error("pending not cleared")
	}
	if s.TotalCards() != 0 {
		t.Error("discarded card ended up in the collection")
	}
	// the box cost stays spent
	if s.Balance() != 1900 {
		t.Errorf("balance = %d, want 1900", s.Balance())
	}
}

func TestOpenWhilePendingAutoClaims(t *testing.T) {
	s := newTestSession(t, 5)

	first, err := s.OpenBox("conqueror")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.OpenBox("conqueror")
	if err != nil {
		t.Fatal(err)
	}

	// the first card is claimed, not lost
	if got := s.OwnedCount(first.Category, first.Type, first.Rarity); got < 1 {
		t.Error("first card was lost instead of auto-claimed")
	}
	if pending := s.Pending(); pending == nil || pending.ID != second.ID {
		t.Fatalf("pending = %+v, want second card", pending)
	}
	if s.Balance() != 1800 {
		t.Errorf("balance = %d, want 1800", s.Balance())
	}
}

func TestSetCompletionRewardsExactlyOnce(t *testing.T) {
	s := newTestSession(t, 6)

	var completions int
	s.listener = func(e Event) {
		if e.Kind == SetCompleted {
			completions++
		}
	}

	s.SetDeveloperMode(true)
	for i, r := range game.Rarities {
		before := s.Balance()
		s.DevAddCard(game.Instrument, "flute", r)
		credited := s.Balance() - before
		if i < len(game.Rarities)-1 {
			if credited != 0 {
				t.Fatalf("reward paid after %d tiers", i+1)
			}
		} else if credited != economy.SetReward {
			t.Fatalf("ninth tier credited %d, want %d", credited, economy.SetReward)
		}
	}

	// duplicates after completion pay nothing
	before := s.Balance()
	s.DevAddCard(game.Instrument, "flute", game.Classic)
	if s.Balance() != before {
		t.Error("duplicate add after completion paid a reward")
	}
	if completions != 1 {
		t.Errorf("SetCompleted emitted %d times, want 1", completions)
	}
	if sets := s.CompletedSets(); len(sets) != 1 || sets[0] != "instrument-flute" {
		t.Errorf("completedSets = %v", sets)
	}
}

func TestUncompletionAndRecompletionRewardsAgain(t *testing.T) {
	s := newTestSession(t, 7)
	fillSet(s, game.Weapon, "sword")
	if len(s.CompletedSets()) != 1 {
		t.Fatal("set not completed")
	}

	s.SetDeveloperMode(true)
	s.DevRemoveAllCards(game.Weapon, "sword")
	if len(s.CompletedSets()) != 0 {
		t.Fatal("wiping the set did not un-complete it")
	}

	before := s.Balance()
	for _, r := range game.Rarities {
		s.DevAddCard(game.Weapon, "sword", r)
	}
	if s.Balance()-before != economy.SetReward {
		t.Fatalf("re-completion credited %d, want %d", s.Balance()-before, economy.SetReward)
	}
}

func TestSellLastCopyRejected(t *testing.T) {
	s := newTestSession(t, 8)
	s.SetDeveloperMode(true)
	s.DevAddCard(game.Instrument, "flute", game.Classic)
	s.SetDeveloperMode(false)

	before := s.Balance()
	if _, err := s.Sell(game.Instrument, "flute", game.Classic); err != ErrCannotSellLastCopy {
		t.Fatalf("expected ErrCannotSellLastCopy, got %v", err)
	}
	if s.Balance() != before {
		t.Error("rejected sell changed the balance")
	}
	if got := s.OwnedCount(game.Instrument, "flute", game.Classic); got != 1 {
		t.Errorf("owned count = %d, want 1", got)
	}
}

func TestSellUnownedCardRejected(t *testing.T) {
	s := newTestSession(t, 8)
	if _, err := s.Sell(game.Weapon, "sword", game.Gold); err != ErrCannotSellLastCopy {
		t.Fatalf("expected ErrCannotSellLastCopy, got %v", err)
	}
}

func TestSellDuplicateCreditsFixedValue(t *testing.T) {
	s := newTestSession(t, 9)
	s.SetDeveloperMode(true)
	s.DevAddCard(game.Weapon, "dagger", game.Gold)
	s.DevAddCard(game.Weapon, "dagger", game.Gold)
	s.SetDeveloperMode(false)

	before := s.Balance()
	out, err := s.Sell(game.Weapon, "dagger", game.Gold)
	if err != nil {
		t.Fatal(err)
	}
	if out.Credited != game.RarityValue(game.Gold) {
		t.Errorf("credited = %d, want %d", out.Credited, game.RarityValue(game.Gold))
	}
	if s.Balance() != before+out.Credited {
		t.Errorf("balance = %d, want %d", s.Balance(), before+out.Credited)
	}
	if got := s.OwnedCount(game.Weapon, "dagger", game.Gold); got != 1 {
		t.Errorf("owned count = %d, want 1", got)
	}
}

func TestSellSecretCreditsRolledValue(t *testing.T) {
	s := newTestSession(t, 10)
	s.SetDeveloperMode(true)
	s.DevAddCard(game.Character, "robot", game.Secret)
	s.DevAddCard(game.Character, "robot", game.Secret)
	s.SetDeveloperMode(false)

	before := s.Balance()
	out, err := s.Sell(game.Character, "robot", game.Secret)
	if err != nil {
		t.Fatal(err)
	}
	if out.Credited < economy.SecretSaleMin || out.Credited > economy.SecretSaleMax {
		t.Fatalf("secret sale credited %d, outside [%d,%d]", out.Credited, economy.SecretSaleMin, economy.SecretSaleMax)
	}
	// the credited amount is the rolled value, not the sentinel
	if s.Balance() != before+out.Credited {
		t.Errorf("balance = %d, want %d", s.Balance(), before+out.Credited)
	}
}

func TestDebugOpsAreNoopsWithoutDeveloperMode(t *testing.T) {
	s := newTestSession(t, 11)
	before := s.Balance()

	s.DevAddCard(game.Character, "cat", game.Classic)
	s.DevSetBalance(999999)
	if n := s.DevRemoveAllCards(game.Character, "cat"); n != 0 {
		t.Errorf("DevRemoveAllCards removed %d cards", n)
	}
	s.DevReset()

	if s.TotalCards() != 0 || s.Balance() != before {
		t.Fatal("debug operation ran without developer mode")
	}
}

func TestDevResetRestoresFreshState(t *testing.T) {
	s := newTestSession(t, 12)
	fillSet(s, game.Character, "monk")

	s.SetDeveloperMode(true)
	s.DevReset()
	if s.TotalCards() != 0 || len(s.CompletedSets()) != 0 {
		t.Fatal("reset left state behind")
	}
	if s.Balance() != DefaultStartingCoins {
		t.Errorf("balance = %d, want %d", s.Balance(), DefaultStartingCoins)
	}

	// re-completion after the reset rewards again
	before := s.Balance()
	for _, r := range game.Rarities {
		s.DevAddCard(game.Character, "monk", r)
	}
	if s.Balance()-before != economy.SetReward {
		t.Error("re-completion after reset paid no reward")
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	s, err := New(Params{RNG: gacha.NewSeededRNG(13), StartCoins: 250})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, err := s.OpenBox("conqueror"); err != nil && err != economy.ErrInsufficientFunds {
			t.Fatal(err)
		}
		s.Claim()
		if s.Balance() < 0 {
			t.Fatalf("balance went negative: %d", s.Balance())
		}
	}
}

func TestPersistenceAcrossSessions(t *testing.T) {
	store := persist.NewMemoryStore()
	first, err := New(Params{RNG: gacha.NewSeededRNG(14), Store: store})
	if err != nil {
		t.Fatal(err)
	}

	card, err := first.OpenBox("conqueror")
	if err != nil {
		t.Fatal(err)
	}
	first.Claim()
	fillSet(first, game.Instrument, "keys")

	// leave a card pending; it must not survive the restart
	if _, err := first.OpenBox("conqueror"); err != nil {
		t.Fatal(err)
	}

	second, err := New(Params{RNG: gacha.NewSeededRNG(99), Store: store})
	if err != nil {
		t.Fatal(err)
	}
	if second.Balance() != first.Balance() {
		t.Errorf("restored balance = %d, want %d", second.Balance(), first.Balance())
	}
	if got := second.OwnedCount(card.Category, card.Type, card.Rarity); got < 1 {
		t.Error("claimed card did not survive the restart")
	}
	if sets := second.CompletedSets(); len(sets) != 1 || sets[0] != "instrument-keys" {
		t.Errorf("restored completedSets = %v", sets)
	}
	if second.Pending() != nil {
		t.Error("pending card survived the restart")
	}
}

func TestEventsOrderOnOpen(t *testing.T) {
	var kinds []EventKind
	s, err := New(Params{
		RNG:      gacha.NewSeededRNG(15),
		Listener: func(e Event) { kinds = append(kinds, e.Kind) },
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.OpenBox("conqueror"); err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 2 || kinds[0] != CardRevealed || kinds[1] != BalanceChanged {
		t.Fatalf("events = %v", kinds)
	}
}

func TestStoreLoadErrorSurfaces(t *testing.T) {
	if _, err := New(Params{Store: failingStore{}}); err == nil {
		t.Fatal("expected store load error")
	}
}

type failingStore struct{}

func (failingStore) Load(ctx context.Context) ([]byte, error) {
	return nil, context.DeadlineExceeded
}
func (failingStore) Save(ctx context.Context, blob []byte) error { return nil }
