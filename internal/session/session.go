package session

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/lovejzzz/GrooveLounge/internal/collection"
	"github.com/lovejzzz/GrooveLounge/internal/economy"
	"github.com/lovejzzz/GrooveLounge/internal/gacha"
	"github.com/lovejzzz/GrooveLounge/internal/game"
	"github.com/lovejzzz/GrooveLounge/internal/persist"
)

var ErrCannotSellLastCopy = errors.New("cannot sell the last copy of a card")

// DefaultStartingCoins is the fresh-profile balance.
const DefaultStartingCoins = 2000

// Params configures a session. Catalog defaults to the shipped one,
// RNG to the crypto source, StartCoins to DefaultStartingCoins. Store
// and Listener are optional.
type Params struct {
	Catalog    *game.Catalog
	RNG        gacha.RandomSource
	StartCoins int
	Store      persist.Store
	Listener   Listener
}

// Session owns one player's engine state: the coin ledger, the card
// collection, completed sets, and the single pending-card lifecycle
// (buy box → reveal → claim or discard). Not safe for concurrent use;
// callers serialize per session.
type Session struct {
	catalog *game.Catalog
	gen     *gacha.Generator
	ledger  *economy.Ledger
	cards   *collection.Store

	completed    []string // set ids, in completion order
	completedIdx map[string]bool

	pending    *game.Card
	currentBox string
	devMode    bool

	startCoins int
	store      persist.Store
	listener   Listener
}

// New builds a session, restoring persisted state from the store when
// one is attached. A malformed blob degrades field-by-field to a fresh
// profile; only store I/O failures are surfaced.
func New(p Params) (*Session, error) {
	if p.Catalog == nil {
		p.Catalog = game.DefaultCatalog()
	}
	if p.StartCoins <= 0 {
		p.StartCoins = DefaultStartingCoins
	}

	st := persist.Defaults(p.StartCoins)
	if p.Store != nil {
		blob, err := p.Store.Load(context.Background())
		if err != nil {
			return nil, err
		}
		st, err = persist.Decode(blob, p.StartCoins)
		if err != nil {
			log.WithError(err).Warn("saved state unreadable, starting fresh")
		}
	}

	s := &Session{
		catalog:      p.Catalog,
		gen:          gacha.NewGenerator(p.Catalog, p.RNG),
		ledger:       economy.NewLedger(st.Coins, p.RNG),
		cards:        collection.FromSnapshot(st.Collection),
		completed:    append([]string(nil), st.CompletedSets...),
		completedIdx: make(map[string]bool, len(st.CompletedSets)),
		startCoins:   p.StartCoins,
		store:        p.Store,
		listener:     p.Listener,
	}
	for _, id := range s.completed {
		s.completedIdx[id] = true
	}
	return s, nil
}

// ClaimOutcome reports what claiming the pending card did.
type ClaimOutcome struct {
	Claimed      bool       `json:"claimed"`
	Card         *game.Card `json:"card,omitempty"`
	SetCompleted bool       `json:"setCompleted"`
	SetID        string     `json:"setId,omitempty"`
	Reward       int        `json:"reward,omitempty"`
}

// SellOutcome reports a card sale.
type SellOutcome struct {
	Credited       int  `json:"credited"`
	SetUncompleted bool `json:"setUncompleted"`
}

// OpenBox buys a box and reveals a card, leaving it pending. A card
// still pending from an earlier open is claimed first rather than
// silently overwritten, and only then is the cost checked, so a claim
// that pays a completion reward can fund the purchase. Unknown boxes
// are rejected with no state change.
func (s *Session) OpenBox(boxID string) (game.Card, error) {
	box, err := s.catalog.Box(boxID)
	if err != nil {
		return game.Card{}, err
	}

	// resolve a leftover reveal before the new purchase; its completion
	// reward, if any, counts toward affordability
	if s.pending != nil {
		s.Claim()
	}

	if !s.ledger.CanAfford(box.Cost) {
		return game.Card{}, economy.ErrInsufficientFunds
	}
	if err := s.ledger.Debit(box.Cost); err != nil {
		return game.Card{}, err
	}
	card, err := s.gen.Generate(boxID)
	if err != nil {
		// box existed a moment ago; undo the debit just in case
		_ = s.ledger.Credit(box.Cost)
		return game.Card{}, err
	}

	s.pending = &card
	s.currentBox = boxID

	log.WithFields(log.Fields{
		"box":    boxID,
		"card":   card.ID,
		"rarity": card.Rarity,
	}).Debug("box opened")

	s.emit(Event{Kind: CardRevealed, Card: &card})
	s.emitBalance()
	s.flush()
	return card, nil
}

// Claim moves the pending card into the collection, pays the set
// reward when it completes a set that wasn't already complete, and
// returns to idle. With nothing pending it is a no-op, not an error.
func (s *Session) Claim() ClaimOutcome {
	if s.pending == nil {
		return ClaimOutcome{}
	}
	card := *s.pending
	s.cards.Add(card.Category, card.Type, card.ID)
	s.pending = nil
	s.currentBox = ""

	out := ClaimOutcome{Claimed: true, Card: &card}
	if setID, reward := s.checkCompletion(card.Category, card.Type); reward > 0 {
		out.SetCompleted = true
		out.SetID = setID
		out.Reward = reward
	}
	s.flush()
	return out
}

// Discard drops the pending card without claiming it. The card is
// forfeited on purpose; the box cost stays spent.
func (s *Session) Discard() {
	if s.pending == nil {
		return
	}
	log.WithField("card", s.pending.ID).Debug("pending card discarded")
	s.pending = nil
	s.currentBox = ""
}

// Sell removes one copy of an owned card and credits its value. The
// last copy can never be sold. Secret cards credit a fresh roll from
// the ledger; everything else credits the fixed tier value. Selling a
// card out of a completed set removes the set from completedSets so a
// later re-completion rewards again.
func (s *Session) Sell(cat game.Category, typ string, r game.Rarity) (SellOutcome, error) {
	cardID := game.CardID(typ, r)
	if s.cards.OwnedCount(cat, typ, cardID) <= 1 {
		return SellOutcome{}, ErrCannotSellLastCopy
	}
	s.cards.Remove(cat, typ, cardID)

	credited := game.RarityValue(r)
	if r == game.Secret {
		credited = s.ledger.ResolveSecretSaleValue()
	}
	_ = s.ledger.Credit(credited)

	out := SellOutcome{Credited: credited}
	if s.uncompleteIfBroken(cat, typ) {
		out.SetUncompleted = true
	}

	log.WithFields(log.Fields{
		"card":     cardID,
		"credited": credited,
	}).Debug("card sold")

	s.emitBalance()
	s.flush()
	return out, nil
}

// SetDeveloperMode toggles the flag gating debug operations.
func (s *Session) SetDeveloperMode(on bool) { s.devMode = on }

func (s *Session) DeveloperMode() bool { return s.devMode }

// DevAddCard inserts an arbitrary card directly, paying the completion
// reward if it finishes a set. Silent no-op outside developer mode.
func (s *Session) DevAddCard(cat game.Category, typ string, r game.Rarity) {
	if !s.devMode || !game.ValidCategory(cat) || !game.ValidRarity(r) {
		return
	}
	s.cards.Add(cat, typ, game.CardID(typ, r))
	s.checkCompletion(cat, typ)
	s.flush()
}

// DevRemoveAllCards wipes every copy of a (category,type), un-completing
// its set if needed. Silent no-op outside developer mode.
func (s *Session) DevRemoveAllCards(cat game.Category, typ string) int {
	if !s.devMode {
		return 0
	}
	n := s.cards.RemoveAll(cat, typ)
	if n > 0 {
		s.uncompleteIfBroken(cat, typ)
		s.flush()
	}
	return n
}

// DevSetBalance overwrites the balance. Silent no-op outside developer
// mode.
func (s *Session) DevSetBalance(coins int) {
	if !s.devMode {
		return
	}
	s.ledger.Set(coins)
	s.emitBalance()
	s.flush()
}

// DevReset wipes collection, completed sets and pending card and puts
// the balance back to the starting amount. Silent no-op outside
// developer mode. Sets completed again after a reset reward again.
func (s *Session) DevReset() {
	if !s.devMode {
		return
	}
	s.cards = collection.New()
	s.completed = nil
	s.completedIdx = make(map[string]bool)
	s.pending = nil
	s.currentBox = ""
	s.ledger.Set(s.startCoins)
	s.emitBalance()
	s.flush()
}

// Balance returns the current coin balance.
func (s *Session) Balance() int { return s.ledger.Balance() }

// Pending returns a copy of the pending card, or nil when idle.
func (s *Session) Pending() *game.Card {
	if s.pending == nil {
		return nil
	}
	card := *s.pending
	return &card
}

// CurrentBox returns the id of the box the pending card came from.
func (s *Session) CurrentBox() string { return s.currentBox }

// CompletedSets returns the completed set ids in completion order.
func (s *Session) CompletedSets() []string {
	return append([]string(nil), s.completed...)
}

// CollectionSnapshot returns a read-only deep copy of the collection.
func (s *Session) CollectionSnapshot() map[game.Category]map[string][]string {
	return s.cards.Snapshot()
}

// OwnedCount counts copies of one card.
func (s *Session) OwnedCount(cat game.Category, typ string, r game.Rarity) int {
	return s.cards.OwnedCount(cat, typ, game.CardID(typ, r))
}

// TotalCards counts every owned copy.
func (s *Session) TotalCards() int { return s.cards.TotalCards() }

// checkCompletion records a newly completed set and pays the reward.
// Already-recorded sets never pay twice.
func (s *Session) checkCompletion(cat game.Category, typ string) (string, int) {
	setID := game.SetID(cat, typ)
	if s.completedIdx[setID] || !s.cards.IsSetComplete(cat, typ) {
		return setID, 0
	}
	s.completedIdx[setID] = true
	s.completed = append(s.completed, setID)
	_ = s.ledger.Credit(economy.SetReward)

	log.WithField("set", setID).Info("set completed")
	s.emit(Event{Kind: SetCompleted, SetID: setID, Reward: economy.SetReward})
	s.emitBalance()
	return setID, economy.SetReward
}

// uncompleteIfBroken drops a recorded completion whose set no longer
// covers all tiers, so re-completing it rewards again.
func (s *Session) uncompleteIfBroken(cat game.Category, typ string) bool {
	setID := game.SetID(cat, typ)
	if !s.completedIdx[setID] || s.cards.IsSetComplete(cat, typ) {
		return false
	}
	delete(s.completedIdx, setID)
	for i, id := range s.completed {
		if id == setID {
			s.completed = append(s.completed[:i:i], s.completed[i+1:]...)
			break
		}
	}
	return true
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}

func (s *Session) emitBalance() {
	s.emit(Event{Kind: BalanceChanged, Balance: s.ledger.Balance()})
}

// flush writes the durable subset of state to the attached store.
// Persistence failures are logged, never surfaced: the in-memory state
// is authoritative.
func (s *Session) flush() {
	if s.store == nil {
		return
	}
	blob, err := persist.Encode(persist.State{
		Coins:         s.ledger.Balance(),
		Collection:    s.cards.Snapshot(),
		CompletedSets: s.CompletedSets(),
	})
	if err != nil {
		log.WithError(err).Error("encode save state")
		return
	}
	if err := s.store.Save(context.Background(), blob); err != nil {
		log.WithError(err).Error("save game state")
	}
}
