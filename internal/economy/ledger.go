package economy

import (
	"errors"

	"github.com/lovejzzz/GrooveLounge/internal/gacha"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("credit amount must be >= 0")
)

const (
	// SetReward is paid once per newly completed set.
	SetReward = 1000

	// Secret cards sell for a uniform random amount in this inclusive
	// range, rolled only at sale time.
	SecretSaleMin = 700
	SecretSaleMax = 1500
)

// Ledger is the single coin balance. Debit and Credit can never take it
// negative.
type Ledger struct {
	balance int
	rng     gacha.RandomSource
}

// NewLedger starts a ledger at the given balance. A nil rng means the
// crypto default.
func NewLedger(balance int, rng gacha.RandomSource) *Ledger {
	if balance < 0 {
		balance = 0
	}
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Ledger{balance: balance, rng: rng}
}

func (l *Ledger) Balance() int { return l.balance }

func (l *Ledger) CanAfford(cost int) bool { return cost <= l.balance }

// Debit subtracts cost, rejecting any amount the balance can't cover.
func (l *Ledger) Debit(cost int) error {
	if cost > l.balance {
		return ErrInsufficientFunds
	}
	l.balance -= cost
	return nil
}

// Credit adds a non-negative amount.
func (l *Ledger) Credit(amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.balance += amount
	return nil
}

// Set overwrites the balance. Debug use only; normal operations go
// through Debit/Credit.
func (l *Ledger) Set(balance int) {
	if balance < 0 {
		balance = 0
	}
	l.balance = balance
}

// ResolveSecretSaleValue rolls the sale value of a secret card, uniform
// inclusive in [SecretSaleMin, SecretSaleMax]. Each call draws fresh.
// It must be called exactly once per secret sale: the result is both
// the credited amount and the value shown to the player.
func (l *Ledger) ResolveSecretSaleValue() int {
	return SecretSaleMin + l.rng.IntN(SecretSaleMax-SecretSaleMin+1)
}
