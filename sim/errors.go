package sim

import (
	"errors"
	"fmt"
)

// InsufficientFundsError reports a failed ledger transaction. Shortfall is
// the amount the paying side was missing; neither ledger is mutated when it
// is returned.
type InsufficientFundsError struct {
	Shortfall Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: short %s", e.Shortfall)
}

// ErrWalletNotFound is returned when a transaction party has no ledger,
// e.g. because the agent was removed by a bankruptcy earlier in the tick.
var ErrWalletNotFound = errors.New("wallet not found")

// NoMaterialError is a non-fatal production signal: a recipe input type is
// missing from the firm's inventory.
type NoMaterialError struct {
	Material ItemType
}

func (e *NoMaterialError) Error() string {
	return fmt.Sprintf("no material %q in inventory", string(e.Material))
}

// Non-fatal production and matching signals. All yield zero output for the
// tick and are only logged.
var (
	ErrNotEnoughWorkers = errors.New("not enough workers to run a cycle")
	ErrCantPayWorkers   = errors.New("cannot pay one day of worker salaries")
	ErrSellOrderEmpty   = errors.New("sell order has no items left")
)
