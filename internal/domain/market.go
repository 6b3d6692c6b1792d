package domain

import "github.com/shopspring/decimal"

// MarketState is the process-wide market handle: constructed once at
// startup, mutated by lifecycle transitions, optionally persisted through a
// MarketStateStore. It is passed explicitly to its collaborators, never held
// as a package global. The lifecycle machine owns its lock.
type MarketState struct {
	Name   string
	Value  decimal.Decimal
	IsOpen bool
}

// MarketStateStore persists a MarketState across process runs.
// Load returns ErrSnapshotMissing when nothing was saved yet and
// ErrSnapshotCorrupt when the saved document cannot be trusted; in both
// cases the caller keeps its in-memory state.
type MarketStateStore interface {
	Save(state MarketState) error
	Load() (MarketState, error)
}
