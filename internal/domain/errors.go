package domain

import "errors"

// Sentinel errors returned by ledger, trade and market operations.
// Callers match them with errors.Is; none of them is fatal to the process.
var (
	// ErrInvalidAmount is returned when a deposit or withdrawal amount is
	// zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal or purchase would
	// drive the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownInstrument is returned when a catalog choice does not
	// resolve to a listed instrument.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrInvalidQuantity is returned when a trade quantity is zero or
	// negative.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrPriceCountMismatch is returned when a price batch does not match
	// the number of held positions.
	ErrPriceCountMismatch = errors.New("price count does not match position count")

	// ErrInvalidPrice is returned for a price entry that is not a valid
	// non-negative decimal. It is per-entry and non-fatal: entries applied
	// before the bad one stay applied.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrMarketClosed is returned when a trading command arrives while the
	// market is not open.
	ErrMarketClosed = errors.New("market is closed")

	// ErrTransitionInProgress is returned when Open or Close is called
	// while a previous transition is still in its simulated delay.
	ErrTransitionInProgress = errors.New("market transition already in progress")

	// ErrSnapshotMissing is returned by Load when no snapshot file exists.
	ErrSnapshotMissing = errors.New("market snapshot not found")

	// ErrSnapshotCorrupt is returned by Load when the snapshot file cannot
	// be parsed or is missing a required field.
	ErrSnapshotCorrupt = errors.New("market snapshot corrupt")
)
