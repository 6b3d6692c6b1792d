package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeConfirmation is the human-readable outcome of a successful buy,
// handed to the display collaborator.
type TradeConfirmation struct {
	ID         uuid.UUID
	AssetName  string
	Quantity   int64
	Cost       decimal.Decimal
	NewBalance decimal.Decimal
	ExecutedAt time.Time
}

// EventPublisher receives the events the engine produces for display.
// Implementations must be safe for concurrent use: trades arrive from the
// command flow while news and dividends arrive from background tasks.
type EventPublisher interface {
	PublishTrade(confirmation TradeConfirmation)
	PublishNews(event NewsEvent)
	PublishDividends(total decimal.Decimal)
}
