package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewsKind classifies a market news event.
type NewsKind string

const (
	NewsNeutral  NewsKind = "NEUTRAL"
	NewsBad      NewsKind = "BAD"
	NewsTerrible NewsKind = "TERRIBLE"
	NewsGood     NewsKind = "GOOD"
)

// NewsKinds lists every kind, in a fixed order for uniform random selection.
var NewsKinds = []NewsKind{NewsNeutral, NewsBad, NewsTerrible, NewsGood}

// Headline returns the display line published with an event of this kind.
func (k NewsKind) Headline() string {
	switch k {
	case NewsBad:
		return "Bad news. Stock prices fall by 10%."
	case NewsTerrible:
		return "Terrible news. One stock takes a severe hit."
	case NewsGood:
		return "Good news. Stock prices rise by 10%."
	default:
		return "Neutral news. The market stays stable."
	}
}

// NewsEvent is one occurrence of market news. Events are not persisted;
// they exist to be applied to the ledger and published for display.
type NewsEvent struct {
	ID         uuid.UUID
	Kind       NewsKind
	Factor     decimal.Decimal
	OccurredAt time.Time
}

// NewNewsEvent creates an event of the given kind carrying the price factor
// its application will use. Neutral events carry factor 1 and apply no shock.
func NewNewsEvent(kind NewsKind, factor decimal.Decimal) NewsEvent {
	return NewsEvent{
		ID:         uuid.New(),
		Kind:       kind,
		Factor:     factor,
		OccurredAt: time.Now(),
	}
}
