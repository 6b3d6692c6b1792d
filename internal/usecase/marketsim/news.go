package marketsim

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// ShockLedger is the slice of the ledger the news generator needs.
type ShockLedger interface {
	ApplyPriceShock(factor decimal.Decimal)
	ShockPosition(factor decimal.Decimal, pick func(n int) int) (string, bool)
}

// NewsGenerator periodically emits a random market news event and applies
// its price effect: bad news ×0.9 and good news ×1.1 across the portfolio,
// terrible news a severe hit to one randomly chosen position, neutral news
// nothing.
type NewsGenerator struct {
	ledger         ShockLedger
	publisher      domain.EventPublisher
	interval       time.Duration
	terribleFactor decimal.Decimal
	logger         *log.Logger
}

// NewNewsGenerator creates a news generator.
func NewNewsGenerator(ledger ShockLedger, publisher domain.EventPublisher, interval time.Duration, terribleFactor decimal.Decimal, logger *log.Logger) *NewsGenerator {
	return &NewsGenerator{
		ledger:         ledger,
		publisher:      publisher,
		interval:       interval,
		terribleFactor: terribleFactor,
		logger:         logger,
	}
}

// Run executes the ticker loop until ctx is cancelled.
func (g *NewsGenerator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.logger.Info().Dur("interval", g.interval).Msg("news generator started")
	for {
		select {
		case <-ctx.Done():
			g.logger.Info().Msg("news generator stopped")
			return
		case <-ticker.C:
			g.Tick()
		}
	}
}

// Tick selects one news kind uniformly at random, applies its effect and
// publishes the event. It is exported so the command source can trigger a
// news event on demand.
func (g *NewsGenerator) Tick() domain.NewsEvent {
	kind := domain.NewsKinds[rand.IntN(len(domain.NewsKinds))]
	return g.Apply(kind)
}

// Apply applies the effect of one news kind and publishes the event.
func (g *NewsGenerator) Apply(kind domain.NewsKind) domain.NewsEvent {
	var event domain.NewsEvent

	switch kind {
	case domain.NewsBad:
		event = domain.NewNewsEvent(kind, decimal.NewFromFloat(0.9))
		g.ledger.ApplyPriceShock(event.Factor)
	case domain.NewsGood:
		event = domain.NewNewsEvent(kind, decimal.NewFromFloat(1.1))
		g.ledger.ApplyPriceShock(event.Factor)
	case domain.NewsTerrible:
		event = domain.NewNewsEvent(kind, g.terribleFactor)
		if name, ok := g.ledger.ShockPosition(event.Factor, rand.IntN); ok {
			g.logger.Info().Str("asset", name).Msg("terrible news hit position")
		}
	default:
		event = domain.NewNewsEvent(domain.NewsNeutral, decimal.NewFromInt(1))
	}

	g.publisher.PublishNews(event)
	g.logger.Debug().Str("kind", string(event.Kind)).Msg("news published")
	return event
}
