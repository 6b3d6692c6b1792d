package marketsim

import (
	"context"
	"time"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// DividendLedger is the slice of the ledger the dividend payer needs.
type DividendLedger interface {
	PayDividends() decimal.Decimal
}

// DividendPayer periodically credits dividends for every dividend-bearing
// position.
type DividendPayer struct {
	ledger    DividendLedger
	publisher domain.EventPublisher
	interval  time.Duration
	logger    *log.Logger
}

// NewDividendPayer creates a dividend payer.
func NewDividendPayer(ledger DividendLedger, publisher domain.EventPublisher, interval time.Duration, logger *log.Logger) *DividendPayer {
	return &DividendPayer{
		ledger:    ledger,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

// Run executes the ticker loop until ctx is cancelled. Same cancellation
// discipline as the other tasks: checked between ticks, tick in flight
// completes.
func (p *DividendPayer) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("dividend payer started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("dividend payer stopped")
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *DividendPayer) tick() {
	total := p.ledger.PayDividends()
	if total.IsZero() {
		return
	}
	p.publisher.PublishDividends(total)
	p.logger.Debug().Str("total", total.String()).Msg("dividends credited")
}
