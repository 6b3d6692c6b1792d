package marketsim

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// PriceLedger is the slice of the ledger the price updater needs. The
// count-draw-apply round trip runs under one lock acquisition inside the
// ledger, so position count changes between ticks cannot cause a mismatch.
type PriceLedger interface {
	RedrawPrices(draw func(n int) []decimal.Decimal) error
}

// PriceUpdater periodically redraws every held position's price from a
// uniform range. It is the only steady-state writer of position prices.
type PriceUpdater struct {
	ledger   PriceLedger
	interval time.Duration
	min, max int64
	logger   *log.Logger
}

// NewPriceUpdater creates a price updater drawing from [min, max).
func NewPriceUpdater(ledger PriceLedger, interval time.Duration, min, max int64, logger *log.Logger) *PriceUpdater {
	return &PriceUpdater{
		ledger:   ledger,
		interval: interval,
		min:      min,
		max:      max,
		logger:   logger,
	}
}

// Run executes the ticker loop until ctx is cancelled. Cancellation is
// cooperative: it is observed between ticks, and the tick in flight always
// completes.
func (u *PriceUpdater) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.logger.Info().Dur("interval", u.interval).Msg("price updater started")
	for {
		select {
		case <-ctx.Done():
			u.logger.Info().Msg("price updater stopped")
			return
		case <-ticker.C:
			if err := u.Tick(); err != nil {
				// A bad tick never stops the task.
				u.logger.Warn().Err(err).Msg("price update tick failed")
			}
		}
	}
}

// Tick redraws every position's price once. It is exported so the command
// source can force an update between scheduled ticks.
func (u *PriceUpdater) Tick() error {
	err := u.ledger.RedrawPrices(func(n int) []decimal.Decimal {
		prices := make([]decimal.Decimal, n)
		for i := range prices {
			prices[i] = decimal.NewFromInt(u.min + rand.Int64N(u.max-u.min))
		}
		return prices
	})
	if err == nil {
		u.logger.Debug().Msg("position prices redrawn")
	}
	return err
}
