package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a held quantity of one asset plus its acquisition time.
// Each position carries its own price: market impact from a purchase and
// price-batch updates apply to the holder's copy, never to the catalog
// listing, so discounts do not leak into other portfolios holding the same
// instrument.
type Position struct {
	Asset      Asset
	Quantity   int64
	Price      decimal.Decimal
	AcquiredAt time.Time
}

// Value returns price × quantity.
func (p *Position) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}
