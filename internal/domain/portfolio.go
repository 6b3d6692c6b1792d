package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio owns the ordered positions of one user.
// Invariant: no two positions share an asset name. The Ledger service
// serializes all access; Portfolio itself has no locking.
type Portfolio struct {
	positions []*Position
	byName    map[string]*Position
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{byName: make(map[string]*Position)}
}

// Upsert merges quantity into an existing position for the asset name, or
// appends a new position priced at the asset's current listing price.
// Positions are never removed, even when quantity later reaches zero; a
// zero-quantity entry simply contributes nothing to the total value.
// Returns the affected position.
func (pf *Portfolio) Upsert(asset Asset, quantity int64, acquiredAt time.Time) *Position {
	if existing, ok := pf.byName[asset.Name()]; ok {
		existing.Quantity += quantity
		return existing
	}

	pos := &Position{
		Asset:      asset,
		Quantity:   quantity,
		Price:      asset.Price(),
		AcquiredAt: acquiredAt,
	}
	pf.positions = append(pf.positions, pos)
	pf.byName[asset.Name()] = pos
	return pos
}

// Positions returns the positions in insertion order. The slice is shared;
// callers under the ledger lock may mutate position fields through it.
func (pf *Portfolio) Positions() []*Position {
	return pf.positions
}

// Lookup returns the position for an asset name, if held.
func (pf *Portfolio) Lookup(name string) (*Position, bool) {
	pos, ok := pf.byName[name]
	return pos, ok
}

// Len returns the number of distinct positions.
func (pf *Portfolio) Len() int {
	return len(pf.positions)
}

// TotalValue returns the sum of position values.
func (pf *Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range pf.positions {
		total = total.Add(pos.Value())
	}
	return total
}
