// Package trade implements the synchronous buy entry point: validation,
// market gating and delegation to the ledger's atomic purchase.
package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// Ledger is the slice of the ledger service the processor needs.
type Ledger interface {
	Purchase(asset domain.Asset, quantity int64) (decimal.Decimal, error)
	Balance() decimal.Decimal
}

// MarketGate reports whether trading commands are accepted right now.
type MarketGate interface {
	IsOpen() bool
}

// InstrumentCatalog resolves menu choices to listed instruments.
type InstrumentCatalog interface {
	Stock(choice int) (*domain.Stock, error)
	Bond(choice int) (*domain.Bond, error)
}

// Processor executes buy commands from the command source. It never leaves
// partial side effects behind: every failure happens before the ledger's
// atomic purchase step.
type Processor struct {
	ledger    Ledger
	gate      MarketGate
	catalog   InstrumentCatalog
	publisher domain.EventPublisher
}

// NewProcessor creates a trade processor.
func NewProcessor(ledger Ledger, gate MarketGate, catalog InstrumentCatalog, publisher domain.EventPublisher) *Processor {
	return &Processor{
		ledger:    ledger,
		gate:      gate,
		catalog:   catalog,
		publisher: publisher,
	}
}

// Buy purchases quantity shares of the stock at the given catalog choice.
// Fails with ErrMarketClosed while the market is not open, ErrInvalidQuantity
// for a non-positive quantity, ErrUnknownInstrument for an unlisted choice,
// and bubbles ErrInsufficientFunds from the ledger. On success a trade
// confirmation is published for display.
func (p *Processor) Buy(choice int, quantity int64) (domain.TradeConfirmation, error) {
	if !p.gate.IsOpen() {
		return domain.TradeConfirmation{}, domain.ErrMarketClosed
	}
	if quantity <= 0 {
		return domain.TradeConfirmation{}, domain.ErrInvalidQuantity
	}

	stock, err := p.catalog.Stock(choice)
	if err != nil {
		return domain.TradeConfirmation{}, err
	}

	return p.execute(stock, quantity)
}

// BuyBond purchases units of the bond at the given catalog choice. Bonds go
// through the same gating and the same atomic ledger step as stocks; they
// simply never earn dividends.
func (p *Processor) BuyBond(choice int, units int64) (domain.TradeConfirmation, error) {
	if !p.gate.IsOpen() {
		return domain.TradeConfirmation{}, domain.ErrMarketClosed
	}
	if units <= 0 {
		return domain.TradeConfirmation{}, domain.ErrInvalidQuantity
	}

	bond, err := p.catalog.Bond(choice)
	if err != nil {
		return domain.TradeConfirmation{}, err
	}

	return p.execute(bond, units)
}

func (p *Processor) execute(asset domain.Asset, quantity int64) (domain.TradeConfirmation, error) {
	cost, err := p.ledger.Purchase(asset, quantity)
	if err != nil {
		return domain.TradeConfirmation{}, err
	}

	confirmation := domain.TradeConfirmation{
		ID:         uuid.New(),
		AssetName:  asset.Name(),
		Quantity:   quantity,
		Cost:       cost,
		NewBalance: p.ledger.Balance(),
		ExecutedAt: time.Now(),
	}
	p.publisher.PublishTrade(confirmation)
	return confirmation, nil
}
