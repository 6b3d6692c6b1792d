package domain

import "github.com/shopspring/decimal"

// Asset is a tradable instrument listed in the catalog.
// Identity is the name, unique within a portfolio.
type Asset interface {
	Name() string
	Category() string
	Price() decimal.Decimal
	SetPrice(p decimal.Decimal)
	// DividendBearing reports whether holding this asset earns periodic
	// dividend credits.
	DividendBearing() bool
}

// Stock is an equity. Stocks are dividend-bearing.
type Stock struct {
	name     string
	category string
	price    decimal.Decimal
}

// NewStock creates a stock with its listing price.
func NewStock(name string, price decimal.Decimal, category string) *Stock {
	return &Stock{name: name, category: category, price: price}
}

func (s *Stock) Name() string               { return s.name }
func (s *Stock) Category() string           { return s.category }
func (s *Stock) Price() decimal.Decimal     { return s.price }
func (s *Stock) SetPrice(p decimal.Decimal) { s.price = p }
func (s *Stock) DividendBearing() bool      { return true }

// Bond is a fixed-income instrument. Bonds pay no dividends.
type Bond struct {
	name     string
	category string
	price    decimal.Decimal
}

// NewBond creates a bond with its listing price.
func NewBond(name string, price decimal.Decimal, category string) *Bond {
	return &Bond{name: name, category: category, price: price}
}

func (b *Bond) Name() string               { return b.name }
func (b *Bond) Category() string           { return b.category }
func (b *Bond) Price() decimal.Decimal     { return b.price }
func (b *Bond) SetPrice(p decimal.Decimal) { b.price = p }
func (b *Bond) DividendBearing() bool      { return false }
