// Package catalog holds the static instrument listings the trade processor
// resolves menu choices against. Listing prices are starting prices only:
// once an instrument is held, its position carries its own price.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// Catalog is the fixed set of instruments available for purchase.
type Catalog struct {
	stocks []*domain.Stock
	bonds  []*domain.Bond
}

// New builds the default catalog.
func New() *Catalog {
	return &Catalog{stocks: defaultStocks(), bonds: defaultBonds()}
}

// Stocks returns the listed stocks in menu order.
func (c *Catalog) Stocks() []*domain.Stock { return c.stocks }

// Bonds returns the listed bonds in menu order.
func (c *Catalog) Bonds() []*domain.Bond { return c.bonds }

// Stock resolves a 1-based menu choice to a listed stock.
func (c *Catalog) Stock(choice int) (*domain.Stock, error) {
	if choice < 1 || choice > len(c.stocks) {
		return nil, domain.ErrUnknownInstrument
	}
	return c.stocks[choice-1], nil
}

// Bond resolves a 1-based menu choice to a listed bond.
func (c *Catalog) Bond(choice int) (*domain.Bond, error) {
	if choice < 1 || choice > len(c.bonds) {
		return nil, domain.ErrUnknownInstrument
	}
	return c.bonds[choice-1], nil
}

// Related returns the names of listed instruments sharing a category with
// the named instrument, the instrument itself included. Returns nil when the
// name is not listed.
func (c *Catalog) Related(name string) []string {
	var category string
	found := false
	for _, s := range c.stocks {
		if s.Name() == name {
			category, found = s.Category(), true
			break
		}
	}
	if !found {
		for _, b := range c.bonds {
			if b.Name() == name {
				category, found = b.Category(), true
				break
			}
		}
	}
	if !found {
		return nil
	}

	var related []string
	for _, s := range c.stocks {
		if s.Category() == category {
			related = append(related, s.Name())
		}
	}
	for _, b := range c.bonds {
		if b.Category() == category {
			related = append(related, b.Name())
		}
	}
	return related
}

// Categories returns the distinct instrument categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	for _, s := range c.stocks {
		seen[s.Category()] = true
	}
	for _, b := range c.bonds {
		seen[b.Category()] = true
	}
	categories := make([]string, 0, len(seen))
	for cat := range seen {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return categories
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func defaultStocks() []*domain.Stock {
	return []*domain.Stock{
		domain.NewStock("Apple Inc.", price(150), "Technology"),
		domain.NewStock("Tesla Inc.", price(700), "Technology"),
		domain.NewStock("Amazon.com Inc.", price(3000), "Technology"),
		domain.NewStock("Microsoft Corporation", price(250), "Technology"),
		domain.NewStock("Alphabet Inc.", price(1800), "Technology"),
		domain.NewStock("Meta Platforms Inc.", price(350), "Technology"),
		domain.NewStock("Netflix Inc.", price(500), "Technology"),
		domain.NewStock("NVIDIA Corporation", price(600), "Technology"),
		domain.NewStock("Johnson & Johnson", price(170), "Healthcare"),
		domain.NewStock("Visa Inc.", price(250), "Finance"),
	}
}

func defaultBonds() []*domain.Bond {
	return []*domain.Bond{
		domain.NewBond("Gazprom", price(700), "Energy"),
		domain.NewBond("Rosneft", price(600), "Energy"),
		domain.NewBond("Sberbank", price(500), "Finance"),
		domain.NewBond("Lukoil", price(400), "Energy"),
		domain.NewBond("RZD", price(410), "Transport"),
		domain.NewBond("Gazprom Neft", price(1000), "Energy"),
		domain.NewBond("RusHydro", price(430), "Utilities"),
		domain.NewBond("MTS", price(450), "Telecom"),
		domain.NewBond("Rostelecom", price(500), "Telecom"),
		domain.NewBond("Transneft", price(650), "Energy"),
	}
}
