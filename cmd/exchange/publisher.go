package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// consolePublisher prints engine events for the user. Trades arrive from
// the command loop while news and dividends arrive from background tasks,
// so writes are serialized.
type consolePublisher struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsolePublisher(out io.Writer) *consolePublisher {
	return &consolePublisher{out: out}
}

func (p *consolePublisher) PublishTrade(c domain.TradeConfirmation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Bought %d x %s for %s. New balance: %s\n",
		c.Quantity, c.AssetName, c.Cost, c.NewBalance)
}

func (p *consolePublisher) PublishNews(e domain.NewsEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Market news: %s\n", e.Kind.Headline())
}

func (p *consolePublisher) PublishDividends(total decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Dividends credited: %s\n", total)
}
