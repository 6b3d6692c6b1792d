package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/catalog"
	"github.com/elnur383/exchange/internal/domain"
	"github.com/elnur383/exchange/internal/usecase/ledger"
	"github.com/elnur383/exchange/internal/usecase/lifecycle"
	"github.com/elnur383/exchange/internal/usecase/marketsim"
	"github.com/elnur383/exchange/internal/usecase/trade"
)

// cli is the interactive command source. It translates menu input into
// engine calls and prints their results; all trading semantics live behind
// the services it delegates to.
type cli struct {
	in      *bufio.Scanner
	out     io.Writer
	eof     bool
	ledger  *ledger.Service
	trades  *trade.Processor
	market  *lifecycle.Machine
	news    *marketsim.NewsGenerator
	pricer  *marketsim.PriceUpdater
	catalog *catalog.Catalog
}

func (c *cli) run(ctx context.Context) {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Choose an action:")
		fmt.Fprintln(c.out, " 1. Deposit funds")
		fmt.Fprintln(c.out, " 2. Withdraw funds")
		fmt.Fprintln(c.out, " 3. Show balance")
		fmt.Fprintln(c.out, " 4. Open market")
		fmt.Fprintln(c.out, " 5. Close market")
		fmt.Fprintln(c.out, " 6. Buy stock")
		fmt.Fprintln(c.out, " 7. Buy bond")
		fmt.Fprintln(c.out, " 8. Show portfolio")
		fmt.Fprintln(c.out, " 9. Update prices now")
		fmt.Fprintln(c.out, "10. Trigger news")
		fmt.Fprintln(c.out, "11. Quit")

		choice, ok := c.readInt("> ")
		if !ok {
			if c.eof {
				return
			}
			continue
		}

		switch choice {
		case 1:
			c.deposit()
		case 2:
			c.withdraw()
		case 3:
			fmt.Fprintf(c.out, "Balance: %s\n", c.ledger.Balance())
		case 4:
			c.report(c.market.Open(ctx))
		case 5:
			c.report(c.market.Close(ctx))
		case 6:
			c.buyStock()
		case 7:
			c.buyBond()
		case 8:
			c.showPortfolio()
		case 9:
			c.report(c.pricer.Tick())
		case 10:
			c.news.Tick()
		case 11:
			return
		default:
			fmt.Fprintln(c.out, "Unknown choice.")
		}
	}
}

func (c *cli) deposit() {
	amount, ok := c.readDecimal("Amount to deposit: ")
	if !ok {
		return
	}
	c.report(c.ledger.Deposit(amount))
}

func (c *cli) withdraw() {
	amount, ok := c.readDecimal("Amount to withdraw: ")
	if !ok {
		return
	}
	c.report(c.ledger.Withdraw(amount))
}

func (c *cli) buyStock() {
	fmt.Fprintln(c.out, "Listed stocks:")
	for i, s := range c.catalog.Stocks() {
		fmt.Fprintf(c.out, "%2d. %s (%s)\t%s\n", i+1, s.Name(), s.Price(), s.Category())
	}
	choice, ok := c.readInt("Stock: ")
	if !ok {
		return
	}
	quantity, ok := c.readInt("Quantity: ")
	if !ok {
		return
	}
	_, err := c.trades.Buy(choice, int64(quantity))
	c.report(err)
}

func (c *cli) buyBond() {
	fmt.Fprintln(c.out, "Listed bonds:")
	for i, b := range c.catalog.Bonds() {
		fmt.Fprintf(c.out, "%2d. %s (%s)\t%s\n", i+1, b.Name(), b.Price(), b.Category())
	}
	choice, ok := c.readInt("Bond: ")
	if !ok {
		return
	}
	units, ok := c.readInt("Units: ")
	if !ok {
		return
	}
	_, err := c.trades.BuyBond(choice, int64(units))
	c.report(err)
}

func (c *cli) showPortfolio() {
	view := c.ledger.Snapshot()
	fmt.Fprintf(c.out, "Portfolio of %s:\n", view.Username)
	fmt.Fprintln(c.out, "------------------------")
	for _, pos := range view.Positions {
		fmt.Fprintf(c.out, "%s\n  quantity: %d\n  price: %s\n  value: %s\n",
			pos.AssetName, pos.Quantity, pos.Price, pos.Value)
		fmt.Fprintln(c.out, "------------------------")
	}
	fmt.Fprintf(c.out, "Total value: %s\n", view.TotalValue)
}

// report prints the outcome of a command. Engine errors are expected user
// events here, never reasons to exit.
func (c *cli) report(err error) {
	switch {
	case err == nil:
		fmt.Fprintln(c.out, "Done.")
	case errors.Is(err, domain.ErrMarketClosed):
		fmt.Fprintln(c.out, "The market is closed.")
	case errors.Is(err, domain.ErrInsufficientFunds):
		fmt.Fprintln(c.out, "Insufficient funds.")
	case errors.Is(err, domain.ErrTransitionInProgress):
		fmt.Fprintln(c.out, "A market transition is already in progress.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// readInt reads one integer. ok is false when the line was not a number or
// input ended; check c.eof to tell the two apart.
func (c *cli) readInt(prompt string) (int, bool) {
	line, ok := c.readLine(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(c.out, "Not a number.")
		return 0, false
	}
	return n, true
}

func (c *cli) readDecimal(prompt string) (decimal.Decimal, bool) {
	line, ok := c.readLine(prompt)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(c.out, "Not a valid amount.")
		return decimal.Zero, false
	}
	return d, true
}

func (c *cli) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		c.eof = true
		return "", false
	}
	return c.in.Text(), true
}
