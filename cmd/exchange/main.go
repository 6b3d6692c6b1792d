package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/adapter/snapshot"
	"github.com/elnur383/exchange/internal/catalog"
	"github.com/elnur383/exchange/internal/config"
	"github.com/elnur383/exchange/internal/domain"
	"github.com/elnur383/exchange/internal/logging"
	"github.com/elnur383/exchange/internal/usecase/ledger"
	"github.com/elnur383/exchange/internal/usecase/lifecycle"
	"github.com/elnur383/exchange/internal/usecase/marketsim"
	"github.com/elnur383/exchange/internal/usecase/trade"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	marketName := flag.String("market", "", "market name (prompted when empty)")
	marketValue := flag.String("value", "", "market value (prompted when empty)")
	username := flag.String("user", "", "username (prompted when empty)")
	balance := flag.String("balance", "", "initial balance (prompted when empty)")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)

	in := bufio.NewScanner(os.Stdin)
	out := os.Stdout

	// Market state: reload the snapshot from the previous run when one
	// exists, otherwise construct it from input.
	store := snapshot.NewStore(cfg.Snapshot.Path)
	state, err := store.Load()
	switch {
	case err == nil:
		logger.Info().Str("market", state.Name).Bool("open", state.IsOpen).Msg("market state restored from snapshot")
	case errors.Is(err, domain.ErrSnapshotMissing):
		state = promptMarketState(in, out, *marketName, *marketValue)
	case errors.Is(err, domain.ErrSnapshotCorrupt):
		logger.Warn().Err(err).Msg("ignoring unreadable market snapshot")
		state = promptMarketState(in, out, *marketName, *marketValue)
	default:
		fmt.Fprintf(os.Stderr, "cannot read market snapshot: %v\n", err)
		os.Exit(1)
	}

	user := promptUser(in, out, *username, *balance)
	fmt.Fprintf(out, "User %s created with balance %s at %s\n",
		user.Username, user.Balance, user.CreatedAt.Format("2006-01-02 15:04:05"))

	// Services. The ledger and the market state are independent
	// synchronization domains; nothing below ever holds both locks.
	cat := catalog.New()
	ledgerSvc := ledger.NewService(user, cfg.DividendPerUnitDecimal(), cfg.ImpactDiscountDecimal())
	machine := lifecycle.NewMachine(&state, cfg.Market.TransitionDelay.Std(), logger)
	publisher := newConsolePublisher(out)
	trades := trade.NewProcessor(ledgerSvc, machine, cat, publisher)

	pricer := marketsim.NewPriceUpdater(ledgerSvc, cfg.Simulation.PriceUpdateInterval.Std(),
		cfg.Simulation.PriceDrawMin, cfg.Simulation.PriceDrawMax, logger)
	news := marketsim.NewNewsGenerator(ledgerSvc, publisher, cfg.Simulation.NewsInterval.Std(),
		cfg.TerribleNewsFactorDecimal(), logger)
	dividends := marketsim.NewDividendPayer(ledgerSvc, publisher, cfg.Simulation.DividendInterval.Std(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, run := range []func(context.Context){pricer.Run, news.Run, dividends.Run} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx)
		}()
	}

	console := &cli{
		in:      in,
		out:     out,
		ledger:  ledgerSvc,
		trades:  trades,
		market:  machine,
		news:    news,
		pricer:  pricer,
		catalog: cat,
	}

	done := make(chan struct{})
	go func() {
		console.run(ctx)
		close(done)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-done:
		logger.Info().Msg("quit requested")
	}

	// Background tasks finish their tick in flight; nothing is killed
	// abruptly.
	cancel()
	wg.Wait()

	if err := store.Save(machine.State()); err != nil {
		logger.Error().Err(err).Msg("failed to save market snapshot")
	} else {
		logger.Info().Str("path", cfg.Snapshot.Path).Msg("market snapshot saved")
	}
}

// promptMarketState builds the market state from flags, falling back to
// interactive prompts for anything not provided.
func promptMarketState(in *bufio.Scanner, out *os.File, name, value string) domain.MarketState {
	if name == "" {
		name = promptLine(in, out, "Market name: ")
	}
	marketValue, err := decimal.NewFromString(value)
	for err != nil {
		marketValue, err = decimal.NewFromString(promptLine(in, out, "Market value: "))
		if err != nil {
			fmt.Fprintln(out, "Not a valid number.")
		}
	}
	return domain.MarketState{Name: name, Value: marketValue}
}

// promptUser builds the account holder from flags or prompts.
func promptUser(in *bufio.Scanner, out *os.File, username, balance string) *domain.User {
	if username == "" {
		username = promptLine(in, out, "Username: ")
	}
	initial, err := decimal.NewFromString(balance)
	for err != nil || initial.IsNegative() {
		initial, err = decimal.NewFromString(promptLine(in, out, "Initial balance: "))
		if err != nil || initial.IsNegative() {
			fmt.Fprintln(out, "Not a valid balance.")
			err = errors.New("retry")
		}
	}
	return domain.NewUser(username, initial)
}

func promptLine(in *bufio.Scanner, out *os.File, prompt string) string {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		fmt.Fprintln(out)
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}
