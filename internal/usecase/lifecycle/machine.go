// Package lifecycle implements the market open/close state machine. The
// market state is its own synchronization domain, independent of the ledger
// lock; no operation ever holds both.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/phuslu/log"

	"github.com/elnur383/exchange/internal/domain"
)

// Machine transitions a MarketState between Closed and Open. Transitions
// take a fixed simulated delay and are not cancellable: a second Open or
// Close issued mid-transition fails with ErrTransitionInProgress.
type Machine struct {
	mu            sync.Mutex
	state         *domain.MarketState
	transitioning bool
	delay         time.Duration
	logger        *log.Logger
}

// NewMachine creates a lifecycle machine owning the given market state.
func NewMachine(state *domain.MarketState, delay time.Duration, logger *log.Logger) *Machine {
	return &Machine{state: state, delay: delay, logger: logger}
}

// Open transitions the market to Open after the simulated delay. Calling it
// on an already-open market is a no-op notice, not an error. The delay runs
// without the lock held so reads and the symmetric call keep working; ctx is
// accepted for signature symmetry but the delay itself is not cancellable.
func (m *Machine) Open(ctx context.Context) error {
	return m.transition(ctx, true)
}

// Close transitions the market to Closed. Symmetric with Open.
func (m *Machine) Close(ctx context.Context) error {
	return m.transition(ctx, false)
}

func (m *Machine) transition(_ context.Context, open bool) error {
	m.mu.Lock()
	// The in-progress check comes first: during an open transition the
	// state still reads closed, and a colliding Close must be rejected, not
	// treated as already satisfied.
	if m.transitioning {
		m.mu.Unlock()
		return domain.ErrTransitionInProgress
	}
	if m.state.IsOpen == open {
		m.mu.Unlock()
		m.logger.Info().Str("market", m.state.Name).Bool("open", open).Msg("market already in requested state")
		return nil
	}
	m.transitioning = true
	m.mu.Unlock()

	m.logger.Info().Str("market", m.state.Name).Bool("opening", open).Msg("market transition started")
	time.Sleep(m.delay)

	m.mu.Lock()
	m.state.IsOpen = open
	m.transitioning = false
	m.mu.Unlock()

	m.logger.Info().Str("market", m.state.Name).Bool("open", open).Msg("market transition complete")
	return nil
}

// IsOpen reports whether trading commands are currently accepted.
func (m *Machine) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsOpen
}

// State returns a copy of the market state for display or persistence.
func (m *Machine) State() domain.MarketState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}
