package marketsim

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/elnur383/exchange/internal/domain"
	"github.com/elnur383/exchange/internal/usecase/ledger"
)

// MockEventPublisher is a mock implementation of domain.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishTrade(c domain.TradeConfirmation) {
	m.Called(c)
}

func (m *MockEventPublisher) PublishNews(e domain.NewsEvent) {
	m.Called(e)
}

func (m *MockEventPublisher) PublishDividends(total decimal.Decimal) {
	m.Called(total)
}

func silentLogger() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}

func newTestLedger(t *testing.T) *ledger.Service {
	t.Helper()
	user := domain.NewUser("alice", decimal.NewFromInt(100_000))
	svc := ledger.NewService(user, decimal.NewFromInt(1), decimal.NewFromFloat(0.9))
	_, err := svc.Purchase(domain.NewStock("Apple Inc.", decimal.NewFromInt(100), "Technology"), 2)
	require.NoError(t, err)
	_, err = svc.Purchase(domain.NewStock("Visa Inc.", decimal.NewFromInt(100), "Finance"), 1)
	require.NoError(t, err)
	return svc
}

func TestPriceUpdater_Tick_DrawsWithinRange(t *testing.T) {
	svc := newTestLedger(t)
	updater := NewPriceUpdater(svc, time.Minute, 50, 200, silentLogger())

	require.NoError(t, updater.Tick())

	for _, pos := range svc.Snapshot().Positions {
		assert.True(t, pos.Price.GreaterThanOrEqual(decimal.NewFromInt(50)), "price %s below draw range", pos.Price)
		assert.True(t, pos.Price.LessThan(decimal.NewFromInt(200)), "price %s above draw range", pos.Price)
	}
}

func TestPriceUpdater_Run_StopsOnCancel(t *testing.T) {
	svc := newTestLedger(t)
	updater := NewPriceUpdater(svc, 5*time.Millisecond, 50, 200, silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		updater.Run(ctx)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()
	wg.Wait()
}

func TestNewsGenerator_Apply_Bad(t *testing.T) {
	svc := newTestLedger(t)
	publisher := new(MockEventPublisher)
	publisher.On("PublishNews", mock.AnythingOfType("domain.NewsEvent")).Once()
	generator := NewNewsGenerator(svc, publisher, time.Minute, decimal.NewFromFloat(0.5), silentLogger())
	before := svc.Snapshot()

	event := generator.Apply(domain.NewsBad)

	assert.Equal(t, domain.NewsBad, event.Kind)
	after := svc.Snapshot()
	for i := range after.Positions {
		expected := before.Positions[i].Price.Mul(decimal.NewFromFloat(0.9))
		assert.True(t, after.Positions[i].Price.Equal(expected))
	}
	publisher.AssertExpectations(t)
}

func TestNewsGenerator_Apply_Good(t *testing.T) {
	svc := newTestLedger(t)
	publisher := new(MockEventPublisher)
	publisher.On("PublishNews", mock.AnythingOfType("domain.NewsEvent")).Once()
	generator := NewNewsGenerator(svc, publisher, time.Minute, decimal.NewFromFloat(0.5), silentLogger())
	before := svc.TotalValue()

	generator.Apply(domain.NewsGood)

	assert.True(t, svc.TotalValue().Equal(before.Mul(decimal.NewFromFloat(1.1))))
	publisher.AssertExpectations(t)
}

func TestNewsGenerator_Apply_Neutral(t *testing.T) {
	svc := newTestLedger(t)
	publisher := new(MockEventPublisher)
	publisher.On("PublishNews", mock.AnythingOfType("domain.NewsEvent")).Once()
	generator := NewNewsGenerator(svc, publisher, time.Minute, decimal.NewFromFloat(0.5), silentLogger())
	before := svc.TotalValue()

	generator.Apply(domain.NewsNeutral)

	assert.True(t, svc.TotalValue().Equal(before), "neutral news leaves prices alone")
	publisher.AssertExpectations(t)
}

func TestNewsGenerator_Apply_Terrible(t *testing.T) {
	svc := newTestLedger(t)
	publisher := new(MockEventPublisher)
	publisher.On("PublishNews", mock.AnythingOfType("domain.NewsEvent")).Once()
	generator := NewNewsGenerator(svc, publisher, time.Minute, decimal.NewFromFloat(0.5), silentLogger())
	before := svc.Snapshot()

	generator.Apply(domain.NewsTerrible)

	// Exactly one position takes the hit.
	after := svc.Snapshot()
	shocked := 0
	for i := range after.Positions {
		if !after.Positions[i].Price.Equal(before.Positions[i].Price) {
			shocked++
			expected := before.Positions[i].Price.Mul(decimal.NewFromFloat(0.5))
			assert.True(t, after.Positions[i].Price.Equal(expected))
		}
	}
	assert.Equal(t, 1, shocked)
	publisher.AssertExpectations(t)
}

func TestNewsGenerator_Tick_PublishesSomeKind(t *testing.T) {
	svc := newTestLedger(t)
	publisher := new(MockEventPublisher)
	publisher.On("PublishNews", mock.AnythingOfType("domain.NewsEvent")).Once()
	generator := NewNewsGenerator(svc, publisher, time.Minute, decimal.NewFromFloat(0.5), silentLogger())

	event := generator.Tick()

	assert.Contains(t, domain.NewsKinds, event.Kind)
	publisher.AssertExpectations(t)
}

func TestDividendPayer_CreditsEachTick(t *testing.T) {
	svc := newTestLedger(t)
	publisher := new(MockEventPublisher)
	publisher.On("PublishDividends", mock.Anything)
	payer := NewDividendPayer(svc, publisher, 5*time.Millisecond, silentLogger())
	before := svc.Balance()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		payer.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	wg.Wait()

	// The 3 stock units credit 3 per tick; at least one tick fired in
	// 30ms of a 5ms ticker.
	assert.True(t, svc.Balance().GreaterThan(before))
	publisher.AssertCalled(t, "PublishDividends", mock.Anything)
}
