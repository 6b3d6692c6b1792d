package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/elnur383/exchange/internal/catalog"
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

// stubGate reports a fixed market state.
type stubGate struct {
	open bool
}

func (g stubGate) IsOpen() bool { return g.open }

func newTestProcessor(balance int64, open bool) (*Processor, *ledger.Service, *MockEventPublisher) {
	user := domain.NewUser("alice", decimal.NewFromInt(balance))
	svc := ledger.NewService(user, decimal.NewFromInt(1), decimal.NewFromFloat(0.9))
	publisher := new(MockEventPublisher)
	processor := NewProcessor(svc, stubGate{open: open}, catalog.New(), publisher)
	return processor, svc, publisher
}

func TestBuy_Success(t *testing.T) {
	processor, svc, publisher := newTestProcessor(1000, true)
	publisher.On("PublishTrade", mock.AnythingOfType("domain.TradeConfirmation")).Once()

	// Choice 1 is Apple Inc. at 150.
	confirmation, err := processor.Buy(1, 2)

	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", confirmation.AssetName)
	assert.Equal(t, int64(2), confirmation.Quantity)
	assert.True(t, confirmation.Cost.Equal(decimal.NewFromInt(300)))
	assert.True(t, svc.Balance().Equal(decimal.NewFromInt(702)), "1000 - 300 + 2 dividends")
	publisher.AssertExpectations(t)
}

func TestBuy_MarketClosed(t *testing.T) {
	processor, svc, publisher := newTestProcessor(1000, false)

	_, err := processor.Buy(1, 2)

	assert.ErrorIs(t, err, domain.ErrMarketClosed)
	assert.True(t, svc.Balance().Equal(decimal.NewFromInt(1000)), "no side effects on rejection")
	assert.Equal(t, 0, svc.PositionCount())
	publisher.AssertNotCalled(t, "PublishTrade", mock.Anything)
}

func TestBuy_InvalidQuantity(t *testing.T) {
	processor, svc, publisher := newTestProcessor(1000, true)

	_, err := processor.Buy(1, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, svc.Balance().Equal(decimal.NewFromInt(1000)))
	publisher.AssertNotCalled(t, "PublishTrade", mock.Anything)
}

func TestBuy_UnknownInstrument(t *testing.T) {
	processor, _, publisher := newTestProcessor(1000, true)

	_, err := processor.Buy(99, 1)

	assert.ErrorIs(t, err, domain.ErrUnknownInstrument)
	publisher.AssertNotCalled(t, "PublishTrade", mock.Anything)
}

func TestBuy_InsufficientFunds(t *testing.T) {
	processor, svc, publisher := newTestProcessor(1000, true)

	// Choice 3 is Amazon at 3000.
	_, err := processor.Buy(3, 1)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, svc.Balance().Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 0, svc.PositionCount())
	publisher.AssertNotCalled(t, "PublishTrade", mock.Anything)
}

func TestBuyBond_Success(t *testing.T) {
	processor, svc, publisher := newTestProcessor(1000, true)
	publisher.On("PublishTrade", mock.AnythingOfType("domain.TradeConfirmation")).Once()

	// Choice 4 is Lukoil at 400; bonds earn no dividend credit.
	confirmation, err := processor.BuyBond(4, 2)

	require.NoError(t, err)
	assert.Equal(t, "Lukoil", confirmation.AssetName)
	assert.True(t, confirmation.Cost.Equal(decimal.NewFromInt(800)))
	assert.True(t, svc.Balance().Equal(decimal.NewFromInt(200)))
	publisher.AssertExpectations(t)
}

func TestBuyBond_MarketClosed(t *testing.T) {
	processor, _, publisher := newTestProcessor(1000, false)

	_, err := processor.BuyBond(1, 1)

	assert.ErrorIs(t, err, domain.ErrMarketClosed)
	publisher.AssertNotCalled(t, "PublishTrade", mock.Anything)
}
