// Package ledger implements the transactional balance-and-positions service.
// Every operation on one user's money and holdings funnels through the
// service mutex: this is the single synchronization domain shared by the
// command flow and the background simulation tasks.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// Service guards one user's balance and portfolio. All mutating operations
// are atomic from the caller's point of view, including their error paths.
type Service struct {
	mu              sync.Mutex
	user            *domain.User
	dividendPerUnit decimal.Decimal
	impactDiscount  decimal.Decimal
}

// NewService creates a ledger for the user. dividendPerUnit is the amount
// credited per held unit of a dividend-bearing asset; impactDiscount is the
// factor applied to a position's price after a purchase (0.9 = 10% drop).
func NewService(user *domain.User, dividendPerUnit, impactDiscount decimal.Decimal) *Service {
	return &Service{
		user:            user,
		dividendPerUnit: dividendPerUnit,
		impactDiscount:  impactDiscount,
	}
}

// Deposit credits the balance.
func (s *Service) Deposit(amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	s.user.Balance = s.user.Balance.Add(amount)
	return nil
}

// Withdraw debits the balance. The funds check and the debit happen under
// one lock acquisition, so no interleaved operation can drive the balance
// negative.
func (s *Service) Withdraw(amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(s.user.Balance) {
		return domain.ErrInsufficientFunds
	}
	s.user.Balance = s.user.Balance.Sub(amount)
	return nil
}

// Purchase buys quantity units of the asset as one atomic step: funds check,
// debit, position upsert, immediate dividend credit for dividend-bearing
// assets, and the market-impact discount on the position's price.
//
// The unit price is the position's current price when the asset is already
// held, otherwise the catalog listing price. The impact discount applies to
// the position's own price copy only; the catalog listing and other holders
// of the instrument are unaffected.
// Returns the total cost debited.
func (s *Service) Purchase(asset domain.Asset, quantity int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return decimal.Zero, domain.ErrInvalidQuantity
	}

	unitPrice := asset.Price()
	if held, ok := s.user.Portfolio.Lookup(asset.Name()); ok {
		unitPrice = held.Price
	}

	cost := unitPrice.Mul(decimal.NewFromInt(quantity))
	if cost.GreaterThan(s.user.Balance) {
		return decimal.Zero, domain.ErrInsufficientFunds
	}

	s.user.Balance = s.user.Balance.Sub(cost)
	pos := s.user.Portfolio.Upsert(asset, quantity, s.user.CreatedAt)

	if asset.DividendBearing() {
		credit := s.dividendPerUnit.Mul(decimal.NewFromInt(quantity))
		s.user.Balance = s.user.Balance.Add(credit)
	}

	pos.Price = pos.Price.Mul(s.impactDiscount)
	return cost, nil
}

// SetPrices applies a batch of prices positionally, in current position
// order. The batch must match the position count exactly. A negative entry
// fails that entry with ErrInvalidPrice and leaves its position unchanged;
// valid entries elsewhere in the batch are still applied. The first
// per-entry failure is returned after the whole batch has been walked.
func (s *Service) SetPrices(prices []decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPricesLocked(prices)
}

func (s *Service) setPricesLocked(prices []decimal.Decimal) error {
	positions := s.user.Portfolio.Positions()
	if len(prices) != len(positions) {
		return fmt.Errorf("%w: got %d prices for %d positions",
			domain.ErrPriceCountMismatch, len(prices), len(positions))
	}

	var firstErr error
	for i, price := range prices {
		if price.IsNegative() {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: entry %d (%s)", domain.ErrInvalidPrice, i, price)
			}
			continue
		}
		positions[i].Price = price
	}
	return firstErr
}

// RedrawPrices atomically snapshots the position count, asks draw for that
// many prices and applies them. Count, draw and apply happen under one lock
// acquisition, so a concurrent purchase can never cause a count mismatch.
// A portfolio with no positions is a no-op.
func (s *Service) RedrawPrices(draw func(n int) []decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.user.Portfolio.Len()
	if n == 0 {
		return nil
	}
	return s.setPricesLocked(draw(n))
}

// ApplyPriceShock multiplies every position's price by factor.
func (s *Service) ApplyPriceShock(factor decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pos := range s.user.Portfolio.Positions() {
		pos.Price = pos.Price.Mul(factor)
	}
}

// ShockPosition multiplies one position's price by factor. The position is
// chosen by pick from the count observed under the lock, so the choice stays
// in range even while purchases add positions concurrently. A portfolio with
// no positions is a no-op; the shocked asset name is returned otherwise.
func (s *Service) ShockPosition(factor decimal.Decimal, pick func(n int) int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.user.Portfolio.Positions()
	if len(positions) == 0 {
		return "", false
	}
	pos := positions[pick(len(positions))]
	pos.Price = pos.Price.Mul(factor)
	return pos.Asset.Name(), true
}

// PayDividends credits dividendPerUnit × quantity for every dividend-bearing
// position and returns the total credited.
func (s *Service) PayDividends() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, pos := range s.user.Portfolio.Positions() {
		if !pos.Asset.DividendBearing() || pos.Quantity == 0 {
			continue
		}
		total = total.Add(s.dividendPerUnit.Mul(decimal.NewFromInt(pos.Quantity)))
	}
	s.user.Balance = s.user.Balance.Add(total)
	return total
}

// Balance returns the current balance.
func (s *Service) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Balance
}

// TotalValue returns the sum of position values.
func (s *Service) TotalValue() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Portfolio.TotalValue()
}

// PositionCount returns the number of distinct positions.
func (s *Service) PositionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Portfolio.Len()
}

// Snapshot returns a consistent point-in-time copy for display. Readers see
// either all or none of any price batch.
func (s *Service) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		Username: s.user.Username,
		Balance:  s.user.Balance,
	}
	for _, pos := range s.user.Portfolio.Positions() {
		view.Positions = append(view.Positions, PositionView{
			AssetName:  pos.Asset.Name(),
			Category:   pos.Asset.Category(),
			Quantity:   pos.Quantity,
			Price:      pos.Price,
			Value:      pos.Value(),
			AcquiredAt: pos.AcquiredAt,
		})
		view.TotalValue = view.TotalValue.Add(pos.Value())
	}
	return view
}

// View is a read-only copy of the ledger state.
type View struct {
	Username   string
	Balance    decimal.Decimal
	Positions  []PositionView
	TotalValue decimal.Decimal
}

// PositionView is a read-only copy of one position.
type PositionView struct {
	AssetName  string
	Category   string
	Quantity   int64
	Price      decimal.Decimal
	Value      decimal.Decimal
	AcquiredAt time.Time
}
