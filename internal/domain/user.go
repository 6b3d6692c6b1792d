package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the account holder: a username, a mutable balance and exactly one
// portfolio. Balance must be ≥ 0 after every committed operation; the Ledger
// service enforces that under its lock.
type User struct {
	Username  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	Portfolio *Portfolio
}

// NewUser creates a user with an initial balance. CreatedAt doubles as the
// default acquisition date for purchases made during the session.
func NewUser(username string, initialBalance decimal.Decimal) *User {
	return &User{
		Username:  username,
		Balance:   initialBalance,
		CreatedAt: time.Now(),
		Portfolio: NewPortfolio(),
	}
}
