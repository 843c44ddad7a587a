package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
// OverdraftLimit is set for CHECKING rows and InterestRate for SAVINGS rows.
type Account struct {
	AccountID      string              `db:"account_id"`
	OwnerName      string              `db:"owner_name"`
	AccountType    string              `db:"account_type"`
	OverdraftLimit decimal.NullDecimal `db:"overdraft_limit"`
	InterestRate   decimal.NullDecimal `db:"interest_rate"`
	Balance        decimal.Decimal     `db:"balance"`
	Status         string              `db:"status"`
	StatusReason   string              `db:"status_reason"`
	Version        int64               `db:"version"`
	CreatedAt      time.Time           `db:"created_at"`
	LastUpdatedAt  time.Time           `db:"last_updated_at"`
}
