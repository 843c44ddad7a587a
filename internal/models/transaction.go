package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the append-only account_transactions table.
// Seq is the record's position in its account's log, starting at 0.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Seq           int64           `db:"seq"`
	Kind          string          `db:"kind"`
	Amount        decimal.Decimal `db:"amount"` // Always positive; direction follows Kind
	CreatedAt     time.Time       `db:"created_at"`
}
