package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind classifies a balance-affecting event. The direction of the
// balance change is implied by the kind; amounts are always magnitudes.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "DEPOSIT"
	KindWithdrawal TransactionKind = "WITHDRAWAL"
	KindTransfer   TransactionKind = "TRANSFER"
	KindFee        TransactionKind = "FEE"
	KindInterest   TransactionKind = "INTEREST"
	KindReversal   TransactionKind = "REVERSAL"
)

// IsValid reports whether k is one of the known transaction kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindTransfer, KindFee, KindInterest, KindReversal:
		return true
	}
	return false
}

const statementTimeLayout = "2006-01-02 15:04:05"

// Transaction is an immutable record of one balance-affecting event on a
// single account. Records are never shared between accounts.
type Transaction struct {
	id        string
	amount    decimal.Decimal
	kind      TransactionKind
	createdAt time.Time
}

// NewTransaction captures amount, kind and the current time under a fresh id.
func NewTransaction(amount decimal.Decimal, kind TransactionKind) Transaction {
	return Transaction{
		id:        uuid.NewString(),
		amount:    amount,
		kind:      kind,
		createdAt: time.Now().UTC(),
	}
}

// RestoreTransaction rebuilds a record loaded from storage.
func RestoreTransaction(id string, amount decimal.Decimal, kind TransactionKind, createdAt time.Time) Transaction {
	return Transaction{id: id, amount: amount, kind: kind, createdAt: createdAt}
}

func (t Transaction) ID() string              { return t.id }
func (t Transaction) Amount() decimal.Decimal { return t.amount }
func (t Transaction) Kind() TransactionKind   { return t.kind }
func (t Transaction) CreatedAt() time.Time    { return t.createdAt }

// Equal compares records by identity.
func (t Transaction) Equal(other Transaction) bool {
	return t.id == other.id
}

// String renders the record as a statement line.
func (t Transaction) String() string {
	shortID := t.id
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("[%s] %s: $%s (ID: %s)",
		t.createdAt.Format(statementTimeLayout), t.kind, t.amount.StringFixed(2), shortID)
}
