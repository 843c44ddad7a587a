package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionSnapshot is the storage form of a Transaction.
type TransactionSnapshot struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          TransactionKind `json:"kind"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AccountSnapshot is a consistent, lock-free copy of an account's state.
type AccountSnapshot struct {
	AccountID    string                `json:"accountID"`
	OwnerName    string                `json:"ownerName"`
	Kind         Kind                  `json:"kind"`
	Balance      decimal.Decimal       `json:"balance"`
	Status       AccountStatus         `json:"status"`
	StatusReason string                `json:"statusReason,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	Version      int64                 `json:"version"`
	Transactions []TransactionSnapshot `json:"transactions"`
}

// Snapshot copies the account's state under its read lock.
func (a *Account) Snapshot() AccountSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	txns := make([]TransactionSnapshot, len(a.transactions))
	for i, t := range a.transactions {
		txns[i] = TransactionSnapshot{
			TransactionID: t.id,
			Amount:        t.amount,
			Kind:          t.kind,
			CreatedAt:     t.createdAt,
		}
	}
	return AccountSnapshot{
		AccountID:    a.id,
		OwnerName:    a.ownerName,
		Kind:         a.kind,
		Balance:      a.balance,
		Status:       a.status,
		StatusReason: a.statusReason,
		CreatedAt:    a.createdAt,
		Version:      a.version,
		Transactions: txns,
	}
}

// RestoreAccount rebuilds an account from storage.
func RestoreAccount(s AccountSnapshot) (*Account, error) {
	if strings.TrimSpace(s.AccountID) == "" {
		return nil, fmt.Errorf("%w: snapshot without account id", apperrors.ErrValidation)
	}
	if err := s.Kind.Validate(); err != nil {
		return nil, fmt.Errorf("restore account %s: %w", s.AccountID, err)
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("%w: restore account %s: unknown status %q", apperrors.ErrValidation, s.AccountID, s.Status)
	}
	txns := make([]Transaction, len(s.Transactions))
	for i, t := range s.Transactions {
		if !t.Kind.IsValid() {
			return nil, fmt.Errorf("%w: restore account %s: unknown transaction kind %q", apperrors.ErrValidation, s.AccountID, t.Kind)
		}
		txns[i] = RestoreTransaction(t.TransactionID, t.Amount, t.Kind, t.CreatedAt)
	}
	return &Account{
		id:           s.AccountID,
		ownerName:    s.OwnerName,
		kind:         s.Kind,
		balance:      s.Balance,
		status:       s.Status,
		statusReason: s.StatusReason,
		transactions: txns,
		createdAt:    s.CreatedAt,
		version:      s.Version,
	}, nil
}
