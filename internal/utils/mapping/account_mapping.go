package mapping

import (
	"time"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/SscSPs/bank_account_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelAccount converts an account snapshot to its accounts row.
func ToModelAccount(s domain.AccountSnapshot) models.Account {
	m := models.Account{
		AccountID:     s.AccountID,
		OwnerName:     s.OwnerName,
		AccountType:   string(s.Kind.Type),
		Balance:       s.Balance,
		Status:        string(s.Status),
		StatusReason:  s.StatusReason,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: lastActivity(s),
	}
	switch s.Kind.Type {
	case domain.Checking:
		m.OverdraftLimit = decimal.NewNullDecimal(s.Kind.OverdraftLimit)
	case domain.Savings:
		m.InterestRate = decimal.NewNullDecimal(s.Kind.InterestRate)
	}
	return m
}

// ToModelTransactions converts the snapshot's log to rows, numbering them by position.
func ToModelTransactions(s domain.AccountSnapshot) []models.Transaction {
	rows := make([]models.Transaction, len(s.Transactions))
	for i, t := range s.Transactions {
		rows[i] = models.Transaction{
			TransactionID: t.TransactionID,
			AccountID:     s.AccountID,
			Seq:           int64(i),
			Kind:          string(t.Kind),
			Amount:        t.Amount,
			CreatedAt:     t.CreatedAt,
		}
	}
	return rows
}

// ToAccountSnapshot rebuilds a snapshot from an accounts row and its
// transaction rows, which must already be ordered by Seq.
func ToAccountSnapshot(m models.Account, txns []models.Transaction) domain.AccountSnapshot {
	kind := domain.Kind{Type: domain.AccountType(m.AccountType)}
	if m.OverdraftLimit.Valid {
		kind.OverdraftLimit = m.OverdraftLimit.Decimal
	}
	if m.InterestRate.Valid {
		kind.InterestRate = m.InterestRate.Decimal
	}

	records := make([]domain.TransactionSnapshot, len(txns))
	for i, t := range txns {
		records[i] = domain.TransactionSnapshot{
			TransactionID: t.TransactionID,
			Amount:        t.Amount,
			Kind:          domain.TransactionKind(t.Kind),
			CreatedAt:     t.CreatedAt,
		}
	}

	return domain.AccountSnapshot{
		AccountID:    m.AccountID,
		OwnerName:    m.OwnerName,
		Kind:         kind,
		Balance:      m.Balance,
		Status:       domain.AccountStatus(m.Status),
		StatusReason: m.StatusReason,
		CreatedAt:    m.CreatedAt,
		Version:      m.Version,
		Transactions: records,
	}
}

func lastActivity(s domain.AccountSnapshot) (latest time.Time) {
	latest = s.CreatedAt
	if n := len(s.Transactions); n > 0 && s.Transactions[n-1].CreatedAt.After(latest) {
		latest = s.Transactions[n-1].CreatedAt
	}
	return latest
}
