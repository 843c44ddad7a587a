package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Statement is an ordered dump of an account's log plus its current balance.
type Statement struct {
	AccountID    string
	OwnerName    string
	Type         AccountType
	Status       AccountStatus
	Balance      decimal.Decimal
	Transactions []Transaction
	GeneratedAt  time.Time
}

// Statement captures the log and balance under one read lock.
func (a *Account) Statement() Statement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	txns := make([]Transaction, len(a.transactions))
	copy(txns, a.transactions)
	return Statement{
		AccountID:    a.id,
		OwnerName:    a.ownerName,
		Type:         a.kind.Type,
		Status:       a.status,
		Balance:      a.balance,
		Transactions: txns,
		GeneratedAt:  time.Now().UTC(),
	}
}

func (s Statement) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- STATEMENT FOR: %s (%s) ---\n", s.OwnerName, s.AccountID)
	for _, t := range s.Transactions {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "CURRENT BALANCE: $%s\n", s.Balance.StringFixed(2))
	return b.String()
}
