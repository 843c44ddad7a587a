package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRowKeepsKindSpecificColumns(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	checking := domain.AccountSnapshot{
		AccountID: "acc-1",
		OwnerName: "Alice",
		Kind:      domain.CheckingKind(decimal.NewFromInt(500)),
		Balance:   decimal.NewFromInt(-85),
		Status:    domain.StatusActive,
		CreatedAt: created,
		Version:   3,
		Transactions: []domain.TransactionSnapshot{
			{TransactionID: "t1", Amount: decimal.NewFromInt(50), Kind: domain.KindDeposit, CreatedAt: created.Add(time.Minute)},
			{TransactionID: "t2", Amount: decimal.NewFromInt(100), Kind: domain.KindWithdrawal, CreatedAt: created.Add(2 * time.Minute)},
			{TransactionID: "t3", Amount: decimal.NewFromInt(35), Kind: domain.KindFee, CreatedAt: created.Add(2 * time.Minute)},
		},
	}

	row := ToModelAccount(checking)
	assert.Equal(t, "CHECKING", row.AccountType)
	require.True(t, row.OverdraftLimit.Valid)
	assert.True(t, decimal.NewFromInt(500).Equal(row.OverdraftLimit.Decimal))
	assert.False(t, row.InterestRate.Valid)
	assert.Equal(t, created.Add(2*time.Minute), row.LastUpdatedAt)

	txns := ToModelTransactions(checking)
	require.Len(t, txns, 3)
	for i, txn := range txns {
		assert.Equal(t, int64(i), txn.Seq)
		assert.Equal(t, "acc-1", txn.AccountID)
	}

	back := ToAccountSnapshot(row, txns)
	assert.Equal(t, checking.AccountID, back.AccountID)
	assert.Equal(t, checking.Kind.Type, back.Kind.Type)
	assert.True(t, checking.Kind.OverdraftLimit.Equal(back.Kind.OverdraftLimit))
	assert.Equal(t, checking.Version, back.Version)
	require.Len(t, back.Transactions, 3)
	assert.Equal(t, domain.KindFee, back.Transactions[2].Kind)
}

func TestSavingsRowHasNoOverdraft(t *testing.T) {
	savings := domain.AccountSnapshot{
		AccountID: "acc-2",
		OwnerName: "Bob",
		Kind:      domain.SavingsKind(decimal.RequireFromString("0.05")),
		Status:    domain.StatusFrozen,
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}

	row := ToModelAccount(savings)
	assert.False(t, row.OverdraftLimit.Valid)
	require.True(t, row.InterestRate.Valid)
	assert.Equal(t, "0.05", row.InterestRate.Decimal.String())
	assert.Equal(t, savings.CreatedAt, row.LastUpdatedAt)

	back := ToAccountSnapshot(row, nil)
	assert.Equal(t, domain.StatusFrozen, back.Status)
	assert.Empty(t, back.Transactions)
}
