package memory_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/SscSPs/bank_account_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_IgnoresStaleSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()

	acc, err := domain.NewCheckingAccount("acc-1", "Ann", domain.DefaultOverdraftLimit)
	require.NoError(t, err)
	_, err = acc.Deposit(decimal.NewFromInt(10))
	require.NoError(t, err)
	stale := acc.Snapshot()
	_, err = acc.Deposit(decimal.NewFromInt(5))
	require.NoError(t, err)

	require.NoError(t, repo.SaveAccount(ctx, acc.Snapshot()))
	require.NoError(t, repo.SaveAccount(ctx, stale))

	got, err := repo.FindAccountByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "15", got.Balance.String())
	assert.Len(t, got.Transactions, 2)

	got.Transactions[0].Amount = decimal.NewFromInt(999)
	again, err := repo.FindAccountByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "10", again.Transactions[0].Amount.String())

	_, err = repo.FindAccountByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	require.NoError(t, repo.SaveUser(ctx, domain.User{UserID: "u-1", Username: "ann", LinkedAccountID: "acc-1"}))
	err := repo.SaveUser(ctx, domain.User{UserID: "u-2", Username: "ann"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	user, err := repo.FindUserByUsername(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)

	_, err = repo.FindUserByID(ctx, "u-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
