package boltdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_account_app/internal/repositories/database/boltdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BoltStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	path  string
	repos portsrepo.RepositoryProvider
}

func (s *BoltStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "test.db")
	repos, err := boltdb.NewRepositoryProvider(s.path)
	s.Require().NoError(err)
	s.repos = repos
}

func (s *BoltStoreTestSuite) TearDownTest() {
	if s.repos.Close != nil {
		s.NoError(s.repos.Close())
	}
}

func (s *BoltStoreTestSuite) reopen() {
	s.Require().NoError(s.repos.Close())
	repos, err := boltdb.NewRepositoryProvider(s.path)
	s.Require().NoError(err)
	s.repos = repos
}

func (s *BoltStoreTestSuite) TestListEmpty() {
	items, err := s.repos.AccountRepo.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.NotNil(items)
	s.Empty(items)
}

func (s *BoltStoreTestSuite) TestAccountRoundTripAcrossReopen() {
	acc, err := domain.NewCheckingAccount("acc-1", "Ann", domain.DefaultOverdraftLimit)
	s.Require().NoError(err)
	_, err = acc.Deposit(decimal.RequireFromString("50"))
	s.Require().NoError(err)
	_, err = acc.Withdraw(decimal.RequireFromString("100"))
	s.Require().NoError(err)
	s.Require().NoError(acc.Freeze("review"))

	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, acc.Snapshot()))
	s.reopen()

	snap, err := s.repos.AccountRepo.FindAccountByID(s.ctx, "acc-1")
	s.Require().NoError(err)
	restored, err := domain.RestoreAccount(*snap)
	s.Require().NoError(err)

	s.Equal("-85.00", restored.Balance().StringFixed(2))
	s.Equal(domain.StatusFrozen, restored.Status())
	s.Equal("review", restored.StatusReason())
	s.Require().Len(restored.Transactions(), 3)
	for i, txn := range acc.Transactions() {
		s.Equal(txn.ID(), restored.Transactions()[i].ID())
		s.Equal(txn.Kind(), restored.Transactions()[i].Kind())
		s.True(txn.Amount().Equal(restored.Transactions()[i].Amount()))
	}
}

func (s *BoltStoreTestSuite) TestSaveAccount_StaleVersionSkipped() {
	acc, err := domain.NewSavingsAccount("acc-1", "Ann", decimal.RequireFromString("0.02"))
	s.Require().NoError(err)
	_, err = acc.Deposit(decimal.NewFromInt(10))
	s.Require().NoError(err)
	stale := acc.Snapshot()
	_, err = acc.Deposit(decimal.NewFromInt(20))
	s.Require().NoError(err)

	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, acc.Snapshot()))
	s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, stale))

	snap, err := s.repos.AccountRepo.FindAccountByID(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Equal("30", snap.Balance.String())
	s.Equal(int64(2), snap.Version)
}

func (s *BoltStoreTestSuite) TestFindAccount_NotFound() {
	_, err := s.repos.AccountRepo.FindAccountByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BoltStoreTestSuite) TestUsers() {
	user := domain.User{UserID: "u-1", Username: "ann", PasswordHash: "hash", LinkedAccountID: "acc-1"}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, user))
	// Saving the same user again is allowed.
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, user))

	err := s.repos.UserRepo.SaveUser(s.ctx, domain.User{UserID: "u-2", Username: "ann"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	s.reopen()

	got, err := s.repos.UserRepo.FindUserByUsername(s.ctx, "ann")
	s.Require().NoError(err)
	s.Equal("u-1", got.UserID)
	s.Equal("hash", got.PasswordHash)

	_, err = s.repos.UserRepo.FindUserByID(s.ctx, "u-2")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.repos.UserRepo.FindUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBoltStoreTestSuite(t *testing.T) {
	suite.Run(t, new(BoltStoreTestSuite))
}

func TestOpen_BadPath(t *testing.T) {
	_, err := boltdb.Open(filepath.Join(t.TempDir(), "missing-dir", "x.db"))
	assert.Error(t, err)
}
