package domain_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransferTestSuite struct {
	suite.Suite
	checking *domain.Account
	savings  *domain.Account
}

func (s *TransferTestSuite) SetupTest() {
	var err error
	s.checking, err = domain.NewCheckingAccount("acc-checking", "Alice", domain.DefaultOverdraftLimit)
	s.Require().NoError(err)
	s.savings, err = domain.NewSavingsAccount("acc-savings", "Bob", dec("0.05"))
	s.Require().NoError(err)

	_, err = s.checking.Deposit(dec("1000"))
	s.Require().NoError(err)
	_, err = s.savings.Deposit(dec("500"))
	s.Require().NoError(err)
}

func (s *TransferTestSuite) TestTransfer_Success() {
	receipt, err := domain.Transfer(s.checking, s.savings, dec("300"))
	s.Require().NoError(err)

	s.True(receipt.Completed())
	s.False(receipt.RolledBack())
	s.Equal("700.00", s.checking.Balance().StringFixed(2))
	s.Equal("800.00", s.savings.Balance().StringFixed(2))

	out := s.checking.TransactionsByKind(domain.KindTransfer)
	in := s.savings.TransactionsByKind(domain.KindTransfer)
	s.Require().Len(out, 1)
	s.Require().Len(in, 1)
	s.True(dec("300").Equal(out[0].Amount()))
	s.True(dec("300").Equal(in[0].Amount()))
	s.True(receipt.Credit.Equal(in[0]))
	s.Require().Len(receipt.Debits, 1)
	s.True(receipt.Debits[0].Equal(out[0]))
}

func (s *TransferTestSuite) TestTransfer_SameAccount() {
	_, err := domain.Transfer(s.checking, s.checking, dec("10"))
	s.ErrorIs(err, apperrors.ErrSameAccount)
	s.Equal("1000.00", s.checking.Balance().StringFixed(2))
	s.Len(s.checking.Transactions(), 1)
}

func (s *TransferTestSuite) TestTransfer_InvalidAmount() {
	_, err := domain.Transfer(s.checking, s.savings, decimal.Zero)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	_, err = domain.Transfer(s.checking, s.savings, dec("-5"))
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *TransferTestSuite) TestTransfer_FrozenTarget() {
	s.Require().NoError(s.savings.Freeze("review"))

	receipt, err := domain.Transfer(s.checking, s.savings, dec("100"))
	s.ErrorIs(err, apperrors.ErrTargetNotActive)
	s.ErrorIs(err, apperrors.ErrAccountFrozen)
	s.False(receipt.Completed())
	s.False(receipt.RolledBack())

	// Neither side was touched.
	s.Equal("1000.00", s.checking.Balance().StringFixed(2))
	s.Equal("500.00", s.savings.Balance().StringFixed(2))
	s.Len(s.checking.Transactions(), 1)
	s.Len(s.savings.Transactions(), 1)
}

func (s *TransferTestSuite) TestTransfer_ClosedTarget() {
	empty, err := domain.NewSavingsAccount("acc-empty", "Carol", dec("0.01"))
	s.Require().NoError(err)
	s.Require().NoError(empty.Close("moved away"))

	_, err = domain.Transfer(s.checking, empty, dec("100"))
	s.ErrorIs(err, apperrors.ErrTargetNotActive)
	s.ErrorIs(err, apperrors.ErrAccountClosed)
	s.Equal("1000.00", s.checking.Balance().StringFixed(2))
}

func (s *TransferTestSuite) TestTransfer_FrozenSource() {
	s.Require().NoError(s.checking.Freeze("review"))

	_, err := domain.Transfer(s.checking, s.savings, dec("100"))
	s.ErrorIs(err, apperrors.ErrAccountFrozen)
	s.NotErrorIs(err, apperrors.ErrTargetNotActive)
	s.Equal("500.00", s.savings.Balance().StringFixed(2))
}

func (s *TransferTestSuite) TestTransfer_InsufficientFunds() {
	_, err := domain.Transfer(s.savings, s.checking, dec("500.01"))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Equal("500.00", s.savings.Balance().StringFixed(2))
	s.Equal("1000.00", s.checking.Balance().StringFixed(2))
	s.Empty(s.checking.TransactionsByKind(domain.KindTransfer))
}

func (s *TransferTestSuite) TestTransfer_OverdraftFeeOnSource() {
	receipt, err := domain.Transfer(s.checking, s.savings, dec("1100"))
	s.Require().NoError(err)

	s.Require().Len(receipt.Debits, 2)
	s.Equal(domain.KindFee, receipt.Debits[1].Kind())
	s.Equal("-135.00", s.checking.Balance().StringFixed(2))
	s.Equal("1600.00", s.savings.Balance().StringFixed(2))
}

func TestTransferTestSuite(t *testing.T) {
	suite.Run(t, new(TransferTestSuite))
}

func TestTransfer_ConcurrentOppositeDirections(t *testing.T) {
	a, err := domain.NewSavingsAccount("acc-a", "A", dec("0.01"))
	require.NoError(t, err)
	b, err := domain.NewSavingsAccount("acc-b", "B", dec("0.01"))
	require.NoError(t, err)
	_, _ = a.Deposit(dec("1000"))
	_, _ = b.Deposit(dec("1000"))

	const rounds = 200
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = domain.Transfer(a, b, dec("3"))
		}()
		go func() {
			defer wg.Done()
			_, _ = domain.Transfer(b, a, dec("3"))
		}()
	}
	wg.Wait()

	total := a.Balance().Add(b.Balance())
	assert.Equal(t, "2000.00", total.StringFixed(2))
	assert.Len(t, a.TransactionsByKind(domain.KindTransfer), 2*rounds)
	assert.Len(t, b.TransactionsByKind(domain.KindTransfer), 2*rounds)
}

func TestTransfer_ConcurrentRing(t *testing.T) {
	accounts := make([]*domain.Account, 5)
	for i := range accounts {
		acc, err := domain.NewSavingsAccount(fmt.Sprintf("ring-%d", i), "Ring", dec("0.01"))
		require.NoError(t, err)
		_, err = acc.Deposit(dec("100"))
		require.NoError(t, err)
		accounts[i] = acc
	}

	var wg sync.WaitGroup
	for round := 0; round < 50; round++ {
		for i := range accounts {
			wg.Add(1)
			go func(from, to *domain.Account) {
				defer wg.Done()
				_, _ = domain.Transfer(from, to, dec("1.25"))
			}(accounts[i], accounts[(i+1)%len(accounts)])
		}
	}
	wg.Wait()

	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance())
		assert.False(t, acc.Balance().IsNegative())
	}
	assert.Equal(t, "500.00", total.StringFixed(2))
}
