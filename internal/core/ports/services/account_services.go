package services

import (
	"context"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a registered account by id.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns every registered account ordered by creation time.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)

	// TransactionsByKind returns the account's records of one kind; an empty
	// kind returns the whole log.
	TransactionsByKind(ctx context.Context, accountID string, kind domain.TransactionKind) ([]domain.Transaction, error)

	// Statement renders the account's log and balance.
	Statement(ctx context.Context, accountID string) (domain.Statement, error)
}

// AccountWriterSvc defines the balance-changing operations
type AccountWriterSvc interface {
	// OpenAccount registers a new ACTIVE account under a fresh id.
	OpenAccount(ctx context.Context, ownerName string, kind domain.Kind) (*domain.Account, error)

	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error)

	// Withdraw returns the WITHDRAWAL record and, when an overdraft fee was
	// charged, the FEE record.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) ([]domain.Transaction, error)

	Transfer(ctx context.Context, sourceID, targetID string, amount decimal.Decimal) (domain.TransferReceipt, error)

	// ApplyInterest credits one account at its resolved rate; a nil record means no profit.
	ApplyInterest(ctx context.Context, accountID string) (*domain.Transaction, error)
}

// AccountLifecycleSvc defines status transitions
type AccountLifecycleSvc interface {
	FreezeAccount(ctx context.Context, accountID, reason string) error
	UnfreezeAccount(ctx context.Context, accountID, reason string) error
	CloseAccount(ctx context.Context, accountID, reason string) error
}

// InterestBatchResult summarises one PayGlobalInterest pass.
type InterestBatchResult struct {
	Applied int
	Skipped int
	Failed  int
}

// InterestBatchSvc pays interest across the registry
type InterestBatchSvc interface {
	// PayGlobalInterest applies interest to every SAVINGS account.
	PayGlobalInterest(ctx context.Context) (InterestBatchResult, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLifecycleSvc
	InterestBatchSvc
	// Load rebuilds the registry from storage.
	Load(ctx context.Context) error
}

// InterestRateSvc holds the shared default rate used by checking accounts.
type InterestRateSvc interface {
	domain.RateProvider
	SetInterestRate(ctx context.Context, rate decimal.Decimal) error
}
