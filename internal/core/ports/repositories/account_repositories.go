package repositories

import (
	"context"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves the stored snapshot of one account.
	FindAccountByID(ctx context.Context, accountID string) (*domain.AccountSnapshot, error)

	// ListAccounts retrieves every stored account snapshot.
	ListAccounts(ctx context.Context) ([]domain.AccountSnapshot, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount upserts the account row and appends any transaction records
	// not yet stored. A snapshot whose Version is not newer than the stored one
	// is ignored, so concurrent writers can save in any order.
	SaveAccount(ctx context.Context, snapshot domain.AccountSnapshot) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
