package pgsql

import (
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_account_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories around one pool.
// Close releases the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(base),
		UserRepo:    newPgxUserRepository(base),
		Close: func() error {
			database.ClosePgxPool(dbPool)
			return nil
		},
	}
}
