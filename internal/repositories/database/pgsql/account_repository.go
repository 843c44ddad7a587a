package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_account_app/internal/models"
	"github.com/SscSPs/bank_account_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, owner_name, account_type, overdraft_limit, interest_rate,
	balance, status, status_reason, version, created_at, last_updated_at`

// SaveAccount upserts the account row and appends the transactions the
// database has not seen yet, in one transaction. A snapshot whose version is
// not newer than the stored row is ignored.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, snapshot domain.AccountSnapshot) error {
	row := mapping.ToModelAccount(snapshot)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	upsert := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (account_id) DO UPDATE SET
			balance = EXCLUDED.balance,
			status = EXCLUDED.status,
			status_reason = EXCLUDED.status_reason,
			version = EXCLUDED.version,
			last_updated_at = EXCLUDED.last_updated_at
		WHERE accounts.version < EXCLUDED.version;
	`
	tag, err := tx.Exec(ctx, upsert,
		row.AccountID,
		row.OwnerName,
		row.AccountType,
		row.OverdraftLimit,
		row.InterestRate,
		row.Balance,
		row.Status,
		row.StatusReason,
		row.Version,
		row.CreatedAt,
		row.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", row.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		// Stored copy is as new or newer.
		return nil
	}

	var lastSeq int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq), -1) FROM account_transactions WHERE account_id = $1`,
		row.AccountID,
	).Scan(&lastSeq)
	if err != nil {
		return fmt.Errorf("failed to read transaction log position for %s: %w", row.AccountID, err)
	}

	batch := &pgx.Batch{}
	for _, t := range mapping.ToModelTransactions(snapshot) {
		if t.Seq <= lastSeq {
			continue
		}
		batch.Queue(`
			INSERT INTO account_transactions (transaction_id, account_id, seq, kind, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (transaction_id) DO NOTHING;`,
			t.TransactionID, t.AccountID, t.Seq, t.Kind, t.Amount, t.CreatedAt,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: transaction log of %s diverged from storage", apperrors.ErrDuplicate, row.AccountID)
			}
			return fmt.Errorf("failed to append transactions for %s: %w", row.AccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AccountSnapshot, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	row, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	txns, err := r.loadTransactions(ctx, `WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	snapshot := mapping.ToAccountSnapshot(row, txns[accountID])
	return &snapshot, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.AccountSnapshot, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, account_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	txns, err := r.loadTransactions(ctx, "")
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.AccountSnapshot, 0, len(accounts))
	for _, acc := range accounts {
		snapshots = append(snapshots, mapping.ToAccountSnapshot(acc, txns[acc.AccountID]))
	}
	return snapshots, nil
}

// loadTransactions returns transaction rows grouped by account, each group in log order.
func (r *PgxAccountRepository) loadTransactions(ctx context.Context, where string, args ...any) (map[string][]models.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, seq, kind, amount, created_at
		FROM account_transactions ` + where + `
		ORDER BY account_id, seq;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account transactions: %w", err)
	}
	defer rows.Close()

	byAccount := make(map[string][]models.Transaction)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.TransactionID, &t.AccountID, &t.Seq, &t.Kind, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		byAccount[t.AccountID] = append(byAccount[t.AccountID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return byAccount, nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OwnerName,
		&m.AccountType,
		&m.OverdraftLimit,
		&m.InterestRate,
		&m.Balance,
		&m.Status,
		&m.StatusReason,
		&m.Version,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}
