package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService is the account registry. It owns the live *domain.Account
// values, delegates every balance rule to the domain, and writes a snapshot
// of each changed account to the repository afterwards.
type accountService struct {
	BaseService
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	repo     portsrepo.AccountRepositoryFacade
	rates    domain.RateProvider
	newID    func() string
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithRateProvider sets the shared rate checking accounts earn interest at.
func WithRateProvider(rates domain.RateProvider) AccountServiceOption {
	return func(s *accountService) {
		s.rates = rates
	}
}

// WithIDGenerator replaces uuid.NewString for new account ids.
func WithIDGenerator(fn func() string) AccountServiceOption {
	return func(s *accountService) {
		s.newID = fn
	}
}

// NewAccountService creates a new account registry with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accounts: make(map[string]*domain.Account),
		repo:     repo,
		newID:    uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// Load replaces the registry with the accounts held in the repository.
func (s *accountService) Load(ctx context.Context) error {
	snapshots, err := s.repo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository")
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	loaded := make(map[string]*domain.Account, len(snapshots))
	for _, snap := range snapshots {
		acc, err := domain.RestoreAccount(snap)
		if err != nil {
			s.LogError(ctx, err, "Failed to restore account", slog.String("account_id", snap.AccountID))
			return err
		}
		loaded[acc.ID()] = acc
	}

	s.mu.Lock()
	s.accounts = loaded
	s.mu.Unlock()

	s.LogInfo(ctx, "Accounts loaded", slog.Int("count", len(loaded)))
	return nil
}

func (s *accountService) OpenAccount(ctx context.Context, ownerName string, kind domain.Kind) (*domain.Account, error) {
	acc, err := domain.NewAccount(s.newID(), ownerName, kind)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected account opening", slog.String("account_type", string(kind.Type)))
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.accounts[acc.ID()]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, acc.ID())
	}
	s.accounts[acc.ID()] = acc
	s.mu.Unlock()

	if err := s.repo.SaveAccount(ctx, acc.Snapshot()); err != nil {
		// Nothing has happened to the account yet, so the opening is undone.
		s.mu.Lock()
		delete(s.accounts, acc.ID())
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", acc.ID()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account opened",
		slog.String("account_id", acc.ID()),
		slog.String("account_type", string(kind.Type)))
	return acc, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	acc, ok := s.accounts[accountID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return acc, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	out := make([]*domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() < out[j].ID()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (s *accountService) TransactionsByKind(ctx context.Context, accountID string, kind domain.TransactionKind) ([]domain.Transaction, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return acc.Transactions(), nil
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}
	return acc.TransactionsByKind(kind), nil
}

func (s *accountService) Statement(ctx context.Context, accountID string) (domain.Statement, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return domain.Statement{}, err
	}
	return acc.Statement(), nil
}

func (s *accountService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	record, err := acc.Deposit(amount)
	if err != nil {
		s.LogWarn(ctx, err, "Deposit rejected", slog.String("account_id", accountID), slog.String("amount", amount.String()))
		return domain.Transaction{}, err
	}
	s.persist(ctx, acc)
	s.LogInfo(ctx, "Deposit applied",
		slog.String("account_id", accountID),
		slog.String("transaction_id", record.ID()),
		slog.String("amount", amount.String()))
	return record, nil
}

func (s *accountService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) ([]domain.Transaction, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	records, err := acc.Withdraw(amount)
	if err != nil {
		s.LogWarn(ctx, err, "Withdrawal rejected", slog.String("account_id", accountID), slog.String("amount", amount.String()))
		return nil, err
	}
	s.persist(ctx, acc)
	s.logFees(ctx, accountID, records)
	s.LogInfo(ctx, "Withdrawal applied",
		slog.String("account_id", accountID),
		slog.String("amount", amount.String()))
	return records, nil
}

func (s *accountService) Transfer(ctx context.Context, sourceID, targetID string, amount decimal.Decimal) (domain.TransferReceipt, error) {
	source, err := s.GetAccount(ctx, sourceID)
	if err != nil {
		return domain.TransferReceipt{}, err
	}
	target, err := s.GetAccount(ctx, targetID)
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	logAttrs := []any{
		slog.String("source_account_id", sourceID),
		slog.String("target_account_id", targetID),
		slog.String("amount", amount.String()),
	}

	receipt, err := domain.Transfer(source, target, amount)
	switch {
	case err == nil:
		s.persist(ctx, source, target)
		s.logFees(ctx, sourceID, receipt.Debits)
		s.LogInfo(ctx, "Transfer completed", logAttrs...)
		return receipt, nil
	case errors.Is(err, apperrors.ErrTransferRollbackFailed):
		// The source is short by the transfer amount and holds no REVERSAL.
		s.persist(ctx, source)
		s.LogError(ctx, err, "Transfer rollback failed, manual reconciliation required", logAttrs...)
		return receipt, err
	case receipt.RolledBack():
		s.persist(ctx, source)
		s.logFees(ctx, sourceID, receipt.Debits)
		s.LogWarn(ctx, err, "Transfer reversed after deposit failure", logAttrs...)
		return receipt, err
	default:
		s.LogWarn(ctx, err, "Transfer rejected", logAttrs...)
		return receipt, err
	}
}

func (s *accountService) ApplyInterest(ctx context.Context, accountID string) (*domain.Transaction, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	record, err := acc.ApplyInterest(s.rates)
	if err != nil {
		s.LogWarn(ctx, err, "Interest rejected", slog.String("account_id", accountID))
		return nil, err
	}
	if record == nil {
		s.LogDebug(ctx, "No interest due", slog.String("account_id", accountID))
		return nil, nil
	}
	s.persist(ctx, acc)
	s.LogInfo(ctx, "Interest applied",
		slog.String("account_id", accountID),
		slog.String("amount", record.Amount().String()))
	return record, nil
}

// PayGlobalInterest credits interest to every ACTIVE savings account. Frozen
// and closed savings accounts, and accounts with nothing to earn, are skipped.
// One account failing does not stop the batch.
func (s *accountService) PayGlobalInterest(ctx context.Context) (portssvc.InterestBatchResult, error) {
	var result portssvc.InterestBatchResult

	accounts, _ := s.ListAccounts(ctx)
	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if acc.Type() != domain.Savings {
			continue
		}
		if acc.Status() != domain.StatusActive {
			result.Skipped++
			continue
		}
		record, err := acc.ApplyInterest(s.rates)
		switch {
		case err != nil:
			result.Failed++
			s.LogError(ctx, err, "Interest batch failed for account", slog.String("account_id", acc.ID()))
		case record == nil:
			result.Skipped++
		default:
			result.Applied++
			s.persist(ctx, acc)
		}
	}

	s.LogInfo(ctx, "Interest batch finished",
		slog.Int("applied", result.Applied),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (s *accountService) FreezeAccount(ctx context.Context, accountID, reason string) error {
	return s.changeStatus(ctx, accountID, reason, "freeze", (*domain.Account).Freeze)
}

func (s *accountService) UnfreezeAccount(ctx context.Context, accountID, reason string) error {
	return s.changeStatus(ctx, accountID, reason, "unfreeze", (*domain.Account).Unfreeze)
}

func (s *accountService) CloseAccount(ctx context.Context, accountID, reason string) error {
	return s.changeStatus(ctx, accountID, reason, "close", (*domain.Account).Close)
}

func (s *accountService) changeStatus(ctx context.Context, accountID, reason, op string, apply func(*domain.Account, string) error) error {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	before := acc.Version()
	if err := apply(acc, reason); err != nil {
		s.LogWarn(ctx, err, "Account status change rejected",
			slog.String("account_id", accountID),
			slog.String("op", op))
		return err
	}
	if acc.Version() != before {
		s.persist(ctx, acc)
	}
	s.LogInfo(ctx, "Account status changed",
		slog.String("account_id", accountID),
		slog.String("op", op),
		slog.String("status", string(acc.Status())),
		slog.String("reason", reason))
	return nil
}

// persist saves the current snapshot of each account. The in-memory change has
// already happened, so a storage failure is logged rather than returned; the
// next successful save of the account carries the missing records with it.
func (s *accountService) persist(ctx context.Context, accounts ...*domain.Account) {
	for _, acc := range accounts {
		if err := s.repo.SaveAccount(ctx, acc.Snapshot()); err != nil {
			s.LogError(ctx, err, "Failed to persist account snapshot", slog.String("account_id", acc.ID()))
		}
	}
}

func (s *accountService) logFees(ctx context.Context, accountID string, records []domain.Transaction) {
	for _, t := range records {
		if t.Kind() == domain.KindFee {
			s.LogInfo(ctx, "Overdraft fee charged",
				slog.String("account_id", accountID),
				slog.String("transaction_id", t.ID()),
				slog.String("amount", t.Amount().String()))
		}
	}
}
