// Package memory keeps repository data in process memory. It backs
// STORAGE_DRIVER=memory and the service tests that want a real store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires fresh in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(),
		UserRepo:    NewUserRepository(),
		Close:       func() error { return nil },
	}
}

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.AccountSnapshot
}

// NewAccountRepository creates an empty account store.
func NewAccountRepository() portsrepo.AccountRepositoryFacade {
	return &accountRepository{accounts: make(map[string]domain.AccountSnapshot)}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) SaveAccount(ctx context.Context, snapshot domain.AccountSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.accounts[snapshot.AccountID]; ok && existing.Version >= snapshot.Version {
		return nil
	}
	r.accounts[snapshot.AccountID] = cloneSnapshot(snapshot)
	return nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AccountSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	out := cloneSnapshot(snap)
	return &out, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.AccountSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AccountSnapshot, 0, len(r.accounts))
	for _, snap := range r.accounts {
		out = append(out, cloneSnapshot(snap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func cloneSnapshot(s domain.AccountSnapshot) domain.AccountSnapshot {
	txns := make([]domain.TransactionSnapshot, len(s.Transactions))
	copy(txns, s.Transactions)
	s.Transactions = txns
	return s
}

type userRepository struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	byUsername map[string]string
}

// NewUserRepository creates an empty user store.
func NewUserRepository() portsrepo.UserRepositoryFacade {
	return &userRepository{
		users:      make(map[string]domain.User),
		byUsername: make(map[string]string),
	}
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ownerID, taken := r.byUsername[user.Username]; taken && ownerID != user.UserID {
		return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, user.Username)
	}
	r.users[user.UserID] = user
	r.byUsername[user.Username] = user.UserID
	return nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok || user.DeletedAt != nil {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	userID, ok := r.byUsername[username]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("username %s: %w", username, apperrors.ErrNotFound)
	}
	return r.FindUserByID(ctx, userID)
}
