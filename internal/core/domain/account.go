package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType selects the withdrawal and interest behaviour of an account.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// AccountStatus governs which operations an account accepts.
type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusFrozen AccountStatus = "FROZEN"
	StatusClosed AccountStatus = "CLOSED"
)

// IsValid reports whether s is a known status.
func (s AccountStatus) IsValid() bool {
	return s == StatusActive || s == StatusFrozen || s == StatusClosed
}

var (
	// DefaultOverdraftLimit applies to checking accounts opened without an explicit limit.
	DefaultOverdraftLimit = decimal.NewFromInt(500)
	// OverdraftFee is charged once each time a checking balance crosses below zero.
	OverdraftFee = decimal.NewFromInt(35)
	// DefaultSavingsRate applies to savings accounts opened without an explicit rate.
	DefaultSavingsRate = decimal.RequireFromString("0.02")
)

// Kind is the variant payload of an account. Only the field matching Type is meaningful.
type Kind struct {
	Type           AccountType     `json:"type"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	InterestRate   decimal.Decimal `json:"interestRate"`
}

// CheckingKind returns a checking payload with the given overdraft limit.
func CheckingKind(overdraftLimit decimal.Decimal) Kind {
	return Kind{Type: Checking, OverdraftLimit: overdraftLimit}
}

// SavingsKind returns a savings payload with the given interest rate.
func SavingsKind(interestRate decimal.Decimal) Kind {
	return Kind{Type: Savings, InterestRate: interestRate}
}

// Validate checks the variant parameters.
func (k Kind) Validate() error {
	switch k.Type {
	case Checking:
		if k.OverdraftLimit.IsNegative() {
			return fmt.Errorf("%w: overdraft limit cannot be negative", apperrors.ErrValidation)
		}
	case Savings:
		if err := ValidateRate(k.InterestRate); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, k.Type)
	}
	return nil
}

// ValidateRate checks that an interest rate lies within [0, 1].
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: interest rate must be between 0 and 1, got %s", apperrors.ErrValidation, rate)
	}
	return nil
}

// Account holds a balance, a status and an append-only transaction log.
// All methods are safe for concurrent use; mutations are serialised per account.
type Account struct {
	mu           sync.RWMutex
	id           string
	ownerName    string
	kind         Kind
	balance      decimal.Decimal
	status       AccountStatus
	statusReason string
	transactions []Transaction
	createdAt    time.Time
	version      int64
}

// NewAccount opens an ACTIVE account with a zero balance.
func NewAccount(id, ownerName string, kind Kind) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: account id cannot be empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(ownerName) == "" {
		return nil, fmt.Errorf("%w: owner name cannot be empty", apperrors.ErrValidation)
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return &Account{
		id:        id,
		ownerName: ownerName,
		kind:      kind,
		balance:   decimal.Zero,
		status:    StatusActive,
		createdAt: time.Now().UTC(),
	}, nil
}

// NewCheckingAccount opens a checking account with the given overdraft limit.
func NewCheckingAccount(id, ownerName string, overdraftLimit decimal.Decimal) (*Account, error) {
	return NewAccount(id, ownerName, CheckingKind(overdraftLimit))
}

// NewSavingsAccount opens a savings account with the given interest rate.
func NewSavingsAccount(id, ownerName string, interestRate decimal.Decimal) (*Account, error) {
	return NewAccount(id, ownerName, SavingsKind(interestRate))
}

func (a *Account) ID() string           { return a.id }
func (a *Account) OwnerName() string    { return a.ownerName }
func (a *Account) Kind() Kind           { return a.kind }
func (a *Account) Type() AccountType    { return a.kind.Type }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

func (a *Account) Status() AccountStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// StatusReason is the reason given for the most recent status change.
func (a *Account) StatusReason() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.statusReason
}

// Version counts mutations; storage uses it to discard stale snapshots.
func (a *Account) Version() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.version
}

// Transactions returns a copy of the log in chronological order.
func (a *Account) Transactions() []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// TransactionsByKind returns the records of one kind, preserving log order.
func (a *Account) TransactionsByKind(kind TransactionKind) []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Transaction, 0)
	for _, t := range a.transactions {
		if t.kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Deposit adds amount to the balance and records a DEPOSIT.
func (a *Account) Deposit(amount decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depositLocked(amount, KindDeposit)
}

// Withdraw removes amount under the account's variant rule and returns the
// records it appended: the WITHDRAWAL, followed by a FEE when a checking
// balance crossed below zero.
func (a *Account) Withdraw(amount decimal.Decimal) ([]Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount, KindWithdrawal)
}

// Freeze blocks balance-changing operations until Unfreeze. Freezing a frozen
// account succeeds; a closed account cannot change status.
func (a *Account) Freeze(reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setStatusLocked(StatusFrozen, reason, "freeze")
}

// Unfreeze returns the account to ACTIVE. Unfreezing an active account succeeds.
func (a *Account) Unfreeze(reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setStatusLocked(StatusActive, reason, "unfreeze")
}

// Close permanently closes an account whose balance is exactly zero.
func (a *Account) Close(reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.balance.IsZero() {
		return fmt.Errorf("close account %s with balance %s: %w", a.id, a.balance.StringFixed(2), apperrors.ErrAccountNotZero)
	}
	if a.status == StatusClosed {
		return nil
	}
	a.status = StatusClosed
	a.statusReason = reason
	a.version++
	return nil
}

func (a *Account) setStatusLocked(status AccountStatus, reason, op string) error {
	if a.status == StatusClosed {
		return apperrors.NewAccountStatusError(a.id, string(a.status), op)
	}
	if a.status == status {
		return nil
	}
	a.status = status
	a.statusReason = reason
	a.version++
	return nil
}

// checkMutable applies the status guard followed by the amount guard.
func (a *Account) checkMutable(op string, amount decimal.Decimal) error {
	switch a.status {
	case StatusClosed, StatusFrozen:
		return apperrors.NewAccountStatusError(a.id, string(a.status), op)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%s %s on account %s: %w", op, amount, a.id, apperrors.ErrInvalidAmount)
	}
	return nil
}

func (a *Account) depositLocked(amount decimal.Decimal, kind TransactionKind) (Transaction, error) {
	if err := a.checkMutable("deposit", amount); err != nil {
		return Transaction{}, err
	}
	a.balance = a.balance.Add(amount)
	return a.appendLocked(amount, kind), nil
}

func (a *Account) appendLocked(amount decimal.Decimal, kind TransactionKind) Transaction {
	t := NewTransaction(amount, kind)
	a.transactions = append(a.transactions, t)
	a.version++
	return t
}

// lockPair takes both write locks in ascending id order.
func lockPair(x, y *Account) (unlock func()) {
	first, second := x, y
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

// these let the transfer protocol run against the unlocked internals.
func (a *Account) accountID() string            { return a.id }
func (a *Account) accountStatus() AccountStatus { return a.status }
