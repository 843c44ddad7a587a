package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountStatusError reports an operation attempted on an account whose status
// does not permit it. It matches ErrAccountFrozen or ErrAccountClosed through errors.Is.
type AccountStatusError struct {
	AccountID string
	Status    string
	Op        string
}

func (e *AccountStatusError) Error() string {
	return fmt.Sprintf("%s on account %s: account is %s", e.Op, e.AccountID, e.Status)
}

// Is lets callers match the frozen/closed sentinels.
func (e *AccountStatusError) Is(target error) bool {
	switch target {
	case ErrAccountFrozen:
		return e.Status == "FROZEN"
	case ErrAccountClosed:
		return e.Status == "CLOSED"
	}
	return false
}

// NewAccountStatusError builds an AccountStatusError for the given operation.
func NewAccountStatusError(accountID, status, op string) *AccountStatusError {
	return &AccountStatusError{AccountID: accountID, Status: status, Op: op}
}

// TransferRollbackError is returned when a transfer's deposit into the target
// failed and the compensating deposit back into the source failed as well.
// Cause is the original target failure, RollbackErr the compensating failure.
type TransferRollbackError struct {
	SourceID    string
	TargetID    string
	Amount      decimal.Decimal
	Cause       error
	RollbackErr error
}

func (e *TransferRollbackError) Error() string {
	return fmt.Sprintf("transfer of %s from %s to %s failed (%v) and rollback failed (%v): funds are in flight",
		e.Amount.StringFixed(2), e.SourceID, e.TargetID, e.Cause, e.RollbackErr)
}

// Is matches ErrTransferRollbackFailed.
func (e *TransferRollbackError) Is(target error) bool {
	return target == ErrTransferRollbackFailed
}

func (e *TransferRollbackError) Unwrap() []error {
	return []error{e.Cause, e.RollbackErr}
}

// IsAccountStatus reports whether err carries an AccountStatusError.
func IsAccountStatus(err error) bool {
	var statusErr *AccountStatusError
	return errors.As(err, &statusErr)
}
