package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the requested resource.
var ErrForbidden = errors.New("forbidden")

// Account and transfer failures. Every one of these is detected before the
// operation that reports it has changed any state.
var (
	// ErrInvalidAmount is returned for amounts that are zero, negative or unparsable.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds is returned when a withdrawal would breach the
	// zero floor (savings) or the overdraft floor including the fee (checking).
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountFrozen and ErrAccountClosed are matched by *AccountStatusError.
	ErrAccountFrozen = errors.New("account is frozen")
	ErrAccountClosed = errors.New("account is closed")

	// ErrAccountNotZero is returned when closing an account whose balance is not exactly zero.
	ErrAccountNotZero = errors.New("account balance must be zero to close")

	ErrTargetNotActive = errors.New("target account is not active")
	ErrSameAccount     = errors.New("cannot transfer to the same account")

	// ErrTransferRollbackFailed marks a transfer whose compensating deposit
	// failed: the amount left the source and reached no account.
	ErrTransferRollbackFailed = errors.New("transfer rollback failed")
)
