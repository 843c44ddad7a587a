package domain

import (
	"fmt"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// withdrawLocked runs the shared guards and then the variant's sufficiency rule.
// Callers must hold the write lock.
func (a *Account) withdrawLocked(amount decimal.Decimal, kind TransactionKind) ([]Transaction, error) {
	if err := a.checkMutable("withdraw", amount); err != nil {
		return nil, err
	}
	switch a.kind.Type {
	case Savings:
		return a.withdrawSavingsLocked(amount, kind)
	case Checking:
		return a.withdrawCheckingLocked(amount, kind)
	}
	return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, a.kind.Type)
}

func (a *Account) withdrawSavingsLocked(amount decimal.Decimal, kind TransactionKind) ([]Transaction, error) {
	if amount.GreaterThan(a.balance) {
		return nil, fmt.Errorf("withdraw %s from account %s with available %s: %w",
			amount.StringFixed(2), a.id, a.balance.StringFixed(2), apperrors.ErrInsufficientFunds)
	}
	a.balance = a.balance.Sub(amount)
	return []Transaction{a.appendLocked(amount, kind)}, nil
}

// withdrawCheckingLocked allows the balance to go down to -OverdraftLimit. A
// withdrawal that takes a non-negative balance below zero also pays the flat
// OverdraftFee, and the fee must fit inside the limit too.
func (a *Account) withdrawCheckingLocked(amount decimal.Decimal, kind TransactionKind) ([]Transaction, error) {
	wasNonNegative := !a.balance.IsNegative()
	after := a.balance.Sub(amount)

	fee := decimal.Zero
	if wasNonNegative && after.IsNegative() {
		fee = OverdraftFee
	}
	floor := a.kind.OverdraftLimit.Neg()
	if after.Sub(fee).LessThan(floor) {
		return nil, fmt.Errorf("withdraw %s (fee %s) from account %s with balance %s and overdraft limit %s: %w",
			amount.StringFixed(2), fee.StringFixed(2), a.id, a.balance.StringFixed(2),
			a.kind.OverdraftLimit.StringFixed(2), apperrors.ErrInsufficientFunds)
	}

	a.balance = after
	records := []Transaction{a.appendLocked(amount, kind)}

	// The fee step has no guards of its own: the account was validated above.
	if wasNonNegative && a.balance.IsNegative() {
		a.balance = a.balance.Sub(OverdraftFee)
		records = append(records, a.appendLocked(OverdraftFee, KindFee))
	}
	return records, nil
}
