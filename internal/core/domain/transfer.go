package domain

import (
	"fmt"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransferReceipt describes what a transfer left behind on each side.
type TransferReceipt struct {
	SourceID string
	TargetID string
	Amount   decimal.Decimal
	// Debits are the source records: the TRANSFER withdrawal and, for a
	// checking source entering overdraft, the FEE.
	Debits []Transaction
	// Credit is the target's TRANSFER record; nil unless the transfer completed.
	Credit *Transaction
	// Reversal is the source's compensating REVERSAL record after a failed deposit.
	Reversal *Transaction
}

// Completed reports whether both sides hold their TRANSFER records.
func (r TransferReceipt) Completed() bool {
	return r.Credit != nil
}

// RolledBack reports whether the withdrawn amount was returned to the source.
func (r TransferReceipt) RolledBack() bool {
	return r.Reversal != nil
}

// transferParty is the slice of an account the transfer protocol drives once
// both locks are held.
type transferParty interface {
	accountID() string
	accountStatus() AccountStatus
	withdrawLocked(amount decimal.Decimal, kind TransactionKind) ([]Transaction, error)
	depositLocked(amount decimal.Decimal, kind TransactionKind) (Transaction, error)
}

// Transfer moves amount from source to target as a withdrawal followed by a
// deposit. When the deposit fails the amount is deposited back into source as
// a REVERSAL and the deposit failure is returned. If that compensating deposit
// fails too, a *apperrors.TransferRollbackError is returned.
//
// Both accounts stay locked for the whole protocol, taken in ascending id order.
func Transfer(source, target *Account, amount decimal.Decimal) (TransferReceipt, error) {
	receipt := TransferReceipt{SourceID: source.id, TargetID: target.id, Amount: amount}
	if !amount.IsPositive() {
		return receipt, fmt.Errorf("transfer %s: %w", amount, apperrors.ErrInvalidAmount)
	}
	if source == target || source.id == target.id {
		return receipt, fmt.Errorf("transfer from %s: %w", source.id, apperrors.ErrSameAccount)
	}

	unlock := lockPair(source, target)
	defer unlock()
	return runTransfer(source, target, amount)
}

func runTransfer(source, target transferParty, amount decimal.Decimal) (TransferReceipt, error) {
	receipt := TransferReceipt{SourceID: source.accountID(), TargetID: target.accountID(), Amount: amount}

	if status := target.accountStatus(); status != StatusActive {
		return receipt, fmt.Errorf("%w: %w", apperrors.ErrTargetNotActive,
			apperrors.NewAccountStatusError(target.accountID(), string(status), "transfer"))
	}

	debits, err := source.withdrawLocked(amount, KindTransfer)
	if err != nil {
		return receipt, err
	}
	receipt.Debits = debits

	credit, depositErr := target.depositLocked(amount, KindTransfer)
	if depositErr == nil {
		receipt.Credit = &credit
		return receipt, nil
	}

	reversal, rollbackErr := source.depositLocked(amount, KindReversal)
	if rollbackErr != nil {
		return receipt, &apperrors.TransferRollbackError{
			SourceID:    source.accountID(),
			TargetID:    target.accountID(),
			Amount:      amount,
			Cause:       depositErr,
			RollbackErr: rollbackErr,
		}
	}
	receipt.Reversal = &reversal
	return receipt, fmt.Errorf("transfer to %s reversed: %w", target.accountID(), depositErr)
}
