package dto

import (
	"time"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest is the body of deposit and withdraw calls.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0" swaggertype:"string" example:"100.00"`
}

// TransferRequest is the body of a transfer call.
type TransferRequest struct {
	TargetAccountID string          `json:"targetAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"dgt0" swaggertype:"string" example:"25.00"`
}

// ListTransactionsParams filters an account's transaction log.
type ListTransactionsParams struct {
	Kind      domain.TransactionKind `form:"kind" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL TRANSFER FEE INTEREST REVERSAL"`
	Limit     int                    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string                 `form:"nextToken"`
}

// TransactionResponse defines the data returned for one transaction record.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Kind          domain.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount" swaggertype:"string"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.ID(),
		Kind:          t.Kind(),
		Amount:        t.Amount(),
		CreatedAt:     t.CreatedAt(),
	}
}

// ToTransactionResponses converts a slice of records, preserving order.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(t)
	}
	return res
}

// ListTransactionsResponse wraps an account's transaction log.
type ListTransactionsResponse struct {
	AccountID    string                `json:"accountID"`
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// MutationResponse is returned by deposit, withdraw and interest calls.
type MutationResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransferResponse reports both sides of a completed transfer.
type TransferResponse struct {
	SourceAccountID string                `json:"sourceAccountID"`
	TargetAccountID string                `json:"targetAccountID"`
	Amount          decimal.Decimal       `json:"amount" swaggertype:"string"`
	Debits          []TransactionResponse `json:"debits"`
	Credit          *TransactionResponse  `json:"credit,omitempty"`
	SourceBalance   decimal.Decimal       `json:"sourceBalance" swaggertype:"string"`
}

// ToTransferResponse converts a receipt plus the source's new balance.
func ToTransferResponse(r domain.TransferReceipt, sourceBalance decimal.Decimal) TransferResponse {
	res := TransferResponse{
		SourceAccountID: r.SourceID,
		TargetAccountID: r.TargetID,
		Amount:          r.Amount,
		Debits:          ToTransactionResponses(r.Debits),
		SourceBalance:   sourceBalance,
	}
	if r.Credit != nil {
		credit := ToTransactionResponse(*r.Credit)
		res.Credit = &credit
	}
	return res
}
