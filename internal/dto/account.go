package dto

import (
	"time"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a new account.
type OpenAccountRequest struct {
	OwnerName   string             `json:"ownerName" binding:"required,max=200"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS"`
	// OverdraftLimit applies to CHECKING accounts; defaults to 500.
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit,omitempty" binding:"omitempty,dgte0" swaggertype:"string"`
	// InterestRate applies to SAVINGS accounts; defaults to 0.02.
	InterestRate *decimal.Decimal `json:"interestRate,omitempty" binding:"omitempty,drate" swaggertype:"string"`
}

// Kind resolves the request into the account's variant payload, filling defaults.
func (r OpenAccountRequest) Kind() domain.Kind {
	switch r.AccountType {
	case domain.Savings:
		rate := domain.DefaultSavingsRate
		if r.InterestRate != nil {
			rate = *r.InterestRate
		}
		return domain.SavingsKind(rate)
	case domain.Checking:
		limit := domain.DefaultOverdraftLimit
		if r.OverdraftLimit != nil {
			limit = *r.OverdraftLimit
		}
		return domain.CheckingKind(limit)
	}
	return domain.Kind{Type: r.AccountType}
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string               `json:"accountID"`
	OwnerName      string               `json:"ownerName"`
	AccountType    domain.AccountType   `json:"accountType"`
	Status         domain.AccountStatus `json:"status"`
	StatusReason   string               `json:"statusReason,omitempty"`
	Balance        decimal.Decimal      `json:"balance" swaggertype:"string"`
	OverdraftLimit *decimal.Decimal     `json:"overdraftLimit,omitempty" swaggertype:"string"`
	InterestRate   *decimal.Decimal     `json:"interestRate,omitempty" swaggertype:"string"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	snap := acc.Snapshot()
	res := AccountResponse{
		AccountID:    snap.AccountID,
		OwnerName:    snap.OwnerName,
		AccountType:  snap.Kind.Type,
		Status:       snap.Status,
		StatusReason: snap.StatusReason,
		Balance:      snap.Balance,
		CreatedAt:    snap.CreatedAt,
	}
	switch snap.Kind.Type {
	case domain.Checking:
		limit := snap.Kind.OverdraftLimit
		res.OverdraftLimit = &limit
	case domain.Savings:
		rate := snap.Kind.InterestRate
		res.InterestRate = &rate
	}
	return res
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []*domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// StatusChangeRequest carries the reason recorded with a freeze, unfreeze or close.
type StatusChangeRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
