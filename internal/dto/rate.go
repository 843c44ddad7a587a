package dto

import "github.com/shopspring/decimal"

// InterestRateRequest sets the shared interest rate applied to checking accounts.
type InterestRateRequest struct {
	Rate *decimal.Decimal `json:"rate" binding:"required,drate" swaggertype:"string" example:"0.05"`
}

// InterestRateResponse reports the shared interest rate.
type InterestRateResponse struct {
	Rate decimal.Decimal `json:"rate" swaggertype:"string"`
}

// InterestBatchResponse summarises one pass of interest over all savings accounts.
type InterestBatchResponse struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
