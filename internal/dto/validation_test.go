package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, registerDecimalRules(v))
	return v
}

func TestAmountRequestValidation(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(AmountRequest{Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.Struct(AmountRequest{Amount: decimal.Zero}))
	assert.Error(t, v.Struct(AmountRequest{Amount: decimal.RequireFromString("-10")}))
}

func TestTransferRequestValidation(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(TransferRequest{TargetAccountID: "acc-2", Amount: decimal.NewFromInt(5)}))
	assert.Error(t, v.Struct(TransferRequest{Amount: decimal.NewFromInt(5)}))
	assert.Error(t, v.Struct(TransferRequest{TargetAccountID: "acc-2"}))
}

func TestOpenAccountRequestValidation(t *testing.T) {
	v := newTestValidator(t)
	rate := decimal.RequireFromString("0.04")
	badRate := decimal.RequireFromString("1.5")
	negative := decimal.RequireFromString("-1")

	assert.NoError(t, v.Struct(OpenAccountRequest{OwnerName: "Ann", AccountType: "SAVINGS", InterestRate: &rate}))
	assert.NoError(t, v.Struct(OpenAccountRequest{OwnerName: "Ann", AccountType: "CHECKING"}))
	assert.Error(t, v.Struct(OpenAccountRequest{OwnerName: "Ann", AccountType: "SAVINGS", InterestRate: &badRate}))
	assert.Error(t, v.Struct(OpenAccountRequest{OwnerName: "Ann", AccountType: "CHECKING", OverdraftLimit: &negative}))
	assert.Error(t, v.Struct(OpenAccountRequest{OwnerName: "Ann", AccountType: "BROKERAGE"}))
	assert.Error(t, v.Struct(OpenAccountRequest{AccountType: "CHECKING"}))
}

func TestInterestRateRequestValidation(t *testing.T) {
	v := newTestValidator(t)
	zero := decimal.Zero
	high := decimal.RequireFromString("1.01")

	assert.NoError(t, v.Struct(InterestRateRequest{Rate: &zero}))
	assert.Error(t, v.Struct(InterestRateRequest{Rate: &high}))
	assert.Error(t, v.Struct(InterestRateRequest{}))
}

func TestOpenAccountRequestKind(t *testing.T) {
	limit := decimal.NewFromInt(100)
	kind := OpenAccountRequest{OwnerName: "Ann", AccountType: "CHECKING", OverdraftLimit: &limit}.Kind()
	assert.True(t, limit.Equal(kind.OverdraftLimit))

	kind = OpenAccountRequest{OwnerName: "Ann", AccountType: "SAVINGS"}.Kind()
	assert.Equal(t, "0.02", kind.InterestRate.String())
}
