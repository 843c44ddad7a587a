package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestRateService(t *testing.T) {
	ctx := context.Background()
	svc := services.NewInterestRateService(amount("0.05"))
	assert.Equal(t, "0.05", svc.InterestRate().String())

	require.NoError(t, svc.SetInterestRate(ctx, amount("0.10")))
	assert.Equal(t, "0.1", svc.InterestRate().String())

	require.NoError(t, svc.SetInterestRate(ctx, amount("0")))
	require.NoError(t, svc.SetInterestRate(ctx, amount("1")))

	assert.ErrorIs(t, svc.SetInterestRate(ctx, amount("1.01")), apperrors.ErrValidation)
	assert.ErrorIs(t, svc.SetInterestRate(ctx, amount("-0.01")), apperrors.ErrValidation)
	assert.Equal(t, "1", svc.InterestRate().String())
}
