package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// interestRateService holds the process-wide default rate applied to checking accounts.
type interestRateService struct {
	BaseService
	mu   sync.RWMutex
	rate decimal.Decimal
}

// NewInterestRateService creates the shared rate holder. The initial rate is
// validated by configuration loading.
func NewInterestRateService(initial decimal.Decimal) portssvc.InterestRateSvc {
	return &interestRateService{rate: initial}
}

var _ portssvc.InterestRateSvc = (*interestRateService)(nil)

func (s *interestRateService) InterestRate() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate
}

func (s *interestRateService) SetInterestRate(ctx context.Context, rate decimal.Decimal) error {
	if err := domain.ValidateRate(rate); err != nil {
		return err
	}
	s.mu.Lock()
	previous := s.rate
	s.rate = rate
	s.mu.Unlock()

	s.LogInfo(ctx, "Default interest rate changed",
		slog.String("previous_rate", previous.String()),
		slog.String("rate", rate.String()))
	return nil
}
