package domain

import (
	"github.com/shopspring/decimal"
)

// interestPlaces is the precision interest is rounded to before it is credited.
const interestPlaces = 2

// RateProvider supplies the shared default interest rate used by checking accounts.
type RateProvider interface {
	InterestRate() decimal.Decimal
}

// InterestRateFor resolves the rate that applies to this account: savings
// accounts use their own rate, checking accounts the shared one.
func (a *Account) InterestRateFor(rates RateProvider) decimal.Decimal {
	if a.kind.Type == Savings {
		return a.kind.InterestRate
	}
	if rates == nil {
		return decimal.Zero
	}
	return rates.InterestRate()
}

// ApplyInterest credits interest at the rate resolved by InterestRateFor.
func (a *Account) ApplyInterest(rates RateProvider) (*Transaction, error) {
	return a.ApplyInterestRate(a.InterestRateFor(rates))
}

// ApplyInterestRate credits balance × rate, rounded to cents, as an INTEREST
// record. A profit of zero or less is a no-op and returns a nil record.
// Frozen and closed accounts reject a positive profit like any deposit.
func (a *Account) ApplyInterestRate(rate decimal.Decimal) (*Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	profit := a.balance.Mul(rate).Round(interestPlaces)
	if !profit.IsPositive() {
		return nil, nil
	}
	t, err := a.depositLocked(profit, KindInterest)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
