package services

import (
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/SscSPs/bank_account_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate holder comes first since the account registry reads it.
	container.InterestRate = NewInterestRateService(cfg.DefaultInterestRate)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithRateProvider(container.InterestRate),
	)
	container.User = NewUserService(repos.UserRepo, container.Account)
	container.Token = NewTokenService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.InterestRateSvc  = (*interestRateService)(nil)
	_ portssvc.TokenSvc         = (*tokenService)(nil)
)
