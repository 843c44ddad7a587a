package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/SscSPs/bank_account_app/internal/dto"
	"github.com/SscSPs/bank_account_app/internal/utils"
	"github.com/google/uuid"
)

const registrationActor = "system"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	accounts portssvc.AccountSvcFacade
}

// NewUserService creates the user service. Registration opens accounts through
// the account registry.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, accounts portssvc.AccountSvcFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, accounts: accounts}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, *domain.Account, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up username")
		return nil, nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc, err := s.accounts.OpenAccount(ctx, req.OwnerName, req.Kind())
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:          uuid.NewString(),
		Username:        username,
		PasswordHash:    hash,
		OwnerName:       req.OwnerName,
		LinkedAccountID: acc.ID(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     registrationActor,
			LastUpdatedAt: now,
			LastUpdatedBy: registrationActor,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		// The fresh account has a zero balance, so it can always be closed.
		if closeErr := s.accounts.CloseAccount(ctx, acc.ID(), "registration failed"); closeErr != nil {
			s.LogError(ctx, closeErr, "Failed to close account of failed registration", slog.String("account_id", acc.ID()))
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.String("account_id", acc.ID()))
	return &user, acc, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Login for unknown user")
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, apperrors.ErrUnauthorized, "Login with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
