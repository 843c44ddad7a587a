package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_account_app/internal/core/domain"
)

// TokenSvc issues access tokens for authenticated users.
type TokenSvc interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
