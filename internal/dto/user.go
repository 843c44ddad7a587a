package dto

import (
	"github.com/SscSPs/bank_account_app/internal/core/domain"
)

// RegisterUserRequest creates a login and opens the account linked to it.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,alphanum"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	OpenAccountRequest
}

// LoginRequest carries the credentials for a login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserResponse is returned after a successful registration.
type RegisterUserResponse struct {
	User    UserResponse    `json:"user"`
	Account AccountResponse `json:"account"`
}

// ToRegisterUserResponse builds the registration response.
func ToRegisterUserResponse(user *domain.User, acc *domain.Account) RegisterUserResponse {
	return RegisterUserResponse{
		User:    ToUserResponse(user),
		Account: ToAccountResponse(acc),
	}
}
