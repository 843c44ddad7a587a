package dto

import "github.com/SscSPs/bank_account_app/internal/core/domain"

type UserResponse struct {
	UserID          string `json:"userID"`
	Username        string `json:"username"`
	OwnerName       string `json:"ownerName"`
	LinkedAccountID string `json:"linkedAccountID"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Username:        user.Username,
		OwnerName:       user.OwnerName,
		LinkedAccountID: user.LinkedAccountID,
	}
}
