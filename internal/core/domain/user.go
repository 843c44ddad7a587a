package domain

import "time"

// User is a customer login linked to the account opened at registration.
type User struct {
	UserID          string `json:"userID"` // Primary Key (UUID)
	Username        string `json:"username"`
	PasswordHash    string `json:"passwordHash"`
	OwnerName       string `json:"ownerName"`
	LinkedAccountID string `json:"linkedAccountID"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
