package models

import (
	"time"
)

// User represents a login of the application.
type User struct {
	UserID          string `db:"user_id"`
	Username        string `db:"username"`
	PasswordHash    string `db:"password_hash"`
	OwnerName       string `db:"owner_name"`
	LinkedAccountID string `db:"linked_account_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
