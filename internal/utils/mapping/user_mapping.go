package mapping

import (
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	"github.com/SscSPs/bank_account_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		OwnerName:       d.OwnerName,
		LinkedAccountID: d.LinkedAccountID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		OwnerName:       m.OwnerName,
		LinkedAccountID: m.LinkedAccountID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}
