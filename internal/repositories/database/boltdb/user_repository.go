package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "github.com/boltdb/bolt"

	"github.com/SscSPs/bank_account_app/internal/apperrors"
	"github.com/SscSPs/bank_account_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
)

type userRepository struct {
	db *bolt.DB
}

func newUserRepository(db *bolt.DB) portsrepo.UserRepositoryFacade {
	return &userRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

// SaveUser stores the user and claims its username in the same transaction.
func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.UserID, err)
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		names := tx.Bucket(usernamesBucket)
		if owner := names.Get([]byte(user.Username)); owner != nil && string(owner) != user.UserID {
			return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, user.Username)
		}
		if err := names.Put([]byte(user.Username), []byte(user.UserID)); err != nil {
			return err
		}
		return tx.Bucket(usersBucket).Put([]byte(user.UserID), payload)
	})
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.db.View(func(tx *bolt.Tx) error {
		return getUser(tx, userID, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.View(func(tx *bolt.Tx) error {
		userID := tx.Bucket(usernamesBucket).Get([]byte(username))
		if userID == nil {
			return fmt.Errorf("username %s: %w", username, apperrors.ErrNotFound)
		}
		return getUser(tx, string(userID), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func getUser(tx *bolt.Tx, userID string, into *domain.User) error {
	v := tx.Bucket(usersBucket).Get([]byte(userID))
	if v == nil {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	if err := json.Unmarshal(v, into); err != nil {
		return fmt.Errorf("decode user %s: %w", userID, err)
	}
	if into.DeletedAt != nil {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
