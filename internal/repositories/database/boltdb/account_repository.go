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

type accountRepository struct {
	db *bolt.DB
}

func newAccountRepository(db *bolt.DB) portsrepo.AccountRepositoryFacade {
	return &accountRepository{db: db}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

// SaveAccount writes the snapshot unless the stored copy is at the same or a
// newer version.
func (r *accountRepository) SaveAccount(ctx context.Context, snapshot domain.AccountSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode account %s: %w", snapshot.AccountID, err)
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(accountsBucket)
		key := []byte(snapshot.AccountID)

		if existing := b.Get(key); existing != nil {
			var stored struct {
				Version int64 `json:"version"`
			}
			if err := json.Unmarshal(existing, &stored); err != nil {
				return fmt.Errorf("decode stored account %s: %w", snapshot.AccountID, err)
			}
			if stored.Version >= snapshot.Version {
				return nil
			}
		}
		return b.Put(key, payload)
	})
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AccountSnapshot, error) {
	var snap domain.AccountSnapshot
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(accountsBucket).Get([]byte(accountID))
		if v == nil {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return json.Unmarshal(v, &snap)
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.AccountSnapshot, error) {
	items := []domain.AccountSnapshot{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(accountsBucket).ForEach(func(k, v []byte) error {
			var snap domain.AccountSnapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return fmt.Errorf("decode account %s: %w", k, err)
			}
			items = append(items, snap)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
