// Package boltdb stores accounts and users in a single BoltDB file.
//
// Values are JSON documents keyed by id. Account writes are version-guarded:
// a snapshot that is not newer than the stored one is skipped without a write,
// so a retried or reordered save never rolls an account back.
package boltdb

import (
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	portsrepo "github.com/SscSPs/bank_account_app/internal/core/ports/repositories"
)

var (
	accountsBucket  = []byte("accounts")
	usersBucket     = []byte("users")
	usernamesBucket = []byte("usernames")
)

// Open opens (or creates) the database file and ensures every bucket exists.
func Open(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{accountsBucket, usersBucket, usernamesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewRepositoryProvider opens the file at path and wires both repositories to it.
func NewRepositoryProvider(path string) (portsrepo.RepositoryProvider, error) {
	db, err := Open(path)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{
		AccountRepo: newAccountRepository(db),
		UserRepo:    newUserRepository(db),
		Close:       db.Close,
	}, nil
}
