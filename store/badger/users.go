package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
)

// UserRepository implements store.UserRepository for BadgerDB.
type UserRepository struct {
	backend *Backend
}

var _ store.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(backend *Backend) (*UserRepository, error) {
	return &UserRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *UserRepository) Close() error {
	return nil
}

// PutUser inserts or replaces a user profile, keyed by UserID.
func (r *UserRepository) PutUser(ctx context.Context, user *core.UserProfile) error {
	if err := core.ValidateUserProfile(user); err != nil {
		return err
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUserRecordKey(user.UserID)
		value := store.MarshalUserProfile(user)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetUser retrieves a profile by user ID.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*core.UserProfile, error) {
	var result *core.UserProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeUserRecordKey(userID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %w: %q", store.ErrNotFound, core.ErrUserNotFound, userID)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = store.UnmarshalUserProfile(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}
