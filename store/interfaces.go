package store

import (
	"context"

	"github.com/poiesic/grantmatch/core"
)

// GrantRepository provides read and ingestion operations for the grant
// catalog. The matching core only reads; writes happen in the ingestion
// pipeline and in seeding tools.
type GrantRepository interface {
	// AddGrants adds one or more grant records to the catalog.
	// Generates IDs from the store sequence and sets InsertedAt.
	// Returns the records with IDs and timestamps populated.
	AddGrants(ctx context.Context, grants ...*core.GrantRecord) ([]*core.GrantRecord, error)

	// ListDescribedGrants returns every grant with a non-empty description,
	// ordered by ScrapedAt descending. This is the canonical catalog query:
	// cache generation and match serving must both use it so that catalog
	// index N and cache index N refer to the same grant.
	ListDescribedGrants(ctx context.Context) ([]*core.GrantRecord, error)

	// CountGrants returns the total number of stored grants, described or not.
	CountGrants(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}

// UserRepository provides operations for user profiles.
type UserRepository interface {
	// PutUser inserts or replaces a user profile, keyed by UserID.
	// Sets CreatedAt if not already set.
	PutUser(ctx context.Context, user *core.UserProfile) error

	// GetUser retrieves a profile by user ID.
	// Returns ErrNotFound if no such profile exists.
	GetUser(ctx context.Context, userID string) (*core.UserProfile, error)

	// Close closes the repository and releases resources.
	Close() error
}
