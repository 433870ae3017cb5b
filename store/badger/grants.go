package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
)

// GrantRepository implements store.GrantRepository for BadgerDB.
type GrantRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ store.GrantRepository = (*GrantRepository)(nil)

// NewGrantRepository creates a new GrantRepository.
func NewGrantRepository(backend *Backend) (*GrantRepository, error) {
	idSeq, err := backend.GetSequence(grantRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &GrantRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *GrantRepository) Close() error {
	return r.idSeq.Release()
}

// AddGrants adds one or more grant records to storage.
func (r *GrantRepository) AddGrants(ctx context.Context, grants ...*core.GrantRecord) ([]*core.GrantRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, grant := range grants {
			if err := core.ValidateGrantRecord(grant); err != nil {
				return err
			}

			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			grant.Id = core.ID(nextID)

			grant.InsertedAt = time.Now().UTC()
			if grant.ScrapedAt.IsZero() {
				grant.ScrapedAt = grant.InsertedAt
			}

			// Store primary record
			key := makeGrantRecordKey(grant.Id)
			value := store.MarshalGrantRecord(grant)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update scraped-at index
			scrapedKey := makeGrantScrapedKey(grant.ScrapedAt, grant.Id)
			if err := tx.Set(scrapedKey, store.MarshalID(grant.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return grants, err
}

// ListDescribedGrants returns every grant with a non-empty description,
// ordered by ScrapedAt descending. Catalog order is defined by this method:
// both cache generation and match serving read the catalog through it.
func (r *GrantRepository) ListDescribedGrants(ctx context.Context) ([]*core.GrantRecord, error) {
	var results []*core.GrantRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to walk the scraped-at index newest first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible key with the scraped-at prefix
		startKey := makePartialGrantScrapedKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(grantRecordScrapedPrefix + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()

			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var grantID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				grantID, err = store.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			grantKey := makeGrantRecordKey(grantID)
			grant, err := r.readGrantRecord(tx, grantKey)
			if err != nil {
				return err
			}
			if grant == nil {
				continue
			}

			// Grants without a description carry no embeddable text
			if strings.TrimSpace(grant.Description) == "" {
				continue
			}

			results = append(results, grant)
		}
		return nil
	}, false)

	return results, err
}

// CountGrants returns the total number of stored grants, described or not.
func (r *GrantRepository) CountGrants(ctx context.Context) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(grantRecordPrefix + ":")
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readGrantRecord reads and unmarshals a grant record by key.
// Returns nil (no error) if the key does not exist.
func (r *GrantRepository) readGrantRecord(tx *badger.Txn, key []byte) (*core.GrantRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var grant *core.GrantRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		grant, unmarshalErr = store.UnmarshalGrantRecord(val)
		return unmarshalErr
	})
	return grant, err
}
