package repositories

import (
	"fmt"
	"sort"

	"plume/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFollowRepository implements FollowRepository using BadgerDB.
// Follows are keyed by the (follower, author) pair, so creating the same
// relation twice leaves exactly one record.
type BadgerFollowRepository struct {
	db *badger.DB
}

// NewBadgerFollowRepository creates a new BadgerFollowRepository
func NewBadgerFollowRepository(db *badger.DB) *BadgerFollowRepository {
	return &BadgerFollowRepository{db: db}
}

// Create stores a follow relation. Idempotent for an existing pair.
func (r *BadgerFollowRepository) Create(follow *models.Follow) error {
	follow.BeforeCreate()
	data, err := marshalEntity(follow)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := followKey(follow.FollowerID, follow.AuthorID)
		if _, err := txn.Get(key); err == nil {
			// Pair already stored; keep the original record.
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete removes a follow relation, ErrNotFound if the pair is not stored
func (r *BadgerFollowRepository) Delete(followerID, authorID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := followKey(followerID, authorID)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// Exists reports whether the follower currently follows the author
func (r *BadgerFollowRepository) Exists(followerID, authorID int) (bool, error) {
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(followKey(followerID, authorID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// ListAuthors returns the IDs of all authors the follower follows
func (r *BadgerFollowRepository) ListAuthors(followerID int) ([]int, error) {
	var authorIDs []int

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", FollowKeyPrefix, followerID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var authorID int
			if _, err := fmt.Sscanf(string(it.Item().Key()[len(prefix):]), "%d", &authorID); err != nil {
				continue
			}
			authorIDs = append(authorIDs, authorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Ints(authorIDs)
	return authorIDs, nil
}
