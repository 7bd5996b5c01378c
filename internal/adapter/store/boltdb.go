package store

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	bucketPages        = []byte("pages")
	bucketMeta         = []byte("meta")
	bucketDeclarations = []byte("declarations")
)

// forgottenHash marks a page whose hash was dropped by Clear.
const forgottenHash = "-"

// BoltStore is the page manifest: relative page path -> content hash of the
// last write. It also keeps decompiled declarations between runs.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketPages, bucketMeta, bucketDeclarations} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) PageHash(path string) (string, bool, error) {
	var hash string
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPages).Get([]byte(path))
		if data != nil {
			hash, ok = string(data), true
			if hash == forgottenHash {
				hash = ""
			}
		}
		return nil
	})
	return hash, ok, err
}

func (s *BoltStore) PutPage(path, hash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPages).Put([]byte(path), []byte(hash))
	})
}

func (s *BoltStore) DeletePage(path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPages).Delete([]byte(path))
	})
}

func (s *BoltStore) ListPages() ([]string, error) {
	var pages []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPages).ForEach(func(k, _ []byte) error {
			pages = append(pages, string(k))
			return nil
		})
	})
	return pages, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
