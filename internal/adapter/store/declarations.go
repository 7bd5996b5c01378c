package store

import (
	"bytes"

	"go.etcd.io/bbolt"
)

// Declaration returns the decompiled text stored under key.
func (s *BoltStore) Declaration(key string) (string, bool, error) {
	var text string
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketDeclarations).Get([]byte(key)); data != nil {
			text, ok = string(data), true
		}
		return nil
	})
	return text, ok, err
}

func (s *BoltStore) PutDeclaration(key, text string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeclarations).Put([]byte(key), []byte(text))
	})
}

// PruneDeclarations deletes every declaration whose key does not start with
// scope. It returns the number of entries removed.
func (s *BoltStore) PruneDeclarations(scope string) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDeclarations)
		var stale [][]byte
		if err := b.ForEach(func(k, _ []byte) error {
			if !bytes.HasPrefix(k, []byte(scope)) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}
