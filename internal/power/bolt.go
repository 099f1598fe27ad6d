//go:build !tinygo

package power

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	counterBucket = "_node"
	counterKey    = "packet_id"
)

// BoltStore keeps the counter in a bbolt file, the host equivalent of memory
// retained through deep sleep. Deleting the file is a cold boot.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (creating if needed) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(counterBucket)); err != nil {
			return fmt.Errorf("failed to create counter bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Load returns 0 when no value has been stored yet.
func (s *BoltStore) Load() (uint8, error) {
	var v uint8
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(counterBucket))
		if bucket == nil {
			return fmt.Errorf("counter bucket not found")
		}
		data := bucket.Get([]byte(counterKey))
		switch len(data) {
		case 0:
			v = 0
		case 1:
			v = data[0]
		default:
			return fmt.Errorf("corrupt counter value: %d bytes", len(data))
		}
		return nil
	})
	return v, err
}

func (s *BoltStore) Store(v uint8) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(counterBucket))
		if bucket == nil {
			return fmt.Errorf("counter bucket not found")
		}
		return bucket.Put([]byte(counterKey), []byte{v})
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
