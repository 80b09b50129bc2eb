// Package history persists completed batch-commit runs in a local bbolt
// database so past runs can be listed and audited.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidygit/tidygit/internal/models"
	bolt "go.etcd.io/bbolt"
)

const batchBucket = "batches"

// Store is a bbolt-backed audit log of batch runs. Keys are ordered by
// batch timestamp, so iteration returns runs oldest first.
type Store struct {
	db         *bolt.DB
	maxEntries int
}

// Open opens (creating if needed) the history database at path.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(batchBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

// RecordBatch appends one completed batch and prunes the oldest entries
// past the retention bound.
func (s *Store) RecordBatch(batch models.BatchRecord) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	// Fixed-width timestamp so keys sort chronologically byte-wise.
	key := batch.Timestamp.UTC().Format("2006-01-02T15:04:05.000000000") + "|" + batch.ID

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(batchBucket))
		if err := bucket.Put([]byte(key), data); err != nil {
			return err
		}

		// Drop oldest entries beyond the retention bound.
		total := 0
		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			total++
		}
		excess := total - s.maxEntries
		for k, _ := cursor.First(); k != nil && excess > 0; k, _ = cursor.Next() {
			if err := cursor.Delete(); err != nil {
				return err
			}
			excess--
		}
		return nil
	})
}

// ListBatches returns recorded batches, oldest first.
func (s *Store) ListBatches() ([]models.BatchRecord, error) {
	var batches []models.BatchRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(batchBucket))
		return bucket.ForEach(func(_, v []byte) error {
			var batch models.BatchRecord
			if err := json.Unmarshal(v, &batch); err != nil {
				return fmt.Errorf("corrupt history entry: %w", err)
			}
			batches = append(batches, batch)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
