package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"storepulse/models"
)

// DB persists query audit records. Every analytics request leaves one record
// behind so an operator can see what SQL actually ran (or was rejected).
type DB struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

func (d *DB) StoreAuditRecord(record models.QueryAuditRecord) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		// Nanosecond prefix keeps keys in insertion order.
		key := []byte(fmt.Sprintf("audit:%020d:%s", time.Now().UnixNano(), record.ID))

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
}

// ListAuditRecords returns up to limit records, most recent first.
func (d *DB) ListAuditRecords(limit int) ([]models.QueryAuditRecord, error) {
	var records []models.QueryAuditRecord

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("audit:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record models.QueryAuditRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keys iterate oldest-first; flip and trim to the newest limit entries.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}
