package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/arcadia-db/logicdb"
)

// Snapshot is an optional, append-only persistence layer for facts: a
// BadgerDB instance keyed by a monotonic insertion sequence number, so
// Load can replay facts in their original insertion order (invariant 4
// of §3). The solver never touches Snapshot directly — it only ever
// sees the in-memory Database that Load populates.
type Snapshot struct {
	db  *badger.DB
	seq uint64
}

// OpenSnapshot opens (creating if necessary) a Badger-backed fact log
// at path.
func OpenSnapshot(path string) (*Snapshot, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("logicdb: failed to open snapshot at %s: %w", path, err)
	}
	return &Snapshot{db: bdb}, nil
}

// Close releases the underlying Badger instance.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Append persists the wire fact tuple (§6) to the snapshot. It does not
// insert into any Database — callers that want both durability and an
// in-memory view call db.InsertFact alongside Append.
func (s *Snapshot) Append(tuple []logicdb.DBValue) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(tuple); err != nil {
		return fmt.Errorf("logicdb: failed to encode fact tuple: %w", err)
	}

	key := sequenceKey(s.seq)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("logicdb: failed to persist fact tuple: %w", err)
	}
	s.seq++
	return nil
}

// Load replays every persisted fact tuple into db, in original
// insertion order, and resumes the snapshot's sequence counter from
// where it left off so subsequent Append calls continue the log.
func (s *Snapshot) Load(db *Database) error {
	var count uint64
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var tuple []logicdb.DBValue
				if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&tuple); err != nil {
					return err
				}
				db.InsertFact(tuple)
				return nil
			})
			if err != nil {
				return fmt.Errorf("logicdb: failed to decode fact tuple: %w", err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.seq = count
	return nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
