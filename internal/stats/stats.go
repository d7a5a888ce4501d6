// Package stats persists cumulative probe outcome counts across runs, so a
// long-lived probing service (or repeated CLI invocations against the same
// table directory) can report which signatures get probed and how their
// results break down, without re-deriving that history from the tables
// themselves.
package stats

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "probe:"

// Outcome buckets a GetScore result into the handful of categories worth
// counting; exact DTM values collapse into Win/Loss.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeMissing
	OutcomeIllegal
)

// SignatureStats accumulates probe outcomes for one material signature.
type SignatureStats struct {
	Signature string `json:"signature"`
	Probes    uint64 `json:"probes"`
	Draws     uint64 `json:"draws"`
	Wins      uint64 `json:"wins"`
	Losses    uint64 `json:"losses"`
	Missing   uint64 `json:"missing"`
	Illegal   uint64 `json:"illegal"`
}

// Store wraps BadgerDB for persistent probe statistics, one row per
// material signature.
type Store struct {
	db *badger.DB
}

// Open creates or reopens a stats store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record adds one probe outcome to signature's running totals.
func (s *Store) Record(signature string, outcome Outcome) error {
	return s.db.Update(func(txn *badger.Txn) error {
		st, err := loadLocked(txn, signature)
		if err != nil {
			return err
		}
		st.Probes++
		switch outcome {
		case OutcomeDraw:
			st.Draws++
		case OutcomeWin:
			st.Wins++
		case OutcomeLoss:
			st.Losses++
		case OutcomeMissing:
			st.Missing++
		case OutcomeIllegal:
			st.Illegal++
		}
		return saveLocked(txn, st)
	})
}

func loadLocked(txn *badger.Txn, signature string) (*SignatureStats, error) {
	st := &SignatureStats{Signature: signature}
	item, err := txn.Get([]byte(keyPrefix + signature))
	if err == badger.ErrKeyNotFound {
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, st)
	})
	return st, err
}

func saveLocked(txn *badger.Txn, st *SignatureStats) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return txn.Set([]byte(keyPrefix+st.Signature), data)
}

// Get returns the current stats for one signature (zero value if never
// probed).
func (s *Store) Get(signature string) (SignatureStats, error) {
	var out SignatureStats
	err := s.db.View(func(txn *badger.Txn) error {
		st, err := loadLocked(txn, signature)
		if err != nil {
			return err
		}
		out = *st
		return nil
	})
	return out, err
}

// All returns stats for every signature ever recorded, in key order.
func (s *Store) All() ([]SignatureStats, error) {
	var out []SignatureStats
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var st SignatureStats
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &st)
			}); err != nil {
				return err
			}
			out = append(out, st)
		}
		return nil
	})
	return out, err
}
