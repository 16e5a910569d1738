// Package memory implements the ability to read and write records to memory
// using a slice.
package memory

import (
	"errors"
	"sync"

	"github.com/ardanlabs/powledger/foundation/ledger/chain"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
)

// Memory represents the storage implementation for reading and storing
// records in memory using a slice. This implements the chain.Storage
// interface.
type Memory struct {
	mu      sync.RWMutex
	records []record.Record
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified record and stores it in memory. Records must
// arrive in index order since the chain is append only.
func (m *Memory) Write(r record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.records)) != r.Index {
		return errors.New("record is out of order")
	}

	m.records = append(m.records, r)

	return nil
}

// GetRecord searches the storage to locate and return the contents of the
// specified record by index.
func (m *Memory) GetRecord(index uint64) (record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := uint64(len(m.records))
	if l == 0 || index >= l {
		return record.Record{}, errors.New("record does not exist")
	}

	return m.records[index], nil
}

// ForEach returns an iterator to walk through all the records starting with
// the genesis record.
func (m *Memory) ForEach() chain.Iterator {
	return &memoryIterator{storage: m}
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking through
// and reading records in memory. This implements the chain.Iterator
// interface.
type memoryIterator struct {
	storage *Memory // Access to the storage API.
	current uint64  // Current record index being iterated over.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next record from storage.
func (mi *memoryIterator) Next() (record.Record, error) {
	if mi.eoc {
		return record.Record{}, errors.New("end of chain")
	}

	r, err := mi.storage.GetRecord(mi.current)
	if err != nil {
		mi.eoc = true
	}

	mi.current++

	return r, err
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
