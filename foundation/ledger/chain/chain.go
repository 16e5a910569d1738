// Package chain maintains the ordered sequence of sealed records and
// implements the integrity checking pass over the whole sequence.
package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/powledger/foundation/ledger/digest"
	"github.com/ardanlabs/powledger/foundation/ledger/genesis"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
)

// Storage interface represents the behavior required to be implemented by
// any package providing support for storing and reading the chain.
type Storage interface {
	Write(r record.Record) error
	GetRecord(index uint64) (record.Record, error)
	ForEach() Iterator
	Close() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the records.
type Iterator interface {
	Next() (record.Record, error)
	Done() bool
}

// =============================================================================

// Config represents the configuration required to construct a chain.
type Config struct {
	Genesis     genesis.Genesis
	Storage     Storage
	Workers     int    // Miner goroutines per seal operation.
	MaxAttempts uint64 // Attempt budget per seal operation. 0 is unbounded.
	EvHandler   func(v string, args ...any)
}

// Chain owns the ordered sequence of records. Records are mined exactly
// once, appended exactly once, and never removed or reordered. The chain
// grows monotonically by append only.
type Chain struct {
	mu          sync.RWMutex // Guards latest, height and storage access.
	appendMu    sync.Mutex   // Serializes Add so records are mined one at a time.
	storage     Storage
	latest      record.Record
	height      uint64
	workers     int
	maxAttempts uint64
	evHandler   func(v string, args ...any)
}

// New constructs a chain. When the storage is empty the genesis record is
// constructed and sealed from the genesis configuration. When the storage
// already holds records they are validated front to back on load.
func New(ctx context.Context, cfg Config) (*Chain, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	c := Chain{
		storage:     cfg.Storage,
		workers:     cfg.Workers,
		maxAttempts: cfg.MaxAttempts,
		evHandler:   ev,
	}

	// Load any records already in storage, validating the sequence as it
	// is walked.
	var prev record.Record
	iter := cfg.Storage.ForEach()
	for r, err := iter.Next(); !iter.Done(); r, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := r.Validate(prev); err != nil {
			return nil, err
		}

		c.latest = r
		c.height++
		prev = r
	}

	if c.height > 0 {
		ev("chain: new: loaded %d records from storage", c.height)
		return &c, nil
	}

	// Empty storage, so mine the genesis record.
	ev("chain: new: sealing genesis record")

	gen, err := record.New(0, cfg.Genesis.Payload, digest.ZeroHash, cfg.Genesis.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("constructing genesis record: %w", err)
	}

	if err := gen.Seal(ctx, c.sealConfig()); err != nil {
		return nil, fmt.Errorf("sealing genesis record: %w", err)
	}

	if err := cfg.Storage.Write(gen); err != nil {
		return nil, err
	}

	c.latest = gen
	c.height = 1

	return &c, nil
}

// Close releases the underlying storage.
func (c *Chain) Close() error {
	return c.storage.Close()
}

// Add constructs a record for the payload, links it to the current last
// record, seals it via the miner and appends it. The previous hash is set
// before sealing since it is part of the hashed content. Add blocks until
// the record is sealed. Once sealed the record is always appended.
//
// The seal runs outside the read/write lock so the chain stays readable
// while mining is in flight. The append mutex keeps concurrent Add calls
// serialized, so the snapshot taken here can't go stale mid seal.
func (c *Chain) Add(ctx context.Context, payload string, difficulty uint) (record.Record, error) {
	c.appendMu.Lock()
	defer c.appendMu.Unlock()

	c.mu.RLock()
	index := c.height
	prevHash := c.latest.Hash
	c.mu.RUnlock()

	r, err := record.New(index, payload, prevHash, difficulty)
	if err != nil {
		return record.Record{}, err
	}

	if err := r.Seal(ctx, c.sealConfig()); err != nil {
		return record.Record{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.storage.Write(r); err != nil {
		return record.Record{}, err
	}

	c.latest = r
	c.height++

	return r, nil
}

// Validate runs the integrity checking pass over the records currently held
// by the chain.
func (c *Chain) Validate() error {
	records, err := c.Records()
	if err != nil {
		return err
	}

	return ValidateRecords(records)
}

// LatestRecord returns a copy of the current last record.
func (c *Chain) LatestRecord() record.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.latest
}

// Height returns the number of records in the chain.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.height
}

// Records returns a copy of the full record sequence. Mutating the copy has
// no effect on the chain.
func (c *Chain) Records() ([]record.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]record.Record, 0, c.height)

	iter := c.storage.ForEach()
	for r, err := iter.Next(); !iter.Done(); r, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, nil
}

// GetRecord returns a copy of the record at the specified index.
func (c *Chain) GetRecord(index uint64) (record.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.storage.GetRecord(index)
}

// sealConfig builds the miner configuration for this chain.
func (c *Chain) sealConfig() record.SealConfig {
	return record.SealConfig{
		Workers:     c.workers,
		MaxAttempts: c.maxAttempts,
		EvHandler:   c.evHandler,
	}
}

// =============================================================================

// ValidateRecords runs the integrity checking pass over an arbitrary record
// sequence, front to back, stopping at the first failure. The genesis record
// is checked like every other record, including its sentinel linkage and
// difficulty target. On failure the returned error carries the offending
// index and the failure category as a *record.InvalidRecordError.
func ValidateRecords(records []record.Record) error {
	var prev record.Record

	for _, r := range records {
		if err := r.Validate(prev); err != nil {
			return err
		}
		prev = r
	}

	return nil
}
