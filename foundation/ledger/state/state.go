// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"

	"github.com/ardanlabs/powledger/foundation/ledger/chain"
	"github.com/ardanlabs/powledger/foundation/ledger/genesis"
	"github.com/ardanlabs/powledger/foundation/ledger/pool"
)

// EventHandler defines a function that is called when events occur in the
// processing of mining and appending records.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining() (done func())
}

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	Genesis     genesis.Genesis
	Storage     chain.Storage
	Workers     int    // Miner goroutines per seal operation.
	MaxAttempts uint64 // Attempt budget per seal operation. 0 is unbounded.
	EvHandler   EventHandler
}

// State manages the ledger.
type State struct {
	evHandler EventHandler
	genesis   genesis.Genesis

	pool  *pool.Pool
	chain *chain.Chain

	Worker Worker
}

// New constructs a new state for ledger management. The genesis record is
// mined here when the storage starts empty, so construction blocks until
// that seal completes.
func New(ctx context.Context, cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	c, err := chain.New(ctx, chain.Config{
		Genesis:     cfg.Genesis,
		Storage:     cfg.Storage,
		Workers:     cfg.Workers,
		MaxAttempts: cfg.MaxAttempts,
		EvHandler:   ev,
	})
	if err != nil {
		return nil, err
	}

	state := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		pool:      pool.New(),
		chain:     c,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Make sure the storage is properly released.
	defer func() {
		s.chain.Close()
	}()

	// Stop all mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
