package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/powledger/foundation/ledger/pool"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
)

// ErrNoPayloads is returned when a record is requested to be mined and
// there are no payloads waiting in the pool.
var ErrNoPayloads = errors.New("no payloads in pool")

// =============================================================================

// SubmitPayload places a payload in the pool and signals the worker that
// a mining operation can start.
func (s *State) SubmitPayload(data string) (pool.Payload, error) {
	pay, err := s.pool.Add(data)
	if err != nil {
		return pool.Payload{}, err
	}

	s.evHandler("state: SubmitPayload: payload[%s] pooled: pool size[%d]", pay.ID, s.pool.Count())

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return pay, nil
}

// MineNextRecord takes the oldest payload from the pool, mines it into the
// next record and appends the record to the chain. This blocks until the
// seal completes and can be cancelled through the context.
func (s *State) MineNextRecord(ctx context.Context) (record.Record, error) {
	s.evHandler("state: MineNextRecord: MINING: check pool count")

	pay, err := s.pool.PickNext()
	if err != nil {
		return record.Record{}, ErrNoPayloads
	}

	s.evHandler("state: MineNextRecord: MINING: perform POW: payload[%s]", pay.ID)

	// Attempt to seal the next record by solving the POW puzzle. This can
	// be cancelled.
	r, err := s.chain.Add(ctx, pay.Data, s.genesis.Difficulty)
	if err != nil {
		return record.Record{}, err
	}

	s.evHandler("state: MineNextRecord: MINING: record[%d] appended: remove payload[%s]", r.Index, pay.ID)

	// The payload is in the chain now, remove it from the pool.
	s.pool.Delete(pay.ID)

	return r, nil
}

// ValidateChain runs the integrity checking pass over the whole chain. This
// is the same check every node in a real network would run independently
// after a record is broadcast; here it is a single local call.
func (s *State) ValidateChain() error {
	s.evHandler("state: ValidateChain: validate: started: height[%d]", s.chain.Height())
	defer s.evHandler("state: ValidateChain: validate: completed")

	return s.chain.Validate()
}
