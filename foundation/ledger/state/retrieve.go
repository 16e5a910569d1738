package state

import (
	"github.com/ardanlabs/powledger/foundation/ledger/genesis"
	"github.com/ardanlabs/powledger/foundation/ledger/pool"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestRecord returns a copy of the current last record.
func (s *State) RetrieveLatestRecord() record.Record {
	return s.chain.LatestRecord()
}

// RetrieveHeight returns the number of records in the chain.
func (s *State) RetrieveHeight() uint64 {
	return s.chain.Height()
}

// RetrieveRecords returns a copy of the full record sequence.
func (s *State) RetrieveRecords() ([]record.Record, error) {
	return s.chain.Records()
}

// RetrieveRecord returns a copy of the record at the specified index.
func (s *State) RetrieveRecord(index uint64) (record.Record, error) {
	return s.chain.GetRecord(index)
}

// RetrievePool returns a copy of the payloads waiting to be mined in
// arrival order.
func (s *State) RetrievePool() []pool.Payload {
	return s.pool.Copy()
}

// RetrievePoolLength returns the number of payloads waiting to be mined.
func (s *State) RetrievePoolLength() int {
	return s.pool.Count()
}
