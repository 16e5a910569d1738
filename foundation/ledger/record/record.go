// Package record implements the single chain entry and the proof of work
// search that seals it.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/ledger/digest"
)

// Reasons a record can fail validation. These are diagnostic categories
// reported with the offending index, not exceptions.
const (
	ReasonHashMismatch    = "hash_mismatch"
	ReasonLinkMismatch    = "link_mismatch"
	ReasonDifficultyUnmet = "difficulty_unmet"
)

// InvalidRecordError reports the first record that failed validation along
// with the category of the failure.
type InvalidRecordError struct {
	Index  uint64
	Reason string
}

// Error implements the error interface.
func (ire *InvalidRecordError) Error() string {
	return fmt.Sprintf("record[%d] invalid: %s", ire.Index, ire.Reason)
}

// =============================================================================

// Record represents a single entry in the chain. Once sealed, the Hash field
// is fixed and any later mutation of the other fields makes the stored hash
// stale and therefore invalid under validation. That staleness is the tamper
// detection mechanism.
type Record struct {
	Index      uint64 `json:"index"`          // Ordinal position in the chain.
	TimeStamp  uint64 `json:"timestamp"`      // Time the record was created.
	Payload    string `json:"payload"`        // Arbitrary content supplied by the caller.
	PrevHash   string `json:"prev_hash"`      // Hash of the previous record in the chain.
	Nonce      uint64 `json:"nonce"`          // Value discovered to solve the hash puzzle.
	Difficulty uint   `json:"difficulty"`     // Number of leading zero hex digits required.
	Hash       string `json:"hash,omitempty"` // Final hash of this record once sealed.
}

// New constructs an unsealed Record and validates the inputs. Input failures
// are construction errors, distinct from mining and validation outcomes.
func New(index uint64, payload string, prevHash string, difficulty uint) (Record, error) {
	if payload == "" {
		return Record{}, errors.New("payload must not be empty")
	}

	if prevHash == "" {
		return Record{}, errors.New("previous hash must be set before sealing")
	}

	if difficulty > digest.MaxDifficulty {
		return Record{}, fmt.Errorf("difficulty %d exceeds maximum of %d", difficulty, digest.MaxDifficulty)
	}

	r := Record{
		Index:      index,
		TimeStamp:  uint64(time.Now().UTC().Unix()),
		Payload:    payload,
		PrevHash:   prevHash,
		Difficulty: difficulty,
	}

	return r, nil
}

// Sealed reports whether the mining operation has assigned the record its
// final hash.
func (r Record) Sealed() bool {
	return r.Hash != ""
}

// HashRecord computes the digest over the record's current field values. For
// a sealed, untampered record this reproduces the stored Hash field.
func (r Record) HashRecord() string {
	return digest.Hash(r.Index, r.TimeStamp, r.Payload, r.PrevHash, r.Nonce)
}

// Validate checks the record against its predecessor. The checks run in a
// pinned order and stop at the first failure: stored hash consistency first,
// then linkage, then the difficulty target.
func (r Record) Validate(prev Record) error {
	if r.HashRecord() != r.Hash {
		return &InvalidRecordError{Index: r.Index, Reason: ReasonHashMismatch}
	}

	prevHash := digest.ZeroHash
	if r.Index > 0 {
		prevHash = prev.Hash
	}
	if r.PrevHash != prevHash {
		return &InvalidRecordError{Index: r.Index, Reason: ReasonLinkMismatch}
	}

	if !digest.Solved(r.Difficulty, r.Hash) {
		return &InvalidRecordError{Index: r.Index, Reason: ReasonDifficultyUnmet}
	}

	return nil
}
