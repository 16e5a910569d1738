package record_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/ledger/digest"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_NewValidation(t *testing.T) {
	type table struct {
		name       string
		payload    string
		prevHash   string
		difficulty uint
		valid      bool
	}

	tt := []table{
		{"valid", "data", digest.ZeroHash, 2, true},
		{"empty payload", "", digest.ZeroHash, 2, false},
		{"missing prev hash", "data", "", 2, false},
		{"difficulty too high", "data", digest.ZeroHash, 65, false},
	}

	t.Log("Given the need to validate record construction inputs.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen constructing a record with %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					_, err := record.New(0, tst.payload, tst.prevHash, tst.difficulty)
					if tst.valid && err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to construct the record: %v", failed, testID, err)
					}
					if !tst.valid && err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould reject the invalid inputs.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected construction outcome.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Seal(t *testing.T) {
	t.Log("Given the need to validate the proof of work search.")
	{
		t.Logf("\tTest 0:\tWhen sealing a record with difficulty 0.")
		{
			r, err := record.New(0, "data", digest.ZeroHash, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the record: %v", failed, err)
			}

			if err := r.Seal(context.Background(), record.SealConfig{}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal the record: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to seal the record.", success)

			if r.Nonce != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould accept the first attempt, nonce stays 0, got %d.", failed, r.Nonce)
			}
			t.Logf("\t%s\tTest 0:\tShould accept the first attempt, nonce stays 0.", success)

			if !r.Sealed() {
				t.Fatalf("\t%s\tTest 0:\tShould report the record as sealed.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report the record as sealed.", success)
		}

		t.Logf("\tTest 1:\tWhen sealing a record with difficulty 2.")
		{
			r, err := record.New(1, "data", digest.ZeroHash, 2)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the record: %v", failed, err)
			}

			if err := r.Seal(context.Background(), record.SealConfig{}); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to seal the record: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to seal the record.", success)

			if !strings.HasPrefix(r.Hash, "00") {
				t.Fatalf("\t%s\tTest 1:\tShould produce a hash with 2 leading zeros: %s", failed, r.Hash)
			}
			t.Logf("\t%s\tTest 1:\tShould produce a hash with 2 leading zeros.", success)

			if r.HashRecord() != r.Hash {
				t.Fatalf("\t%s\tTest 1:\tShould store a hash consistent with the final fields.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould store a hash consistent with the final fields.", success)

			if err := r.Seal(context.Background(), record.SealConfig{}); !errors.Is(err, record.ErrAlreadySealed) {
				t.Fatalf("\t%s\tTest 1:\tShould refuse to seal twice: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould refuse to seal twice.", success)
		}

		t.Logf("\tTest 2:\tWhen sealing with parallel workers.")
		{
			r, err := record.New(2, "data", digest.ZeroHash, 2)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the record: %v", failed, err)
			}

			if err := r.Seal(context.Background(), record.SealConfig{Workers: 4}); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to seal the record: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould be able to seal the record.", success)

			if !digest.Solved(r.Difficulty, r.Hash) || r.HashRecord() != r.Hash {
				t.Fatalf("\t%s\tTest 2:\tShould publish a consistent solved hash: %s", failed, r.Hash)
			}
			t.Logf("\t%s\tTest 2:\tShould publish a consistent solved hash.", success)
		}
	}
}

func Test_SealBounds(t *testing.T) {
	t.Log("Given the need to validate the mining loop hardening.")
	{
		t.Logf("\tTest 0:\tWhen the attempt budget is exhausted.")
		{
			r, err := record.New(0, "data", digest.ZeroHash, digest.MaxDifficulty)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the record: %v", failed, err)
			}

			err = r.Seal(context.Background(), record.SealConfig{MaxAttempts: 16})
			if !errors.Is(err, record.ErrMaxAttempts) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrMaxAttempts: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrMaxAttempts.", success)

			if r.Sealed() {
				t.Fatalf("\t%s\tTest 0:\tShould leave the record unsealed.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the record unsealed.", success)
		}

		t.Logf("\tTest 1:\tWhen the context is cancelled.")
		{
			r, err := record.New(0, "data", digest.ZeroHash, digest.MaxDifficulty)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the record: %v", failed, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			err = r.Seal(ctx, record.SealConfig{Workers: 2})
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("\t%s\tTest 1:\tShould get the context error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get the context error.", success)

			if r.Sealed() {
				t.Fatalf("\t%s\tTest 1:\tShould leave the record unsealed.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the record unsealed.", success)
		}
	}
}

func Test_Validate(t *testing.T) {
	seal := func(t *testing.T, index uint64, payload string, prevHash string, difficulty uint) record.Record {
		r, err := record.New(index, payload, prevHash, difficulty)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the record: %v", failed, err)
		}
		if err := r.Seal(context.Background(), record.SealConfig{}); err != nil {
			t.Fatalf("\t%s\tShould be able to seal the record: %v", failed, err)
		}
		return r
	}

	t.Log("Given the need to validate the per record integrity checks.")
	{
		t.Logf("\tTest 0:\tWhen checking a freshly sealed pair.")
		{
			gen := seal(t, 0, "Genesis Block", digest.ZeroHash, 1)
			next := seal(t, 1, "data", gen.Hash, 1)

			if err := gen.Validate(record.Record{}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate the genesis record: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate the genesis record.", success)

			if err := next.Validate(gen); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate the linked record: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate the linked record.", success)
		}

		t.Logf("\tTest 1:\tWhen the payload is mutated after sealing.")
		{
			gen := seal(t, 0, "Genesis Block", digest.ZeroHash, 1)
			next := seal(t, 1, "data", gen.Hash, 1)
			next.Payload = "tampered"

			var ire *record.InvalidRecordError
			err := next.Validate(gen)
			if !errors.As(err, &ire) || ire.Reason != record.ReasonHashMismatch || ire.Index != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould fail with hash_mismatch at index 1: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould fail with hash_mismatch at index 1.", success)
		}

		t.Logf("\tTest 2:\tWhen a consistently sealed record is mislinked.")
		{
			gen := seal(t, 0, "Genesis Block", digest.ZeroHash, 1)
			other := seal(t, 0, "Other Genesis", digest.ZeroHash, 1)
			next := seal(t, 1, "data", other.Hash, 1)

			var ire *record.InvalidRecordError
			err := next.Validate(gen)
			if !errors.As(err, &ire) || ire.Reason != record.ReasonLinkMismatch || ire.Index != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould fail with link_mismatch at index 1: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould fail with link_mismatch at index 1.", success)
		}

		t.Logf("\tTest 3:\tWhen the difficulty is raised after sealing.")
		{
			gen := seal(t, 0, "Genesis Block", digest.ZeroHash, 1)
			next := seal(t, 1, "data", gen.Hash, 1)

			// The difficulty is not part of the hashed content, so the stored
			// hash stays consistent and only the target check can fail.
			next.Difficulty = digest.MaxDifficulty

			var ire *record.InvalidRecordError
			err := next.Validate(gen)
			if !errors.As(err, &ire) || ire.Reason != record.ReasonDifficultyUnmet || ire.Index != 1 {
				t.Fatalf("\t%s\tTest 3:\tShould fail with difficulty_unmet at index 1: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould fail with difficulty_unmet at index 1.", success)
		}
	}
}
