package record

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/powledger/foundation/ledger/digest"
)

// ErrMaxAttempts is returned from Seal when the configured attempt budget is
// exhausted before a solution is found.
var ErrMaxAttempts = errors.New("mining attempts exhausted")

// ErrAlreadySealed is returned from Seal when the record already carries its
// final hash. Sealing happens exactly once.
var ErrAlreadySealed = errors.New("record already sealed")

// SealConfig tunes the proof of work search. The zero value gives the
// baseline behavior: a single worker blocking unconditionally until success.
type SealConfig struct {
	Workers     int                         // Goroutines searching disjoint nonce strides.
	MaxAttempts uint64                      // Total nonces to examine before giving up. 0 is unbounded.
	EvHandler   func(v string, args ...any) // Optional sink for progress events.
}

// Seal performs the work of mining to find a valid hash for the record.
// Pointer semantics are being used since a nonce is being discovered. The
// nonce and hash are published together only when the search succeeds, so a
// failed or cancelled search leaves the record unsealed.
func (r *Record) Seal(ctx context.Context, cfg SealConfig) error {
	if r.Sealed() {
		return ErrAlreadySealed
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	ev("record: seal: MINING: started: record[%d] difficulty[%d]", r.Index, r.Difficulty)
	defer ev("record: seal: MINING: completed: record[%d]", r.Index)

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	nonce, hash, err := search(ctx, *r, workers, cfg.MaxAttempts, ev)
	if err != nil {
		return err
	}

	r.Nonce = nonce
	r.Hash = hash

	ev("record: seal: MINING: SOLVED: record[%d] nonce[%d] hash[%s]", r.Index, nonce, hash)

	return nil
}

// search runs the nonce search across the specified number of workers. Worker
// k examines the nonces k, k+workers, k+2*workers and so on, so the workers
// partition the search space without coordination. The only cross worker
// state is the cancellation of the shared context once a solution is found.
func search(ctx context.Context, r Record, workers int, maxAttempts uint64, ev func(v string, args ...any)) (uint64, string, error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type solution struct {
		nonce uint64
		hash  string
	}
	found := make(chan solution, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for k := 0; k < workers; k++ {
		go func(k int) {
			defer wg.Done()

			// Each worker owns a private copy of the candidate fields and
			// its own counter.
			candidate := r
			candidate.Nonce = uint64(k)

			var attempts uint64
			for {
				attempts++
				if attempts%1_000_000 == 0 {
					ev("record: seal: MINING: worker[%d] attempts[%d]", k, attempts)
				}

				if ctx.Err() != nil {
					return
				}

				if maxAttempts > 0 && candidate.Nonce >= maxAttempts {
					return
				}

				hash := candidate.HashRecord()
				if digest.Solved(candidate.Difficulty, hash) {
					found <- solution{nonce: candidate.Nonce, hash: hash}
					cancel()
					return
				}

				candidate.Nonce += uint64(workers)
			}
		}(k)
	}

	wg.Wait()

	select {
	case sol := <-found:
		return sol.nonce, sol.hash, nil
	default:
	}

	if err := parent.Err(); err != nil {
		ev("record: seal: MINING: CANCELLED: record[%d]", r.Index)
		return 0, "", err
	}

	return 0, "", ErrMaxAttempts
}
