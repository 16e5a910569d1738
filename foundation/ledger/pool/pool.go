// Package pool maintains the set of submitted payloads waiting to be mined
// into the chain.
package pool

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyPool is returned when a payload is requested and none are waiting.
var ErrEmptyPool = errors.New("no payloads in pool")

// Payload represents a submitted payload waiting to be mined.
type Payload struct {
	ID        string `json:"id"`        // Unique id assigned at submission.
	Data      string `json:"data"`      // Content to seal into the next record.
	Submitted uint64 `json:"submitted"` // Time the payload was submitted.

	seq uint64 // Arrival order, used for FIFO selection.
}

// Pool represents a cache of submitted payloads. Selection is first in,
// first out since payloads carry no fees to order by.
type Pool struct {
	mu   sync.RWMutex
	pool map[string]Payload
	seq  uint64
}

// New constructs a new pool for use.
func New() *Pool {
	return &Pool{
		pool: make(map[string]Payload),
	}
}

// Count returns the current number of payloads in the pool.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.pool)
}

// Add places a new payload in the pool and returns the id assigned to it.
func (p *Pool) Add(data string) (Payload, error) {
	if data == "" {
		return Payload{}, errors.New("payload data must not be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pay := Payload{
		ID:        uuid.NewString(),
		Data:      data,
		Submitted: uint64(time.Now().UTC().Unix()),
		seq:       p.seq,
	}
	p.seq++

	p.pool[pay.ID] = pay

	return pay, nil
}

// PickNext returns the oldest payload in the pool without removing it.
func (p *Pool) PickNext() (Payload, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.pool) == 0 {
		return Payload{}, ErrEmptyPool
	}

	var next Payload
	first := true
	for _, pay := range p.pool {
		if first || pay.seq < next.seq {
			next = pay
			first = false
		}
	}

	return next, nil
}

// Delete removes a payload from the pool.
func (p *Pool) Delete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.pool, id)
}

// Truncate clears all the payloads from the pool.
func (p *Pool) Truncate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pool = make(map[string]Payload)
}

// Copy returns the payloads currently in the pool in arrival order.
func (p *Pool) Copy() []Payload {
	p.mu.RLock()
	defer p.mu.RUnlock()

	payloads := make([]Payload, 0, len(p.pool))
	for _, pay := range p.pool {
		payloads = append(payloads, pay)
	}

	sort.Slice(payloads, func(i, j int) bool {
		return payloads[i].seq < payloads[j].seq
	})

	return payloads
}
