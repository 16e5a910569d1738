// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/ardanlabs/powledger/business/web/v1"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
	"github.com/ardanlabs/powledger/foundation/ledger/state"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitPayload adds a new payload to the pool to be mined.
func (h Handlers) SubmitPayload(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var sp submitPayload
	if err := web.Decode(r, &sp); err != nil {
		return err
	}

	pay, err := h.State.SubmitPayload(sp.Data)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("payload submitted", "traceid", v.TraceID, "payload", pay.ID)

	resp := submitResult{
		ID:     pay.ID,
		Status: "payload added to pool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Pool returns the set of payloads waiting to be mined.
func (h Handlers) Pool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	payloads := h.State.RetrievePool()
	return web.Respond(ctx, w, payloads, http.StatusOK)
}

// Records returns the records in the chain, either all of them, a single
// record by index, or an index range.
func (h Handlers) Records(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	toStr := web.Param(r, "to")

	if fromStr == "" {
		records, err := h.State.RetrieveRecords()
		if err != nil {
			return err
		}
		return web.Respond(ctx, w, records, http.StatusOK)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(errors.New("invalid from index"), http.StatusBadRequest)
	}

	// A single index is a point lookup against storage, not a walk of the
	// full chain.
	if toStr == "" {
		rec, err := h.State.RetrieveRecord(from)
		if err != nil {
			return v1.NewRequestError(errors.New("index range out of bounds"), http.StatusBadRequest)
		}
		return web.Respond(ctx, w, []record.Record{rec}, http.StatusOK)
	}

	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(errors.New("invalid to index"), http.StatusBadRequest)
	}

	records, err := h.State.RetrieveRecords()
	if err != nil {
		return err
	}

	if from > to || from >= uint64(len(records)) {
		return v1.NewRequestError(errors.New("index range out of bounds"), http.StatusBadRequest)
	}
	if to >= uint64(len(records)) {
		to = uint64(len(records)) - 1
	}

	return web.Respond(ctx, w, records[from:to+1], http.StatusOK)
}

// Latest returns the current last record in the chain.
func (h Handlers) Latest(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestRecord()
	return web.Respond(ctx, w, latest, http.StatusOK)
}

// Validate runs the integrity checking pass over the whole chain. This is
// the same verification every node would perform independently after a
// record is broadcast.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validateResult{
		Valid:  true,
		Height: h.State.RetrieveHeight(),
	}

	if err := h.State.ValidateChain(); err != nil {
		var ire *record.InvalidRecordError
		if !errors.As(err, &ire) {
			return err
		}

		resp.Valid = false
		resp.Index = ire.Index
		resp.Reason = ire.Reason
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
