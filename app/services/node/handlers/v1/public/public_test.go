package public_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	v1 "github.com/ardanlabs/powledger/app/services/node/handlers/v1"
	"github.com/ardanlabs/powledger/business/web/v1/mid"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/ledger/chain/memory"
	"github.com/ardanlabs/powledger/foundation/ledger/genesis"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
	"github.com/ardanlabs/powledger/foundation/ledger/state"
	"github.com/ardanlabs/powledger/foundation/logger"
	"github.com/ardanlabs/powledger/foundation/web"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

// newTestMux constructs the public route mux over a chain holding the genesis
// record and one mined record per payload.
func newTestMux(t *testing.T, payloads []string) http.Handler {
	log, err := logger.New("TEST")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a logger: %v", failed, err)
	}
	t.Cleanup(func() { log.Sync() })

	storage, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct storage: %v", failed, err)
	}

	st, err := state.New(context.Background(), state.Config{
		Genesis: genesis.Genesis{
			Name:       "test",
			Difficulty: 1,
			Payload:    "Genesis Block",
		},
		Storage: storage,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	t.Cleanup(func() { st.Shutdown() })

	for _, data := range payloads {
		if _, err := st.SubmitPayload(data); err != nil {
			t.Fatalf("\t%s\tShould be able to submit a payload: %v", failed, err)
		}
		if _, err := st.MineNextRecord(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the record: %v", failed, err)
		}
	}

	app := web.NewApp(make(chan os.Signal, 1), mid.Errors(log))
	v1.PublicRoutes(app, v1.Config{
		Log:   log,
		State: st,
		Evts:  events.New(),
	})

	return app
}

func Test_RecordsRoutes(t *testing.T) {
	payloads := []string{
		"Transaction Data #1",
		"Transaction Data #2",
	}

	t.Log("Given the need to list chain records over the public API.")
	{
		mux := newTestMux(t, payloads)

		t.Logf("\tTest 0:\tWhen requesting a single record by index.")
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chain/list/1", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould get status 200, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould get status 200.", success)

			var records []record.Record
			if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould decode the response: %v", failed, err)
			}
			if len(records) != 1 || records[0].Index != 1 || records[0].Payload != payloads[0] {
				t.Fatalf("\t%s\tTest 0:\tShould get record 1 and only record 1: %+v", failed, records)
			}
			t.Logf("\t%s\tTest 0:\tShould get record 1 and only record 1.", success)
		}

		t.Logf("\tTest 1:\tWhen requesting an index past the end of the chain.")
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chain/list/9", nil))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 1:\tShould get status 400, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 1:\tShould get status 400.", success)
		}

		t.Logf("\tTest 2:\tWhen requesting an index range.")
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chain/list/0/1", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 2:\tShould get status 200, got %d.", failed, w.Code)
			}

			var records []record.Record
			if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould decode the response: %v", failed, err)
			}
			if len(records) != 2 || records[0].Index != 0 || records[1].Index != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould get records 0 and 1: %+v", failed, records)
			}
			t.Logf("\t%s\tTest 2:\tShould get records 0 and 1.", success)
		}

		t.Logf("\tTest 3:\tWhen requesting the full chain.")
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chain/list", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 3:\tShould get status 200, got %d.", failed, w.Code)
			}

			var records []record.Record
			if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould decode the response: %v", failed, err)
			}
			if len(records) != len(payloads)+1 {
				t.Fatalf("\t%s\tTest 3:\tShould get %d records, got %d.", failed, len(payloads)+1, len(records))
			}
			t.Logf("\t%s\tTest 3:\tShould get the whole chain.", success)
		}
	}
}
