package memory_test

import (
	"testing"

	"github.com/ardanlabs/powledger/foundation/ledger/chain/memory"
	"github.com/ardanlabs/powledger/foundation/ledger/record"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Storage(t *testing.T) {
	t.Log("Given the need to validate the in memory storage.")
	{
		t.Logf("\tTest 0:\tWhen writing and reading records.")
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct storage: %v", failed, err)
			}

			records := []record.Record{
				{Index: 0, Payload: "a", Hash: "h0"},
				{Index: 1, Payload: "b", Hash: "h1"},
			}

			for _, r := range records {
				if err := storage.Write(r); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to write record %d: %v", failed, r.Index, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write records in order.", success)

			if err := storage.Write(record.Record{Index: 5}); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject an out of order record.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an out of order record.", success)

			r, err := storage.GetRecord(1)
			if err != nil || r.Hash != "h1" {
				t.Fatalf("\t%s\tTest 0:\tShould be able to get record 1: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to get record 1.", success)

			if _, err := storage.GetRecord(2); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould fail to get a missing record.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould fail to get a missing record.", success)

			var count int
			iter := storage.ForEach()
			for r, err := iter.Next(); !iter.Done(); r, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to iterate: %v", failed, err)
				}
				if r.Index != uint64(count) {
					t.Fatalf("\t%s\tTest 0:\tShould iterate in index order.", failed)
				}
				count++
			}
			if count != len(records) {
				t.Fatalf("\t%s\tTest 0:\tShould iterate all %d records, got %d.", failed, len(records), count)
			}
			t.Logf("\t%s\tTest 0:\tShould iterate all records in order.", success)
		}
	}
}
