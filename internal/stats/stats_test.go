package stats

import "testing"

func TestRecordAccumulates(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Record("kqkr", OutcomeWin); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record("kqkr", OutcomeDraw); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record("kqkr", OutcomeWin); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get("kqkr")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Probes != 3 || got.Wins != 2 || got.Draws != 1 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestGetUnknownSignatureIsZeroValue(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	got, err := store.Get("kbkn")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Probes != 0 {
		t.Fatalf("expected zero probes for unseen signature, got %+v", got)
	}
}

func TestAllListsEverySignature(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Record("kqkr", OutcomeWin); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record("kk", OutcomeDraw); err != nil {
		t.Fatalf("Record: %v", err)
	}

	all, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recorded signatures, got %d: %+v", len(all), all)
	}
}
