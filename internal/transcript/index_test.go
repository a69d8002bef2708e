package transcript

import (
	"testing"
	"time"
)

func TestBuildIndexSessionMeta(t *testing.T) {
	start := time.Date(2026, 2, 19, 8, 37, 11, 936000000, time.UTC)
	recs := []*Record{
		{Type: "session", ID: "S1", Timestamp: start, Cwd: "/home/x"},
		// A later session record refreshes only the fields it carries.
		{Type: "session", Cwd: "/home/y"},
	}
	idx := BuildIndex(recs)

	if idx.Meta.SessionID != "S1" {
		t.Errorf("session id: got %q, want %q", idx.Meta.SessionID, "S1")
	}
	if !idx.Meta.StartedAt.Equal(start) {
		t.Errorf("started at: got %v, want %v", idx.Meta.StartedAt, start)
	}
	if idx.Meta.Cwd != "/home/y" {
		t.Errorf("cwd: got %q, want %q", idx.Meta.Cwd, "/home/y")
	}
}

func TestBuildIndexNoSessionRecord(t *testing.T) {
	idx := BuildIndex([]*Record{{Type: "message", ID: "m1"}})
	if idx.Meta.SessionID != "" || idx.Meta.Cwd != "" || !idx.Meta.StartedAt.IsZero() {
		t.Errorf("expected empty meta, got %+v", idx.Meta)
	}
}

func TestBuildIndexDuplicateIDs(t *testing.T) {
	recs := []*Record{
		{Type: "message", ID: "x"},
		{Type: "session", ID: "x"},
	}
	idx := BuildIndex(recs)

	if len(idx.Order) != 2 {
		t.Fatalf("order should keep both occurrences, got %d", len(idx.Order))
	}
	if got := idx.ByID["x"].Type; got != "session" {
		t.Errorf("last write should win in ByID, got type %q", got)
	}
}

func TestBuildIndexSkipsEmptyIDs(t *testing.T) {
	recs := []*Record{
		{Type: "message"},
		{Type: "message", ID: "m1"},
	}
	idx := BuildIndex(recs)

	if len(idx.Records) != 2 {
		t.Errorf("Records should keep id-less entries, got %d", len(idx.Records))
	}
	if len(idx.Order) != 1 || idx.Order[0] != "m1" {
		t.Errorf("Order should only hold real ids, got %v", idx.Order)
	}
}
