package visits

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	s, err := OpenMemory("test-salt")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return now }
	return s
}

func TestHashVisitor(t *testing.T) {
	s := newTestStore(t, time.Now())

	a := s.HashVisitor("203.0.113.7")
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
	if a != s.HashVisitor("203.0.113.7") {
		t.Error("hash is not stable for the same address")
	}
	if a == s.HashVisitor("203.0.113.8") {
		t.Error("different addresses share a hash")
	}

	other, err := OpenMemory("other-salt")
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	if a == other.HashVisitor("203.0.113.7") {
		t.Error("salt does not change the hash")
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now)

	record := func(at time.Time, ip, path string) {
		s.now = func() time.Time { return at }
		if err := s.Record(ctx, ip, "test-agent", path); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	record(now.Add(-time.Hour), "1.1.1.1", "/")
	record(now.Add(-2*time.Hour), "1.1.1.1", "/blog")
	record(now.Add(-3*24*time.Hour), "2.2.2.2", "/")
	record(now.Add(-30*24*time.Hour), "3.3.3.3", "/projects")
	s.now = func() time.Time { return now }

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalVisits != 4 || sum.UniqueVisitors != 3 {
		t.Errorf("total/unique = %d/%d, want 4/3", sum.TotalVisits, sum.UniqueVisitors)
	}
	if sum.VisitsToday != 2 || sum.VisitsThisWeek != 3 {
		t.Errorf("today/week = %d/%d, want 2/3", sum.VisitsToday, sum.VisitsThisWeek)
	}
	if len(sum.TopPaths) == 0 || sum.TopPaths[0] != (PathCount{Path: "/", Views: 2}) {
		t.Errorf("top paths = %+v", sum.TopPaths)
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Path != "/" || recent[1].Path != "/blog" {
		t.Errorf("recent = %+v", recent)
	}
	if recent[0].Visitor == "1.1.1.1" {
		t.Error("raw IP stored")
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, now.AddDate(-2, 0, 0))
	if err := s.Record(ctx, "1.1.1.1", "", "/old"); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return now }
	if err := s.Record(ctx, "1.1.1.1", "", "/new"); err != nil {
		t.Fatal(err)
	}

	n, err := s.Prune(ctx, 12)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}
	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d, want 1", sum.TotalVisits)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := newTestStore(t, time.Now())
	sum, err := s.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalVisits != 0 || len(sum.TopPaths) != 0 {
		t.Errorf("summary = %+v", sum)
	}
}
