package tasbeeh

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/store"
)

func newCounter(t *testing.T, now *time.Time) (*Counter, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "salat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	c := New(st, st)
	c.now = func() time.Time { return *now }
	return c, st
}

func TestIncrementAndStats(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	c, _ := newCounter(t, &now)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.Increment(ctx); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	count, err := c.Count(ctx)
	if err != nil || count != 3 {
		t.Fatalf("expected count 3, got %d %v", count, err)
	}
	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Today != 3 || stats.Week != 3 || stats.Month != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestResetTodayKeepsWeekAndMonth(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	c, st := newCounter(t, &now)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if _, err := c.Increment(ctx); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if err := c.ResetToday(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	count, _ := c.Count(ctx)
	stats, _ := c.Stats(ctx)
	if count != 0 || stats.Today != 0 || stats.Week != 4 || stats.Month != 4 {
		t.Fatalf("unexpected after reset: count=%d stats=%+v", count, stats)
	}
	days, err := st.ListTally(ctx, now.AddDate(0, 0, -1))
	if err != nil || len(days) != 1 || days[0].Count != 0 {
		t.Fatalf("expected history reset, got %+v %v", days, err)
	}
}

func TestBucketsRollOver(t *testing.T) {
	// Wednesday 2026-03-04; next Monday 2026-03-09 starts a new ISO week.
	now := time.Date(2026, 3, 4, 23, 0, 0, 0, time.Local)
	c, st := newCounter(t, &now)
	ctx := context.Background()
	_, _ = c.Increment(ctx)
	_, _ = c.Increment(ctx)

	now = time.Date(2026, 3, 5, 8, 0, 0, 0, time.Local)
	stats, _ := c.Stats(ctx)
	if stats.Today != 0 || stats.Week != 2 || stats.Month != 2 {
		t.Fatalf("expected day rollover only, got %+v", stats)
	}
	count, _ := c.Count(ctx)
	if count != 2 {
		t.Fatalf("counter value survives day rollover, got %d", count)
	}

	now = time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)
	_, _ = c.Increment(ctx)
	stats, _ = c.Stats(ctx)
	if stats.Today != 1 || stats.Week != 1 || stats.Month != 3 {
		t.Fatalf("expected week rollover, got %+v", stats)
	}

	now = time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local)
	stats, _ = c.Stats(ctx)
	if stats.Month != 0 {
		t.Fatalf("expected month rollover, got %+v", stats)
	}

	days, err := st.ListTally(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local))
	if err != nil || len(days) != 2 || days[0].Count != 2 || days[1].Count != 1 {
		t.Fatalf("unexpected history %+v %v", days, err)
	}
}

func TestMemoryBackendWithoutHistory(t *testing.T) {
	c := New(kv.NewMemory(), nil)
	ctx := context.Background()
	n, err := c.Increment(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1, got %d %v", n, err)
	}
}

func TestBucketKeys(t *testing.T) {
	day, week, month := BucketKeys(time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC))
	if day != "2027-01-01" || week != "2026-W53" || month != "2027-1" {
		t.Fatalf("unexpected keys %q %q %q", day, week, month)
	}
}
