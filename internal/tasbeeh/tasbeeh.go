// Package tasbeeh keeps the tally counter and its day, week and month totals.
package tasbeeh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
)

const (
	keyCount      = "tasbeeh_count"
	keyDay        = "tasbeeh_day"
	keyWeek       = "tasbeeh_week"
	keyMonth      = "tasbeeh_month"
	keyTodayTotal = "tasbeeh_today_total"
	keyWeekTotal  = "tasbeeh_week_total"
	keyMonthTotal = "tasbeeh_month_total"
)

// History records per-day totals for charts.
type History interface {
	AddTally(ctx context.Context, day time.Time, delta int) error
	ResetTally(ctx context.Context, day time.Time) error
}

// Counter is the tasbeeh counter over a key-value store.
type Counter struct {
	mu      sync.Mutex
	st      kv.Store
	history History
	now     func() time.Time
}

// New returns a counter. history may be nil.
func New(st kv.Store, history History) *Counter {
	return &Counter{st: st, history: history, now: time.Now}
}

// BucketKeys returns the day, week and month bucket identifiers for t.
func BucketKeys(t time.Time) (day, week, month string) {
	year, wk := t.ISOWeek()
	return t.Format("2006-01-02"), fmt.Sprintf("%d-W%d", year, wk), fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// Count returns the current counter value.
func (c *Counter) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureBuckets(ctx); err != nil {
		return 0, err
	}
	return kv.Int(ctx, c.st, keyCount, 0)
}

// Increment adds one to the counter and every bucket total.
func (c *Counter) Increment(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureBuckets(ctx); err != nil {
		return 0, err
	}
	var count int
	for _, key := range []string{keyCount, keyTodayTotal, keyWeekTotal, keyMonthTotal} {
		v, err := kv.Int(ctx, c.st, key, 0)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := kv.SetInt(ctx, c.st, key, v+1); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
		if key == keyCount {
			count = v + 1
		}
	}
	if c.history != nil {
		if err := c.history.AddTally(ctx, c.now(), 1); err != nil {
			return count, fmt.Errorf("failed to record tally: %w", err)
		}
	}
	return count, nil
}

// ResetToday zeroes the counter and today's total. Week and month keep theirs.
func (c *Counter) ResetToday(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureBuckets(ctx); err != nil {
		return err
	}
	if err := kv.SetInt(ctx, c.st, keyCount, 0); err != nil {
		return err
	}
	if err := kv.SetInt(ctx, c.st, keyTodayTotal, 0); err != nil {
		return err
	}
	if c.history != nil {
		if err := c.history.ResetTally(ctx, c.now()); err != nil {
			return fmt.Errorf("failed to reset tally: %w", err)
		}
	}
	return nil
}

// Stats returns the current bucket totals.
func (c *Counter) Stats(ctx context.Context) (model.TallyStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureBuckets(ctx); err != nil {
		return model.TallyStats{}, err
	}
	var stats model.TallyStats
	var err error
	if stats.Today, err = kv.Int(ctx, c.st, keyTodayTotal, 0); err != nil {
		return model.TallyStats{}, err
	}
	if stats.Week, err = kv.Int(ctx, c.st, keyWeekTotal, 0); err != nil {
		return model.TallyStats{}, err
	}
	if stats.Month, err = kv.Int(ctx, c.st, keyMonthTotal, 0); err != nil {
		return model.TallyStats{}, err
	}
	return stats, nil
}

// ensureBuckets zeroes totals whose period rolled over.
func (c *Counter) ensureBuckets(ctx context.Context) error {
	day, week, month := BucketKeys(c.now())
	buckets := []struct {
		key, total, current string
	}{
		{keyDay, keyTodayTotal, day},
		{keyWeek, keyWeekTotal, week},
		{keyMonth, keyMonthTotal, month},
	}
	for _, b := range buckets {
		stored, err := kv.String(ctx, c.st, b.key, "")
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", b.key, err)
		}
		if stored == b.current {
			continue
		}
		if err := c.st.Set(ctx, b.key, b.current); err != nil {
			return fmt.Errorf("failed to write %s: %w", b.key, err)
		}
		if err := kv.SetInt(ctx, c.st, b.total, 0); err != nil {
			return fmt.Errorf("failed to reset %s: %w", b.total, err)
		}
	}
	return nil
}
