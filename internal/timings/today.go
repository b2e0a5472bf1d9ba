package timings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/verte-zerg/salat/internal/model"
)

const staleRetry = 10 * time.Minute

// Today serves the current day's timings to pollers, fetching at most once
// per date and location. A stale result is retried after ten minutes.
type Today struct {
	Fetcher Fetcher
	// Locate resolves the location on every call so setting changes apply.
	Locate func(ctx context.Context) (model.Location, error)
	Now    func() time.Time

	mu        sync.Mutex
	key       string
	day       model.DayTimings
	stale     bool
	fetchedAt time.Time
}

// Today implements the day provider of the display API and the daemon.
func (t *Today) Today(ctx context.Context) (model.DayTimings, bool, error) {
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	loc, err := t.Locate(ctx)
	if err != nil {
		return model.DayTimings{}, false, err
	}
	key := now.Format("2006-01-02") + "|" + loc.City + "|" + loc.Country
	if loc.Point != nil {
		key += fmt.Sprintf("|%.4f,%.4f", loc.Point.Lat, loc.Point.Lng)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.key == key && (!t.stale || now.Sub(t.fetchedAt) < staleRetry) {
		return t.day, t.stale, nil
	}
	day, stale, err := t.Fetcher.Day(ctx, loc, now)
	if err != nil {
		return model.DayTimings{}, false, err
	}
	t.key, t.day, t.stale, t.fetchedAt = key, day, stale, now
	return day, stale, nil
}
