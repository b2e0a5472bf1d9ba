package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/salat/internal/model"
)

const dayKeyLayout = "2006-01-02"

// SaveDay caches fetched timings for a date and city.
func (s *Store) SaveDay(ctx context.Context, day model.DayTimings) error {
	payload, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to encode day: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO days (date, city, country, payload, fetched_at_ms) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date, city, country) DO UPDATE SET payload = excluded.payload, fetched_at_ms = excluded.fetched_at_ms`,
		day.Date.Format(dayKeyLayout),
		normalizePlace(day.City),
		normalizePlace(day.Country),
		string(payload),
		time.Now().UnixMilli(),
	)
	return err
}

// LoadDay returns cached timings; ok is false when nothing is cached.
func (s *Store) LoadDay(ctx context.Context, date time.Time, city, country string) (model.DayTimings, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM days WHERE date = ? AND city = ? AND country = ?`,
		date.Format(dayKeyLayout), normalizePlace(city), normalizePlace(country),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DayTimings{}, false, nil
	}
	if err != nil {
		return model.DayTimings{}, false, err
	}
	var day model.DayTimings
	if err := json.Unmarshal([]byte(payload), &day); err != nil {
		return model.DayTimings{}, false, fmt.Errorf("failed to decode cached day: %w", err)
	}
	return day, true, nil
}

// PruneDays drops cached days older than before.
func (s *Store) PruneDays(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM days WHERE date < ?`, before.Format(dayKeyLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func normalizePlace(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
