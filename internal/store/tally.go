package store

import (
	"context"
	"time"

	"github.com/verte-zerg/salat/internal/model"
)

// AddTally adds delta to the day's tasbeeh total.
func (s *Store) AddTally(ctx context.Context, day time.Time, delta int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tally_days (day, count) VALUES (?, ?)
		 ON CONFLICT(day) DO UPDATE SET count = count + excluded.count`,
		day.Format(dayKeyLayout), delta)
	return err
}

// ResetTally zeroes the day's tasbeeh total.
func (s *Store) ResetTally(ctx context.Context, day time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tally_days (day, count) VALUES (?, 0)
		 ON CONFLICT(day) DO UPDATE SET count = 0`,
		day.Format(dayKeyLayout))
	return err
}

// ListTally returns per-day totals from since (inclusive), oldest first.
func (s *Store) ListTally(ctx context.Context, since time.Time) ([]model.TallyDay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day, count FROM tally_days WHERE day >= ? ORDER BY day ASC`,
		since.Format(dayKeyLayout))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var days []model.TallyDay
	for rows.Next() {
		var raw string
		var entry model.TallyDay
		if err := rows.Scan(&raw, &entry.Count); err != nil {
			return nil, err
		}
		parsed, err := time.ParseInLocation(dayKeyLayout, raw, time.Local)
		if err != nil {
			return nil, err
		}
		entry.Day = parsed
		days = append(days, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}
