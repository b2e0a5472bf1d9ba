package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/verte-zerg/salat/internal/model"
)

// UpsertAlarm registers a task, replacing any task with the same code.
func (s *Store) UpsertAlarm(ctx context.Context, task model.AlarmTask) error {
	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode alarm payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO alarms (code, kind, fire_at_ms, exact, token, payload)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET
			kind = excluded.kind,
			fire_at_ms = excluded.fire_at_ms,
			exact = excluded.exact,
			token = excluded.token,
			payload = excluded.payload`,
		task.Code,
		string(task.Kind),
		task.FireAt.UnixMilli(),
		boolToInt(task.Exact),
		task.Token,
		string(payload),
	)
	return err
}

// ListAlarms returns all registered tasks ordered by fire time.
func (s *Store) ListAlarms(ctx context.Context) ([]model.AlarmTask, error) {
	return s.queryAlarms(ctx, `SELECT code, kind, fire_at_ms, exact, token, payload
		FROM alarms ORDER BY fire_at_ms ASC, code ASC`)
}

// DueAlarms returns tasks whose fire time is at or before now.
func (s *Store) DueAlarms(ctx context.Context, now time.Time) ([]model.AlarmTask, error) {
	return s.queryAlarms(ctx, `SELECT code, kind, fire_at_ms, exact, token, payload
		FROM alarms WHERE fire_at_ms <= ? ORDER BY fire_at_ms ASC, code ASC`, now.UnixMilli())
}

// DeleteAlarm removes a fired task unless it was replaced in the meantime.
func (s *Store) DeleteAlarm(ctx context.Context, code int, token string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alarms WHERE code = ? AND token = ?`, code, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearAlarms removes every registered task.
func (s *Store) ClearAlarms(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM alarms`)
	return err
}

func (s *Store) queryAlarms(ctx context.Context, query string, args ...any) ([]model.AlarmTask, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var tasks []model.AlarmTask
	for rows.Next() {
		var task model.AlarmTask
		var kind, payload string
		var fireAt int64
		var exact int
		if err := rows.Scan(&task.Code, &kind, &fireAt, &exact, &task.Token, &payload); err != nil {
			return nil, err
		}
		task.Kind = model.AlarmKind(kind)
		task.FireAt = time.UnixMilli(fireAt)
		task.Exact = exact != 0
		if payload != "" && payload != "null" {
			if err := json.Unmarshal([]byte(payload), &task.Payload); err != nil {
				return nil, fmt.Errorf("failed to decode alarm %d payload: %w", task.Code, err)
			}
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// RecordFire appends a dispatch record.
func (s *Store) RecordFire(ctx context.Context, fire model.AlarmFire) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alarm_fires (code, kind, token, fired_at_ms, late_ms, err) VALUES (?, ?, ?, ?, ?, ?)`,
		fire.Code,
		string(fire.Kind),
		fire.Token,
		fire.FiredAt.UnixMilli(),
		fire.Late.Milliseconds(),
		fire.Err,
	)
	return err
}

// ListFires returns the most recent dispatch records, newest first.
func (s *Store) ListFires(ctx context.Context, limit int) ([]model.AlarmFire, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, kind, token, fired_at_ms, late_ms, err FROM alarm_fires
		 ORDER BY fired_at_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var fires []model.AlarmFire
	for rows.Next() {
		var fire model.AlarmFire
		var kind string
		var firedAt, lateMs int64
		if err := rows.Scan(&fire.Code, &kind, &fire.Token, &firedAt, &lateMs, &fire.Err); err != nil {
			return nil, err
		}
		fire.Kind = model.AlarmKind(kind)
		fire.FiredAt = time.UnixMilli(firedAt)
		fire.Late = time.Duration(lateMs) * time.Millisecond
		fires = append(fires, fire)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fires, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
