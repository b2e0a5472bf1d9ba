package alarm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/model"
)

// ErrExactDenied is returned by schedulers that refuse an exact task.
var ErrExactDenied = errors.New("exact alarms are not permitted")

// Scheduler registers one-shot tasks.
type Scheduler interface {
	Schedule(ctx context.Context, task model.AlarmTask) error
	CanScheduleExact() bool
}

// Register schedules every task, exact when the scheduler allows it. An
// exact task that is denied is registered once more as inexact. Failures
// are logged and the remaining tasks still run; the first error is returned.
func Register(ctx context.Context, s Scheduler, tasks []model.AlarmTask) error {
	var first error
	exact := s.CanScheduleExact()
	for _, task := range tasks {
		task.Exact = exact
		err := s.Schedule(ctx, task)
		if errors.Is(err, ErrExactDenied) {
			task.Exact = false
			err = s.Schedule(ctx, task)
		}
		if err != nil {
			log.Warn().Err(err).Int("code", task.Code).Msg("failed to register alarm")
			if first == nil {
				first = fmt.Errorf("failed to register alarm %d: %w", task.Code, err)
			}
			continue
		}
		log.Debug().
			Int("code", task.Code).
			Time("fire_at", task.FireAt).
			Bool("exact", task.Exact).
			Msg("alarm registered")
	}
	return first
}

// TaskStore persists tasks keyed by code.
type TaskStore interface {
	UpsertAlarm(ctx context.Context, task model.AlarmTask) error
}

// Local persists tasks for the Runner of this machine.
type Local struct {
	Store TaskStore
	// Exact allows exact tasks; when false only inexact ones are accepted.
	Exact bool
}

// Schedule implements Scheduler. Each registration gets a fresh token so a
// runner holding a replaced task cannot delete its successor.
func (l Local) Schedule(ctx context.Context, task model.AlarmTask) error {
	if task.Exact && !l.Exact {
		return ErrExactDenied
	}
	task.Token = uuid.NewString()
	if err := l.Store.UpsertAlarm(ctx, task); err != nil {
		return fmt.Errorf("failed to save alarm %d: %w", task.Code, err)
	}
	return nil
}

// CanScheduleExact implements Scheduler.
func (l Local) CanScheduleExact() bool {
	return l.Exact
}
