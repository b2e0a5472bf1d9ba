package alarm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/model"
)

// Handler serves fired tasks of one kind.
type Handler interface {
	Handle(ctx context.Context, task model.AlarmTask, firedAt time.Time) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, task model.AlarmTask, firedAt time.Time) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, task model.AlarmTask, firedAt time.Time) error {
	return f(ctx, task, firedAt)
}

// Queue is the persisted side the runner reads from.
type Queue interface {
	DueAlarms(ctx context.Context, now time.Time) ([]model.AlarmTask, error)
	DeleteAlarm(ctx context.Context, code int, token string) (bool, error)
	RecordFire(ctx context.Context, fire model.AlarmFire) error
}

// Runner polls the queue and dispatches due tasks.
type Runner struct {
	Queue    Queue
	Handlers map[model.AlarmKind]Handler
	Interval time.Duration
	// OnFired runs after each dispatch, e.g. to re-plan the next day.
	OnFired func(ctx context.Context, fire model.AlarmFire)
	Now     func() time.Time
}

// Run polls until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := r.Tick(ctx, r.now()); err != nil {
			log.Warn().Err(err).Msg("alarm poll failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick dispatches every task due at now and returns the fire records.
// Inexact tasks wait for the next whole minute.
func (r *Runner) Tick(ctx context.Context, now time.Time) ([]model.AlarmFire, error) {
	due, err := r.Queue.DueAlarms(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due alarms: %w", err)
	}
	var fires []model.AlarmFire
	for _, task := range due {
		if !task.Exact && now.Before(nextMinute(task.FireAt)) {
			continue
		}
		claimed, err := r.Queue.DeleteAlarm(ctx, task.Code, task.Token)
		if err != nil {
			return fires, fmt.Errorf("failed to claim alarm %d: %w", task.Code, err)
		}
		if !claimed {
			continue
		}
		fire := r.dispatch(ctx, task, now)
		if err := r.Queue.RecordFire(ctx, fire); err != nil {
			log.Warn().Err(err).Int("code", task.Code).Msg("failed to record alarm fire")
		}
		if r.OnFired != nil {
			r.OnFired(ctx, fire)
		}
		fires = append(fires, fire)
	}
	return fires, nil
}

func (r *Runner) dispatch(ctx context.Context, task model.AlarmTask, now time.Time) model.AlarmFire {
	fire := model.AlarmFire{
		Code:    task.Code,
		Kind:    task.Kind,
		Token:   task.Token,
		FiredAt: now,
		Late:    now.Sub(task.FireAt),
	}
	handler, ok := r.Handlers[task.Kind]
	if !ok {
		fire.Err = fmt.Sprintf("no handler for %s", task.Kind)
		log.Warn().Int("code", task.Code).Str("kind", string(task.Kind)).Msg("alarm has no handler")
		return fire
	}
	if err := handler.Handle(ctx, task, now); err != nil {
		fire.Err = err.Error()
		log.Warn().Err(err).Int("code", task.Code).Msg("alarm handler failed")
		return fire
	}
	log.Info().
		Int("code", task.Code).
		Str("kind", string(task.Kind)).
		Dur("late", fire.Late).
		Msg("alarm fired")
	return fire
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// nextMinute rounds t up to a whole minute.
func nextMinute(t time.Time) time.Time {
	m := t.Truncate(time.Minute)
	if m.Equal(t) {
		return t
	}
	return m.Add(time.Minute)
}
