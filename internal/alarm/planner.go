package alarm

import (
	"context"
	"time"

	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/settings"
)

// Planner registers the full set of reminders for a day.
type Planner struct {
	Scheduler Scheduler
	Settings  kv.Store
	SleepAt   prayer.Clock
}

// Tasks returns the adhans, early reminders and azkar of day at now. The
// next-adhan task is separate since it would repeat one of the adhans.
func (p Planner) Tasks(ctx context.Context, day model.DayTimings, now time.Time) ([]model.AlarmTask, error) {
	snap, err := settings.Load(ctx, p.Settings)
	if err != nil {
		return nil, err
	}
	s := day.Schedule()
	tasks := PlanAdhans(s, now)
	tasks = append(tasks, PlanPreAdhans(s, now, snap.PreAdhanMin)...)
	tasks = append(tasks, PlanAzkar(s, now, p.SleepAt)...)
	return tasks, nil
}

// PlanNextOnly registers just the upcoming adhan at code 1001.
func (p Planner) PlanNextOnly(ctx context.Context, day model.DayTimings, now time.Time) (model.AlarmTask, bool, error) {
	next, ok := prayer.ComputeNext(day.Schedule(), prayer.At(now))
	if !ok {
		return model.AlarmTask{}, false, nil
	}
	task, ok := PlanNext(now, next.DiffMinutes, next)
	if !ok {
		return model.AlarmTask{}, false, nil
	}
	if err := Register(ctx, p.Scheduler, []model.AlarmTask{task}); err != nil {
		return model.AlarmTask{}, false, err
	}
	return task, true, nil
}

// Plan registers the tasks of day.
func (p Planner) Plan(ctx context.Context, day model.DayTimings, now time.Time) error {
	tasks, err := p.Tasks(ctx, day, now)
	if err != nil {
		return err
	}
	return Register(ctx, p.Scheduler, tasks)
}
