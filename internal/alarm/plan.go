// Package alarm plans, persists and dispatches one-shot reminders.
package alarm

import (
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/prayer"
)

// Fixed request codes. Registering a code again replaces the earlier task.
const (
	CodeNextAdhan    = 1001
	CodeAdhanBase    = 2001
	CodePreAdhanBase = 3001
	CodeAzkarMorning = 4001
	CodeAzkarEvening = 4002
	CodeAzkarSleep   = 4003
)

// Payload keys.
const (
	PayloadPrayerName  = "prayer_name"
	PayloadPrayerTime  = "prayer_time"
	PayloadLeadMinutes = "lead_minutes"
	PayloadTitle       = "title"
	PayloadBody        = "body"
	PayloadAzkarType   = "azkar_type"
)

// adhanSafety keeps a prayer that is due within seconds from being
// registered for today.
const adhanSafety = 5 * time.Second

// AdhanCode returns the request code of a prayer's adhan.
func AdhanCode(p prayer.Prayer) int {
	return CodeAdhanBase + int(p)
}

// PreAdhanCode returns the request code of a prayer's early reminder.
func PreAdhanCode(p prayer.Prayer) int {
	return CodePreAdhanBase + int(p)
}

// PlanAdhans builds one adhan task per parseable prayer at today HH:MM:00,
// moved to tomorrow when not later than now plus five seconds.
func PlanAdhans(s prayer.Schedule, now time.Time) []model.AlarmTask {
	var tasks []model.AlarmTask
	for _, p := range prayer.All {
		raw := s.Time(p)
		clock, ok := prayer.ParseClock(raw)
		if !ok {
			continue
		}
		at := todayAt(now, clock)
		if !at.After(now.Add(adhanSafety)) {
			at = at.AddDate(0, 0, 1)
		}
		tasks = append(tasks, model.AlarmTask{
			Code:   AdhanCode(p),
			Kind:   model.AlarmAdhan,
			FireAt: at,
			Payload: map[string]string{
				PayloadPrayerName: p.String(),
				PayloadPrayerTime: raw,
			},
		})
	}
	return tasks
}

// PlanPreAdhans builds reminders lead minutes before each prayer. Nothing is
// planned when lead is not positive.
func PlanPreAdhans(s prayer.Schedule, now time.Time, lead int) []model.AlarmTask {
	if lead <= 0 {
		return nil
	}
	var tasks []model.AlarmTask
	for _, p := range prayer.All {
		raw := s.Time(p)
		clock, ok := prayer.ParseClock(raw)
		if !ok {
			continue
		}
		at := todayAt(now, clock).Add(-time.Duration(lead) * time.Minute)
		if !at.After(now.Add(adhanSafety)) {
			at = at.AddDate(0, 0, 1)
		}
		tasks = append(tasks, model.AlarmTask{
			Code:   PreAdhanCode(p),
			Kind:   model.AlarmAdhan,
			FireAt: at,
			Payload: map[string]string{
				PayloadPrayerName:  p.String(),
				PayloadPrayerTime:  raw,
				PayloadLeadMinutes: strconv.Itoa(lead),
			},
		})
	}
	return tasks
}

// PlanNext builds the single next-adhan task at now plus diffMinutes.
func PlanNext(now time.Time, diffMinutes int, next prayer.Result) (model.AlarmTask, bool) {
	if diffMinutes <= 0 {
		return model.AlarmTask{}, false
	}
	return model.AlarmTask{
		Code:   CodeNextAdhan,
		Kind:   model.AlarmAdhan,
		FireAt: now.Add(time.Duration(diffMinutes) * time.Minute),
		Payload: map[string]string{
			PayloadPrayerName: next.Name(),
			PayloadPrayerTime: next.Time,
		},
	}, true
}

// PlanAzkar builds the morning (fajr + 5 min), evening (asr + 5 min) and
// sleep reminders. Unparseable prayer times fall back to 08:00. Each moves
// to tomorrow when not after now.
func PlanAzkar(s prayer.Schedule, now time.Time, sleep prayer.Clock) []model.AlarmTask {
	fallback := prayer.Clock{Hour: 8}
	morning, ok := strictClock(s.Fajr)
	if !ok {
		morning = fallback
	}
	evening, ok := strictClock(s.Asr)
	if !ok {
		evening = fallback
	}
	items := []struct {
		code  int
		typ   string
		title string
		body  string
		at    time.Time
	}{
		{CodeAzkarMorning, "morning", "أذكار الصباح", "خذ دقيقة لأذكار الصباح", todayAt(now, morning).Add(5 * time.Minute)},
		{CodeAzkarEvening, "evening", "أذكار المساء", "خذ دقيقة لأذكار المساء", todayAt(now, evening).Add(5 * time.Minute)},
		{CodeAzkarSleep, "sleep", "أذكار النوم", "قبل النوم… لا تنس الأذكار", todayAt(now, sleep)},
	}
	tasks := make([]model.AlarmTask, 0, len(items))
	for _, item := range items {
		at := item.at
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		tasks = append(tasks, model.AlarmTask{
			Code:   item.code,
			Kind:   model.AlarmAzkar,
			FireAt: at,
			Payload: map[string]string{
				PayloadTitle:     item.title,
				PayloadBody:      item.body,
				PayloadAzkarType: item.typ,
			},
		})
	}
	return tasks
}

// strictClock accepts exactly HH:MM after trimming; "5:30" is rejected.
func strictClock(raw string) (prayer.Clock, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) != len("15:04") {
		return prayer.Clock{}, false
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		return prayer.Clock{}, false
	}
	return prayer.ParseClock(raw)
}

func todayAt(now time.Time, c prayer.Clock) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, now.Location())
}
