package prayer

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 3600

// TimeOfDay is a wall-clock sample with second precision.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// At extracts the local time of day from t.
func At(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Seconds returns seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Result describes the upcoming prayer.
type Result struct {
	Prayer      Prayer
	Time        string
	DiffSeconds int
	DiffMinutes int
	Countdown   string
}

// Name returns the lower-case label of the chosen prayer.
func (r Result) Name() string {
	return r.Prayer.String()
}

// ComputeNext returns the prayer with the smallest forward distance from now.
// Unparseable entries are skipped; ok is false when none parse.
// A target equal to now counts as a full day away.
func ComputeNext(s Schedule, now TimeOfDay) (Result, bool) {
	nowSeconds := now.Seconds()
	best := Result{}
	found := false
	for _, p := range All {
		raw := s.Time(p)
		clock, ok := ParseClock(raw)
		if !ok {
			continue
		}
		diff := forwardDiff(clock.Minutes()*60, nowSeconds)
		if found && diff >= best.DiffSeconds {
			continue
		}
		best = Result{Prayer: p, Time: raw, DiffSeconds: diff}
		found = true
	}
	if !found {
		return Result{}, false
	}
	best.DiffMinutes = (best.DiffSeconds + 59) / 60
	best.Countdown = FormatCountdown(best.DiffSeconds)
	return best, true
}

func forwardDiff(target, now int) int {
	diff := target - now
	if target < now {
		diff = target + secondsPerDay - now
	}
	if diff == 0 {
		return secondsPerDay
	}
	return diff
}

// FormatCountdown renders seconds as zero-padded HH:MM:SS.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
