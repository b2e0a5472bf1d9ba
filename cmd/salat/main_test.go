package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/salat/internal/alarm"
	"github.com/verte-zerg/salat/internal/config"
	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/store"
)

func TestApplyRootFlagsCityForcesManual(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--city", "Cairo", "--country", "Egypt"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.Default()
	cfg.Location.Method = 5
	got := applyRootFlags(cmd, cfg)
	if got.Location.Mode != "manual" || got.Location.City != "Cairo" || got.Location.Country != "Egypt" {
		t.Fatalf("unexpected location %+v", got.Location)
	}
	if got.Location.Method != 5 {
		t.Fatalf("file method must apply when --method is unset, got %d", got.Location.Method)
	}
}

func TestApplyRootFlagsMethodWins(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--method", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.Default()
	cfg.Location.Method = 5
	got := applyRootFlags(cmd, cfg)
	if got.Location.Method != 2 {
		t.Fatalf("--method must win, got %d", got.Location.Method)
	}
	if got.Location.Mode != "auto" {
		t.Fatalf("mode must stay auto without --city, got %s", got.Location.Mode)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	root := newRootCmd()
	paths := [][]string{
		{"times"}, {"next"}, {"qibla"}, {"timetable"}, {"location"},
		{"tasbeeh", "inc"}, {"tasbeeh", "stats"}, {"azkar", "next"},
		{"names"}, {"quran", "play"}, {"settings", "set"},
		{"alarms", "plan"}, {"alarms", "fires"}, {"daemon"}, {"serve"}, {"notify-test"},
	}
	for _, path := range paths {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Fatalf("command %s not found", strings.Join(path, " "))
		}
	}
}

func TestFormatNext(t *testing.T) {
	got := formatNext(prayer.Result{Prayer: prayer.Dhuhr, Time: "12:20", Countdown: "00:19:00"})
	want := "Dhuhr (" + prayer.Dhuhr.Arabic() + ") at 12:20, in 00:19:00"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidTheme(t *testing.T) {
	if !validTheme("ocean") || validTheme("neon") {
		t.Fatalf("theme check mismatch")
	}
}

func TestPlanDayFiresOneAdhanPerPrayer(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "salat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("close store: %v", err)
		}
	})
	ctx := context.Background()
	planner := alarm.Planner{
		Scheduler: alarm.Local{Store: st, Exact: true},
		Settings:  kv.NewMemory(),
		SleepAt:   prayer.Clock{Hour: 22},
	}
	day := model.DayTimings{Fajr: "04:52", Sunrise: "06:10", Dhuhr: "12:20", Asr: "15:46", Maghrib: "18:31", Isha: "20:01"}
	if err := planDay(ctx, planner, day, time.Date(2026, 3, 1, 11, 20, 0, 0, time.Local)); err != nil {
		t.Fatalf("plan: %v", err)
	}

	var adhans []int
	r := &alarm.Runner{
		Queue: st,
		Handlers: map[model.AlarmKind]alarm.Handler{
			model.AlarmAdhan: alarm.HandlerFunc(func(_ context.Context, task model.AlarmTask, _ time.Time) error {
				if task.Payload[alarm.PayloadPrayerName] == "dhuhr" {
					adhans = append(adhans, task.Code)
				}
				return nil
			}),
		},
	}
	for _, sec := range []int{0, 1, 30, 59} {
		if _, err := r.Tick(ctx, time.Date(2026, 3, 1, 12, 20, sec, 0, time.Local)); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if _, err := r.Tick(ctx, time.Date(2026, 3, 1, 12, 21, 0, 0, time.Local)); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(adhans) != 1 || adhans[0] != 2002 {
		t.Fatalf("dhuhr must sound once from its daily adhan, got codes %v", adhans)
	}
}
