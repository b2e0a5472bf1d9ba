package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "salat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestKVRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Get(ctx, "theme_name"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Set(ctx, "theme_name", "sand"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "theme_name", "ocean"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err := st.Get(ctx, "theme_name")
	if err != nil || v != "ocean" {
		t.Fatalf("expected last write to win, got %q, %v", v, err)
	}
	if err := st.Delete(ctx, "theme_name"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, "theme_name"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAlarmReplaceAndDue(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := model.AlarmTask{Code: 2001, Kind: model.AlarmAdhan, FireAt: base, Exact: true, Token: "a", Payload: map[string]string{"prayer_name": "fajr"}}
	if err := st.UpsertAlarm(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	replaced := first
	replaced.FireAt = base.Add(time.Hour)
	replaced.Token = "b"
	if err := st.UpsertAlarm(ctx, replaced); err != nil {
		t.Fatalf("replace: %v", err)
	}
	other := model.AlarmTask{Code: 4003, Kind: model.AlarmAzkar, FireAt: base.Add(-time.Minute), Token: "c"}
	if err := st.UpsertAlarm(ctx, other); err != nil {
		t.Fatalf("upsert other: %v", err)
	}

	all, err := st.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected replace semantics to keep 2 alarms, got %d", len(all))
	}
	if all[1].Code != 2001 || all[1].Token != "b" || !all[1].FireAt.Equal(replaced.FireAt) {
		t.Fatalf("unexpected replaced alarm: %+v", all[1])
	}
	if all[1].Payload["prayer_name"] != "fajr" || !all[1].Exact {
		t.Fatalf("payload or exact flag lost: %+v", all[1])
	}

	due, err := st.DueAlarms(ctx, base)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 || due[0].Code != 4003 {
		t.Fatalf("expected only 4003 due, got %+v", due)
	}

	deleted, err := st.DeleteAlarm(ctx, 2001, "a")
	if err != nil || deleted {
		t.Fatalf("stale token must not delete: %v %v", deleted, err)
	}
	deleted, err = st.DeleteAlarm(ctx, 2001, "b")
	if err != nil || !deleted {
		t.Fatalf("expected delete with current token: %v %v", deleted, err)
	}
}

func TestRecordAndListFires(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 3; i++ {
		fire := model.AlarmFire{Code: 2001 + i, Kind: model.AlarmAdhan, Token: "t", FiredAt: now.Add(time.Duration(i) * time.Second), Late: 1500 * time.Millisecond}
		if err := st.RecordFire(ctx, fire); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	fires, err := st.ListFires(ctx, 2)
	if err != nil {
		t.Fatalf("list fires: %v", err)
	}
	if len(fires) != 2 || fires[0].Code != 2003 {
		t.Fatalf("expected newest first, got %+v", fires)
	}
	if fires[0].Late != 1500*time.Millisecond {
		t.Fatalf("late not preserved: %v", fires[0].Late)
	}
}

func TestDayCache(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	day := model.DayTimings{Date: date, City: "Makkah", Country: "Saudi Arabia", Fajr: "05:10", Isha: "19:50", Hijri: "11-09-1447"}
	if err := st.SaveDay(ctx, day); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := st.LoadDay(ctx, date, " makkah", "SAUDI ARABIA")
	if err != nil || !ok {
		t.Fatalf("expected cached day, got ok=%v err=%v", ok, err)
	}
	if got.Fajr != "05:10" || got.Hijri != "11-09-1447" {
		t.Fatalf("unexpected day: %+v", got)
	}
	if _, ok, _ := st.LoadDay(ctx, date.AddDate(0, 0, 1), "Makkah", "Saudi Arabia"); ok {
		t.Fatalf("expected miss for another date")
	}
	n, err := st.PruneDays(ctx, date.AddDate(0, 0, 1))
	if err != nil || n != 1 {
		t.Fatalf("expected one pruned row, got %d, %v", n, err)
	}
}

func TestTallyHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	d1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	d2 := d1.AddDate(0, 0, 1)
	for i := 0; i < 3; i++ {
		if err := st.AddTally(ctx, d1, 1); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := st.AddTally(ctx, d2, 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	days, err := st.ListTally(ctx, d1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(days) != 2 || days[0].Count != 3 || days[1].Count != 5 {
		t.Fatalf("unexpected tally: %+v", days)
	}
	if err := st.ResetTally(ctx, d2); err != nil {
		t.Fatalf("reset: %v", err)
	}
	days, _ = st.ListTally(ctx, d2)
	if len(days) != 1 || days[0].Count != 0 {
		t.Fatalf("expected reset day, got %+v", days)
	}
}
