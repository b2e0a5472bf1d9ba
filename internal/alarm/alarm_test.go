package alarm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/verte-zerg/salat/internal/kv"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/notify"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/settings"
	"github.com/verte-zerg/salat/internal/store"
)

var testSchedule = prayer.Schedule{
	Fajr:    "04:52",
	Sunrise: "06:10",
	Dhuhr:   "12:20",
	Asr:     "15:46",
	Maghrib: "18:31",
	Isha:    "20:01",
}

func at(h, m, s int) time.Time {
	return time.Date(2026, 3, 1, h, m, s, 0, time.Local)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "salat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("close store: %v", err)
		}
	})
	return st
}

func TestPlanAdhansRollsPastPrayers(t *testing.T) {
	now := at(13, 0, 0)
	tasks := PlanAdhans(testSchedule, now)
	if len(tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(tasks))
	}
	byCode := map[int]model.AlarmTask{}
	for _, task := range tasks {
		byCode[task.Code] = task
	}
	fajr := byCode[2001]
	if !fajr.FireAt.Equal(time.Date(2026, 3, 2, 4, 52, 0, 0, time.Local)) {
		t.Fatalf("fajr should move to tomorrow, got %s", fajr.FireAt)
	}
	asr := byCode[2003]
	if !asr.FireAt.Equal(at(15, 46, 0)) {
		t.Fatalf("asr should stay today, got %s", asr.FireAt)
	}
	if asr.Payload[PayloadPrayerName] != "asr" || asr.Payload[PayloadPrayerTime] != "15:46" {
		t.Fatalf("unexpected payload %v", asr.Payload)
	}
	if asr.Kind != model.AlarmAdhan {
		t.Fatalf("unexpected kind %s", asr.Kind)
	}
}

func TestPlanAdhansSafetyWindow(t *testing.T) {
	tasks := PlanAdhans(prayer.Schedule{Dhuhr: "12:20"}, at(12, 19, 57))
	if len(tasks) != 1 {
		t.Fatalf("expected only the parseable prayer, got %d", len(tasks))
	}
	if tasks[0].FireAt.Day() != 2 {
		t.Fatalf("a prayer within five seconds must move to tomorrow, got %s", tasks[0].FireAt)
	}
	tasks = PlanAdhans(prayer.Schedule{Dhuhr: "12:20"}, at(12, 19, 54))
	if tasks[0].FireAt.Day() != 1 {
		t.Fatalf("a prayer six seconds away stays today, got %s", tasks[0].FireAt)
	}
}

func TestPlanPreAdhans(t *testing.T) {
	if tasks := PlanPreAdhans(testSchedule, at(13, 0, 0), 0); tasks != nil {
		t.Fatalf("zero lead must plan nothing, got %v", tasks)
	}
	tasks := PlanPreAdhans(testSchedule, at(13, 0, 0), 10)
	if len(tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.Code == 3003 {
			if !task.FireAt.Equal(at(15, 36, 0)) {
				t.Fatalf("unexpected asr reminder %s", task.FireAt)
			}
			if task.Payload[PayloadLeadMinutes] != "10" {
				t.Fatalf("unexpected payload %v", task.Payload)
			}
			return
		}
	}
	t.Fatalf("missing asr reminder")
}

func TestPlanAzkar(t *testing.T) {
	tasks := PlanAzkar(testSchedule, at(13, 0, 0), prayer.Clock{Hour: 22})
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	want := map[int]time.Time{
		CodeAzkarMorning: time.Date(2026, 3, 2, 4, 57, 0, 0, time.Local),
		CodeAzkarEvening: at(15, 51, 0),
		CodeAzkarSleep:   at(22, 0, 0),
	}
	for _, task := range tasks {
		if !task.FireAt.Equal(want[task.Code]) {
			t.Fatalf("code %d: expected %s, got %s", task.Code, want[task.Code], task.FireAt)
		}
		if task.Payload[PayloadTitle] == "" || task.Payload[PayloadBody] == "" {
			t.Fatalf("code %d: missing wording %v", task.Code, task.Payload)
		}
	}
}

func TestPlanAzkarFallsBackToEight(t *testing.T) {
	tasks := PlanAzkar(prayer.Schedule{Fajr: "--:--", Asr: "15:46 (EET)"}, at(7, 0, 0), prayer.Clock{Hour: 22})
	if !tasks[0].FireAt.Equal(at(8, 5, 0)) {
		t.Fatalf("morning fallback expected 08:05, got %s", tasks[0].FireAt)
	}
	if !tasks[1].FireAt.Equal(at(8, 5, 0)) {
		t.Fatalf("evening fallback expected 08:05, got %s", tasks[1].FireAt)
	}
}

func TestStrictClock(t *testing.T) {
	tests := []struct {
		raw  string
		want prayer.Clock
		ok   bool
	}{
		{"04:52", prayer.Clock{Hour: 4, Minute: 52}, true},
		{" 15:46\t", prayer.Clock{Hour: 15, Minute: 46}, true},
		{"5:30", prayer.Clock{}, false},
		{"15:46 (EET)", prayer.Clock{}, false},
		{"24:00", prayer.Clock{}, false},
	}
	for _, tc := range tests {
		got, ok := strictClock(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("strictClock(%q) = %+v, %v; want %+v, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
	tasks := PlanAzkar(prayer.Schedule{Fajr: "4:52", Asr: "15:46"}, at(7, 0, 0), prayer.Clock{Hour: 22})
	if !tasks[0].FireAt.Equal(at(8, 5, 0)) {
		t.Fatalf("one-digit hour must fall back to 08:05, got %s", tasks[0].FireAt)
	}
}

func TestPlanNext(t *testing.T) {
	now := at(12, 0, 0)
	next, ok := prayer.ComputeNext(testSchedule, prayer.At(now))
	if !ok {
		t.Fatalf("expected next prayer")
	}
	task, ok := PlanNext(now, next.DiffMinutes, next)
	if !ok {
		t.Fatalf("expected task")
	}
	if task.Code != CodeNextAdhan || !task.FireAt.Equal(at(12, 20, 0)) {
		t.Fatalf("unexpected task %+v", task)
	}
	if _, ok := PlanNext(now, 0, next); ok {
		t.Fatalf("zero minutes must be skipped")
	}
}

type fakeScheduler struct {
	exact  bool
	deny   bool
	calls  []model.AlarmTask
	failOn int
}

func (f *fakeScheduler) Schedule(_ context.Context, task model.AlarmTask) error {
	f.calls = append(f.calls, task)
	if task.Code == f.failOn {
		return errors.New("boom")
	}
	if task.Exact && f.deny {
		return ErrExactDenied
	}
	return nil
}

func (f *fakeScheduler) CanScheduleExact() bool { return f.exact }

func TestRegisterFallsBackOnce(t *testing.T) {
	s := &fakeScheduler{exact: true, deny: true}
	tasks := []model.AlarmTask{{Code: 2001}, {Code: 2002}}
	if err := Register(context.Background(), s, tasks); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(s.calls) != 4 {
		t.Fatalf("expected exact then inexact per task, got %d calls", len(s.calls))
	}
	if !s.calls[0].Exact || s.calls[1].Exact {
		t.Fatalf("expected exact then inexact, got %+v", s.calls[:2])
	}

	s = &fakeScheduler{failOn: 2001}
	err := Register(context.Background(), s, tasks)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(s.calls) != 2 {
		t.Fatalf("a failure must not stop the rest, got %d calls", len(s.calls))
	}
}

func TestLocalReplacesSameCode(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	local := Local{Store: st}
	if err := local.Schedule(ctx, model.AlarmTask{Code: 2001, Kind: model.AlarmAdhan, FireAt: at(4, 52, 0), Exact: true}); !errors.Is(err, ErrExactDenied) {
		t.Fatalf("expected exact denial, got %v", err)
	}
	first := model.AlarmTask{Code: 2001, Kind: model.AlarmAdhan, FireAt: at(4, 52, 0)}
	second := model.AlarmTask{Code: 2001, Kind: model.AlarmAdhan, FireAt: at(5, 0, 0)}
	if err := Register(ctx, local, []model.AlarmTask{first, second}); err != nil {
		t.Fatalf("register: %v", err)
	}
	tasks, err := st.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].FireAt.Equal(at(5, 0, 0)) {
		t.Fatalf("expected the later registration to win, got %+v", tasks)
	}
	if tasks[0].Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestRunnerFiresDueTasksOnce(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	local := Local{Store: st, Exact: true}
	tasks := []model.AlarmTask{
		{Code: 2001, Kind: model.AlarmAdhan, FireAt: at(4, 52, 0)},
		{Code: 4003, Kind: model.AlarmAzkar, FireAt: at(22, 0, 0)},
	}
	if err := Register(ctx, local, tasks); err != nil {
		t.Fatalf("register: %v", err)
	}
	var handled []int
	record := HandlerFunc(func(_ context.Context, task model.AlarmTask, _ time.Time) error {
		handled = append(handled, task.Code)
		return nil
	})
	var fired int
	r := &Runner{
		Queue:    st,
		Handlers: map[model.AlarmKind]Handler{model.AlarmAdhan: record, model.AlarmAzkar: record},
		OnFired:  func(context.Context, model.AlarmFire) { fired++ },
	}
	fires, err := r.Tick(ctx, at(4, 52, 3))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(fires) != 1 || fires[0].Late != 3*time.Second {
		t.Fatalf("unexpected fires %+v", fires)
	}
	if _, err := r.Tick(ctx, at(4, 52, 4)); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(handled) != 1 || handled[0] != 2001 || fired != 1 {
		t.Fatalf("a task must fire once, got %v", handled)
	}
	remaining, err := st.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Code != 4003 {
		t.Fatalf("unexpected remaining tasks %+v", remaining)
	}
	log, err := st.ListFires(ctx, 10)
	if err != nil {
		t.Fatalf("fires: %v", err)
	}
	if len(log) != 1 || log[0].Code != 2001 {
		t.Fatalf("unexpected fire log %+v", log)
	}
}

func TestRunnerBatchesInexactOnTheMinute(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	if err := Register(ctx, Local{Store: st}, []model.AlarmTask{{Code: 4001, Kind: model.AlarmAzkar, FireAt: at(4, 57, 30)}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	r := &Runner{Queue: st, Handlers: map[model.AlarmKind]Handler{}}
	fires, err := r.Tick(ctx, at(4, 57, 45))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(fires) != 0 {
		t.Fatalf("inexact task fired before the minute boundary")
	}
	fires, err = r.Tick(ctx, at(4, 58, 0))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(fires) != 1 || fires[0].Err == "" {
		t.Fatalf("expected a fire recording the missing handler, got %+v", fires)
	}
}

func TestAdhanHandlerGatesOutputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := kv.NewMemory()
	if err := settings.SetBool(ctx, st, settings.KeyEnableAdhan, false); err != nil {
		t.Fatalf("set: %v", err)
	}
	notifier := NewMockNotifier(ctrl)
	audio := NewMockNotifier(ctrl)
	buzzer := NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notify.Message) error {
		if msg.Title != "حان الآن وقت العصر" || msg.Body != "العصر - 15:46" {
			t.Fatalf("unexpected message %+v", msg)
		}
		return nil
	})
	buzzer.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notify.Message) error {
		if msg.Vibrate != time.Second {
			t.Fatalf("unexpected vibrate %s", msg.Vibrate)
		}
		return errors.New("no buzzer")
	})
	audio.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)

	h := AdhanHandler{Settings: st, Notifier: notifier, Audio: audio, Buzzer: buzzer}
	task := model.AlarmTask{Code: 2003, Kind: model.AlarmAdhan, Payload: map[string]string{
		PayloadPrayerName: "asr",
		PayloadPrayerTime: "15:46",
	}}
	if err := h.Handle(ctx, task, at(15, 46, 0)); err != nil {
		t.Fatalf("buzzer failures must be swallowed: %v", err)
	}
}

func TestAdhanMessageWording(t *testing.T) {
	msg := AdhanMessage(model.AlarmTask{Payload: map[string]string{PayloadPrayerName: "fajr", PayloadPrayerTime: "04:52"}}, "en", time.Time{})
	if msg.Title != "It is now time for Fajr" || msg.Body != "Fajr - 04:52" {
		t.Fatalf("unexpected english message %+v", msg)
	}
	msg = AdhanMessage(model.AlarmTask{}, "ar", time.Time{})
	if msg.Title != "حان الآن وقت الصلاة" || msg.Body != "الصلاة" {
		t.Fatalf("unexpected fallback message %+v", msg)
	}
	msg = AdhanMessage(model.AlarmTask{Payload: map[string]string{PayloadPrayerName: "isha", PayloadLeadMinutes: "15"}}, "en", time.Time{})
	if msg.Kind != notify.KindPreAdhan || msg.Title != "Isha in 15 minutes" {
		t.Fatalf("unexpected early reminder %+v", msg)
	}
}

func TestAzkarHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := kv.NewMemory()
	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notify.Message) error {
		if msg.Title != "تذكير بالأذكار" || msg.Body != "لا تنس أذكارك" || msg.Vibrate != 600*time.Millisecond {
			t.Fatalf("unexpected message %+v", msg)
		}
		return nil
	})
	h := AzkarHandler{Settings: st, Notifier: notifier}
	if err := h.Handle(ctx, model.AlarmTask{Kind: model.AlarmAzkar}, at(22, 0, 0)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if err := settings.SetBool(ctx, st, settings.KeyEnableAzkarNotif, false); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := h.Handle(ctx, model.AlarmTask{Kind: model.AlarmAzkar}, at(22, 0, 0)); err != nil {
		t.Fatalf("disabled handler must be a no-op: %v", err)
	}
}

func TestPlannerUsesLeadSetting(t *testing.T) {
	ctx := context.Background()
	st := kv.NewMemory()
	if err := settings.SetInt(ctx, st, settings.KeyPreAdhanMin, 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	s := &fakeScheduler{}
	p := Planner{Scheduler: s, Settings: st, SleepAt: prayer.Clock{Hour: 22}}
	day := model.DayTimings{Fajr: "04:52", Sunrise: "06:10", Dhuhr: "12:20", Asr: "15:46", Maghrib: "18:31", Isha: "20:01"}
	if err := p.Plan(ctx, day, at(13, 0, 0)); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(s.calls) != 13 {
		t.Fatalf("expected 5 adhans, 5 reminders and 3 azkar, got %d", len(s.calls))
	}
	task, ok, err := p.PlanNextOnly(ctx, day, at(13, 0, 0))
	if err != nil || !ok {
		t.Fatalf("plan next: %v %v", ok, err)
	}
	if !task.FireAt.Equal(at(15, 46, 0)) {
		t.Fatalf("unexpected next task %s", task.FireAt)
	}
}
