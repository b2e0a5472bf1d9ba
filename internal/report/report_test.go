package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/qibla"
)

var testDay = model.DayTimings{
	Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
	Gregorian: "01-03-2026",
	HijriText: "12 Ramadan 1447 AH",
	Fajr:      "04:52",
	Sunrise:   "06:10",
	Dhuhr:     "12:20",
	Asr:       "15:46",
	Maghrib:   "18:31",
	Isha:      "20:01",
	City:      "Makkah",
	Country:   "Saudi Arabia",
	Method:    "Umm Al-Qura University, Makkah",
	Timezone:  "Asia/Riyadh",
}

func TestFormatTableAlignsWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "N"}, [][]string{{"الرحمن", "1"}, {"ab", "99"}}, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Name     N" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[2] != "ab      99" {
		t.Fatalf("unexpected row %q", lines[2])
	}
}

func TestRenderDayMarksNext(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	if err := RenderDay(&buf, testDay, now); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Makkah, Saudi Arabia  01-03-2026  12 Ramadan 1447 AH\n") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Dhuhr") {
			if !strings.HasSuffix(line, "next in 00:20:00") {
				t.Fatalf("dhuhr should be marked next: %q", line)
			}
			return
		}
	}
	t.Fatalf("missing dhuhr row:\n%s", out)
}

func TestRenderQibla(t *testing.T) {
	var buf bytes.Buffer
	point := qibla.GeoPoint{Lat: 51.5074, Lng: -0.1278}
	if err := RenderQibla(&buf, point, qibla.BearingAndDistance(point)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "ESE") || !strings.Contains(buf.String(), "km") {
		t.Fatalf("unexpected qibla output:\n%s", buf.String())
	}
}

func TestSparklineAndAverage(t *testing.T) {
	if got := Sparkline([]float64{0, 4, 8}); got != " ▅█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	avg := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if avg[i] != want[i] {
			t.Fatalf("unexpected average %v", avg)
		}
	}
	if got := fitWidth([]float64{1, 3, 5, 7}, 2); got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected fit %v", got)
	}
}

func TestRenderTally(t *testing.T) {
	var buf bytes.Buffer
	history := []model.TallyDay{
		{Day: time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), Count: 33},
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local), Count: 99},
	}
	if err := RenderTally(&buf, model.TallyStats{Today: 99, Week: 132, Month: 132}, history, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "This week   132") {
		t.Fatalf("missing totals:\n%s", out)
	}
	if !strings.Contains(out, "total 132, best 99") {
		t.Fatalf("missing history summary:\n%s", out)
	}
}

func TestWriteTimetablePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "march.pdf")
	if err := WriteTimetablePDF(path, "Makkah - March 2026", []model.DayTimings{testDay, testDay}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a PDF")
	}
	if err := WriteTimetablePDF(path, "empty", nil); err == nil {
		t.Fatalf("expected error for empty month")
	}
}

func TestRenderAlarmsSortsByFireTime(t *testing.T) {
	var buf bytes.Buffer
	tasks := []model.AlarmTask{
		{Code: 4003, Kind: model.AlarmAzkar, FireAt: time.Date(2026, 3, 1, 22, 0, 0, 0, time.Local),
			Payload: map[string]string{"azkar_type": "sleep", "title": "t", "body": "b"}},
		{Code: 2001, Kind: model.AlarmAdhan, FireAt: time.Date(2026, 3, 1, 4, 52, 0, 0, time.Local), Exact: true,
			Payload: map[string]string{"prayer_name": "fajr", "prayer_time": "04:52"}},
	}
	if err := RenderAlarms(&buf, tasks); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "2001  adhan  2026-03-01 04:52:00  exact") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "azkar_type=sleep") {
		t.Fatalf("title and body should be left out: %q", lines[2])
	}

	buf.Reset()
	if err := RenderAlarms(&buf, nil); err != nil || !strings.Contains(buf.String(), "No alarms") {
		t.Fatalf("empty list not reported: %q, %v", buf.String(), err)
	}
}

func TestRenderFires(t *testing.T) {
	var buf bytes.Buffer
	fires := []model.AlarmFire{
		{Code: 2003, Kind: model.AlarmAdhan, FiredAt: time.Date(2026, 3, 1, 15, 46, 1, 0, time.Local), Late: 1200 * time.Millisecond},
		{Code: 4002, Kind: model.AlarmAzkar, FiredAt: time.Date(2026, 3, 1, 15, 52, 0, 0, time.Local), Err: "sink down"},
	}
	if err := RenderFires(&buf, fires); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1s  ok") || !strings.Contains(out, "sink down") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
