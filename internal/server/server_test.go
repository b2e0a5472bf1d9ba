package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verte-zerg/salat/internal/model"
)

type fakeDays struct {
	day model.DayTimings
	err error
}

func (f fakeDays) Today(context.Context) (model.DayTimings, bool, error) {
	return f.day, false, f.err
}

type fakeTally struct{}

func (fakeTally) Count(context.Context) (int, error) { return 33, nil }

func (fakeTally) Stats(context.Context) (model.TallyStats, error) {
	return model.TallyStats{Today: 33, Week: 100, Month: 400}, nil
}

var testDay = model.DayTimings{
	Gregorian: "01-03-2026",
	Fajr:      "04:52",
	Sunrise:   "06:10",
	Dhuhr:     "12:20",
	Asr:       "15:46",
	Maghrib:   "18:31",
	Isha:      "20:01",
	City:      "Makkah",
	Country:   "Saudi Arabia",
	Latitude:  21.3891,
	Longitude: 39.8579,
}

func newTestServer(days DayProvider) *Server {
	now := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local) }
	return New(days, fakeTally{}, now)
}

func get(t *testing.T, s *Server, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(w, req)
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: invalid JSON %q: %v", path, w.Body.String(), err)
	}
	return w.Code, body
}

func TestHealthAndDay(t *testing.T) {
	s := newTestServer(fakeDays{day: testDay})
	if code, body := get(t, s, "/api/health"); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health %d %v", code, body)
	}
	code, body := get(t, s, "/api/day")
	if code != http.StatusOK || body["isha"] != "20:01" || body["city"] != "Makkah" {
		t.Fatalf("unexpected day %d %v", code, body)
	}
}

func TestNext(t *testing.T) {
	s := newTestServer(fakeDays{day: testDay})
	code, body := get(t, s, "/api/next")
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if body["prayer"] != "dhuhr" || body["countdown"] != "00:20:00" || body["diff_minutes"] != float64(20) {
		t.Fatalf("unexpected next %v", body)
	}

	s = newTestServer(fakeDays{day: model.DayTimings{Fajr: "bad"}})
	if code, _ := get(t, s, "/api/next"); code != http.StatusNotFound {
		t.Fatalf("expected 404 without parseable times, got %d", code)
	}
}

func TestQibla(t *testing.T) {
	s := newTestServer(fakeDays{day: testDay})
	code, body := get(t, s, "/api/qibla?lat=51.5074&lng=-0.1278")
	if code != http.StatusOK || body["cardinal"] != "ESE" {
		t.Fatalf("unexpected qibla %d %v", code, body)
	}
	if code, _ := get(t, s, "/api/qibla?lat=95&lng=0"); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad latitude, got %d", code)
	}
	if code, body := get(t, s, "/api/qibla"); code != http.StatusOK || body["latitude"] != 21.3891 {
		t.Fatalf("expected the day's coordinates, got %d %v", code, body)
	}
}

func TestTasbeehAndUnavailableDay(t *testing.T) {
	s := newTestServer(fakeDays{err: errors.New("offline")})
	code, body := get(t, s, "/api/tasbeeh")
	if code != http.StatusOK || body["count"] != float64(33) || body["month"] != float64(400) {
		t.Fatalf("unexpected tasbeeh %d %v", code, body)
	}
	if code, body := get(t, s, "/api/day"); code != http.StatusServiceUnavailable || body["error"] == nil {
		t.Fatalf("expected 503, got %d %v", code, body)
	}
}

func TestCORSAllowsDisplays(t *testing.T) {
	s := newTestServer(fakeDays{day: testDay})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/next", nil)
	req.Header.Set("Origin", "http://display.local")
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://display.local" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
