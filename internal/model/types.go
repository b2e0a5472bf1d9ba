// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/qibla"
)

// Location names the city used for prayer-time lookups.
type Location struct {
	City          string
	Country       string
	CityArabic    string
	CountryArabic string
	Point         *qibla.GeoPoint
	Method        int
}

// Known reports whether the location has enough data for a lookup.
func (l Location) Known() bool {
	return (l.City != "" && l.Country != "") || l.Point != nil
}

// DayTimings is one day's prayer clock-times plus calendar metadata.
type DayTimings struct {
	Date      time.Time
	Gregorian string
	Hijri     string
	HijriText string
	Fajr      string
	Sunrise   string
	Dhuhr     string
	Asr       string
	Maghrib   string
	Isha      string
	Latitude  float64
	Longitude float64
	Timezone  string
	Method    string
	City      string
	Country   string
}

// Schedule returns the prayer-calculator view of the day.
func (d DayTimings) Schedule() prayer.Schedule {
	return prayer.Schedule{
		Fajr:    d.Fajr,
		Sunrise: d.Sunrise,
		Dhuhr:   d.Dhuhr,
		Asr:     d.Asr,
		Maghrib: d.Maghrib,
		Isha:    d.Isha,
	}
}

// Point returns the coordinates reported with the timings, if any.
func (d DayTimings) Point() (qibla.GeoPoint, bool) {
	if d.Latitude == 0 && d.Longitude == 0 {
		return qibla.GeoPoint{}, false
	}
	return qibla.GeoPoint{Lat: d.Latitude, Lng: d.Longitude}, true
}

// AlarmKind groups alarm tasks by the handler that serves them.
type AlarmKind string

// Alarm kinds.
const (
	AlarmAdhan AlarmKind = "adhan"
	AlarmAzkar AlarmKind = "azkar"
)

// AlarmTask is a persisted one-shot alarm keyed by a fixed request code.
type AlarmTask struct {
	Code    int
	Kind    AlarmKind
	FireAt  time.Time
	Exact   bool
	Token   string
	Payload map[string]string
}

// AlarmFire records a dispatched alarm.
type AlarmFire struct {
	Code    int
	Kind    AlarmKind
	Token   string
	FiredAt time.Time
	Late    time.Duration
	Err     string
}

// TallyStats are tasbeeh totals for the current calendar buckets.
type TallyStats struct {
	Today int
	Week  int
	Month int
}

// TallyDay is one day's tasbeeh total.
type TallyDay struct {
	Day   time.Time
	Count int
}
