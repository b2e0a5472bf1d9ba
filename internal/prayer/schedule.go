// Package prayer computes the next prayer and its countdown from a daily schedule.
package prayer

import (
	"fmt"
	"strconv"
	"strings"
)

// Prayer identifies one of the five daily prayers.
type Prayer int

// Prayers in their fixed daily order. The order doubles as the tie-break.
const (
	Fajr Prayer = iota
	Dhuhr
	Asr
	Maghrib
	Isha
)

// All lists the candidate prayers in fixed order.
var All = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

var prayerNames = [...]string{"fajr", "dhuhr", "asr", "maghrib", "isha"}

var prayerTitles = [...]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

var prayerArabic = [...]string{"الفجر", "الظهر", "العصر", "المغرب", "العشاء"}

// String returns the lower-case label.
func (p Prayer) String() string {
	if p < Fajr || p > Isha {
		return fmt.Sprintf("prayer(%d)", int(p))
	}
	return prayerNames[p]
}

// Title returns the capitalized English label.
func (p Prayer) Title() string {
	if p < Fajr || p > Isha {
		return p.String()
	}
	return prayerTitles[p]
}

// Arabic returns the Arabic label.
func (p Prayer) Arabic() string {
	if p < Fajr || p > Isha {
		return p.String()
	}
	return prayerArabic[p]
}

// ParsePrayer maps a label back to a Prayer.
func ParsePrayer(label string) (Prayer, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, name := range prayerNames {
		if name == label {
			return Prayer(i), true
		}
	}
	return 0, false
}

// Schedule holds one calendar day's clock strings in 24-hour local time.
// Sunrise is informational and never a next-prayer candidate.
type Schedule struct {
	Fajr    string
	Sunrise string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

// Time returns the raw clock string for p.
func (s Schedule) Time(p Prayer) string {
	switch p {
	case Fajr:
		return s.Fajr
	case Dhuhr:
		return s.Dhuhr
	case Asr:
		return s.Asr
	case Maghrib:
		return s.Maghrib
	case Isha:
		return s.Isha
	default:
		return ""
	}
}

// Empty reports whether no prayer entry parses.
func (s Schedule) Empty() bool {
	for _, p := range All {
		if _, ok := ParseClock(s.Time(p)); ok {
			return false
		}
	}
	return true
}

// Clock is an hour-minute pair.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock reads the first five characters of s as HH:MM.
// Entries outside [00:00, 23:59] are rejected.
func ParseClock(s string) (Clock, bool) {
	if runes := []rune(s); len(runes) > 5 {
		s = string(runes[:5])
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute}, true
}
