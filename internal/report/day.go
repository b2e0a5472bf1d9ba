package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/qibla"
)

// RenderDay prints the six times of day and marks the next prayer at now.
func RenderDay(w io.Writer, day model.DayTimings, now time.Time) error {
	header := []string{}
	if place := placeLabel(day.City, day.Country); place != "" {
		header = append(header, place)
	}
	if day.Gregorian != "" {
		header = append(header, day.Gregorian)
	}
	if day.HijriText != "" {
		header = append(header, day.HijriText)
	}
	if len(header) > 0 {
		if _, err := fmt.Fprintln(w, strings.Join(header, "  ")); err != nil {
			return err
		}
	}

	next, hasNext := prayer.ComputeNext(day.Schedule(), prayer.At(now))
	rows := [][]string{
		timeRow("Fajr", "الفجر", day.Fajr),
		timeRow("Sunrise", "الشروق", day.Sunrise),
		timeRow("Dhuhr", "الظهر", day.Dhuhr),
		timeRow("Asr", "العصر", day.Asr),
		timeRow("Maghrib", "المغرب", day.Maghrib),
		timeRow("Isha", "العشاء", day.Isha),
	}
	if hasNext {
		for _, row := range rows {
			if row[0] == next.Prayer.Title() {
				row[3] = "next in " + next.Countdown
			}
		}
	}
	for _, line := range formatTable([]string{"Prayer", "", "Time", ""}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func timeRow(title, arabic, value string) []string {
	if strings.TrimSpace(value) == "" {
		value = "--:--"
	}
	return []string{title, arabic, value, ""}
}

func placeLabel(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	default:
		return city + country
	}
}

// RenderQibla prints the bearing and distance to the Kaaba from point.
func RenderQibla(w io.Writer, point qibla.GeoPoint, result qibla.BearingResult) error {
	rows := [][]string{
		{"Location", fmt.Sprintf("%.4f, %.4f", point.Lat, point.Lng)},
		{"Bearing", fmt.Sprintf("%.1f° %s", result.BearingDeg, qibla.Cardinal(result.BearingDeg))},
		{"Distance", fmt.Sprintf("%.0f km", result.DistanceKm)},
		{"Direction", qibla.Arrow(qibla.Relative(result.BearingDeg, 0))},
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
