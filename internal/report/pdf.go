package report

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/verte-zerg/salat/internal/model"
)

var timetableHeaders = []string{"Date", "Hijri", "Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

var timetableWidths = []float64{24, 44, 18, 20, 18, 18, 20, 18}

// WriteTimetablePDF writes a one-page month timetable to path. The core
// PDF fonts are Latin-only, so Arabic labels are left out.
func WriteTimetablePDF(path, title string, days []model.DayTimings) error {
	if len(days) == 0 {
		return fmt.Errorf("no days to print")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 235, 225)
	for i, h := range timetableHeaders {
		pdf.CellFormat(timetableWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, day := range days {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		cells := []string{
			day.Date.Format("02 Jan"),
			latinOnly(day.HijriText),
			day.Fajr,
			day.Sunrise,
			day.Dhuhr,
			day.Asr,
			day.Maghrib,
			day.Isha,
		}
		for j, cell := range cells {
			pdf.CellFormat(timetableWidths[j], 6, cell, "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if meta := footer(days[0]); meta != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 6, meta)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write timetable: %w", err)
	}
	return nil
}

func footer(day model.DayTimings) string {
	var parts []string
	if day.Method != "" {
		parts = append(parts, "Method: "+latinOnly(day.Method))
	}
	if day.Timezone != "" {
		parts = append(parts, "Timezone: "+day.Timezone)
	}
	return strings.Join(parts, "  ")
}

func latinOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0x7e {
			return -1
		}
		return r
	}, s)
}
