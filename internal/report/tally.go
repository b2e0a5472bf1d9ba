package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/salat/internal/model"
)

const tallyAverageWindow = 7

// RenderTally prints the bucket totals and, when history is present, a
// sparkline of daily counts and its seven-day average sized to width.
func RenderTally(w io.Writer, stats model.TallyStats, history []model.TallyDay, width int) error {
	rows := [][]string{
		{"Today", strconv.Itoa(stats.Today)},
		{"This week", strconv.Itoa(stats.Week)},
		{"This month", strconv.Itoa(stats.Month)},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(history) == 0 {
		return nil
	}

	values := make([]float64, len(history))
	total, best := 0, 0
	for i, day := range history {
		values[i] = float64(day.Count)
		total += day.Count
		if day.Count > best {
			best = day.Count
		}
	}
	const label = "avg    "
	if width <= 0 {
		width = TerminalWidth()
	}
	plotWidth := width - len(label)
	if plotWidth < 10 {
		plotWidth = 10
	}
	first := history[0].Day.Format("2006-01-02")
	last := history[len(history)-1].Day.Format("2006-01-02")
	lines := []string{
		"",
		fmt.Sprintf("History %s .. %s  (total %d, best %d)", first, last, total, best),
		"daily  " + Sparkline(fitWidth(values, plotWidth)),
		label + Sparkline(fitWidth(MovingAverage(values, tallyAverageWindow), plotWidth)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
