package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/salat/internal/model"
)

const fireTimeLayout = "2006-01-02 15:04:05"

// RenderAlarms prints the registered alarms ordered by fire time.
func RenderAlarms(w io.Writer, tasks []model.AlarmTask) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No alarms registered.")
		return err
	}
	sorted := append([]model.AlarmTask(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FireAt.Before(sorted[j].FireAt) })

	rows := make([][]string, 0, len(sorted))
	for _, task := range sorted {
		mode := "inexact"
		if task.Exact {
			mode = "exact"
		}
		rows = append(rows, []string{
			strconv.Itoa(task.Code),
			string(task.Kind),
			task.FireAt.Format(fireTimeLayout),
			mode,
			payloadSummary(task.Payload),
		})
	}
	return writeLines(w, formatTable([]string{"Code", "Kind", "Fires at", "Mode", "Payload"}, rows, map[int]bool{0: true}))
}

// RenderFires prints dispatch records as given.
func RenderFires(w io.Writer, fires []model.AlarmFire) error {
	if len(fires) == 0 {
		_, err := fmt.Fprintln(w, "No alarm has fired yet.")
		return err
	}
	rows := make([][]string, 0, len(fires))
	for _, fire := range fires {
		status := "ok"
		if fire.Err != "" {
			status = fire.Err
		}
		rows = append(rows, []string{
			strconv.Itoa(fire.Code),
			string(fire.Kind),
			fire.FiredAt.Format(fireTimeLayout),
			fire.Late.Round(time.Second).String(),
			status,
		})
	}
	return writeLines(w, formatTable([]string{"Code", "Kind", "Fired at", "Late", "Result"}, rows, map[int]bool{0: true, 3: true}))
}

// RenderSettings prints key, value and type columns.
func RenderSettings(w io.Writer, rows [][]string) error {
	return writeLines(w, formatTable([]string{"Key", "Value", "Type"}, rows, nil))
}

func payloadSummary(payload map[string]string) string {
	if len(payload) == 0 {
		return ""
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if k == "title" || k == "body" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+payload[k])
	}
	return strings.Join(parts, " ")
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
