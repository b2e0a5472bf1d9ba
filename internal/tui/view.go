package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/salat/internal/prayer"
	"github.com/verte-zerg/salat/internal/qibla"
	"github.com/verte-zerg/salat/internal/timings"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(m.st.activeTab.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, m.st.activeTab.Render(tab))
		} else {
			parts = append(parts, m.st.inactiveTab.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return m.renderTabs() + "\n" + m.st.header.Render(truncateLine(m.statusLine(), m.width))
}

func (m *Model) statusLine() string {
	segments := []string{}
	switch {
	case m.hasDay && m.day.City != "":
		segments = append(segments, m.day.City+", "+m.day.Country)
	default:
		segments = append(segments, timings.Status(m.opts.Location))
	}
	if m.hasDay {
		if m.day.Gregorian != "" {
			segments = append(segments, m.day.Gregorian)
		}
		if m.day.HijriText != "" {
			segments = append(segments, m.day.HijriText)
		}
	}
	if m.stale {
		segments = append(segments, "offline (cached)")
	}
	if m.loading {
		segments = append(segments, "loading...")
	}
	return strings.Join(segments, "  ·  ")
}

func (m *Model) renderHelp() string {
	var help string
	switch m.activeTab {
	case tabTimes:
		help = "Refresh: r"
	case tabTasbeeh:
		help = "Count: space/enter  Reset today: r"
	case tabQibla:
		help = "Heading: [ / ]  Reset: 0"
	case tabAzkar:
		help = "List: m/e/s  Next: n  Prev: p  Scroll: f/b"
	case tabNames:
		help = "Scroll: up/down  Search: /  Clear: esc"
		if m.searching {
			help = "enter: apply  esc: cancel"
		}
	}
	return m.st.header.Render("Tabs: tab/1-5  " + help + "  Quit: q")
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + m.st.err.Render(truncateLine(m.errMsg, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabTimes:
		return m.renderTimes()
	case tabTasbeeh:
		return m.renderTasbeeh()
	case tabQibla:
		return m.renderQibla()
	case tabAzkar:
		return m.renderAzkar()
	case tabNames:
		return m.renderNames()
	}
	return ""
}

func (m *Model) renderTimes() string {
	if !m.hasDay {
		if m.loading {
			return "Loading prayer times..."
		}
		return "Prayer times unavailable. Press r to retry."
	}
	rows := []struct {
		title, arabic, value string
		p                    prayer.Prayer
		isPrayer             bool
	}{
		{"Fajr", prayer.Fajr.Arabic(), m.day.Fajr, prayer.Fajr, true},
		{"Sunrise", "الشروق", m.day.Sunrise, 0, false},
		{"Dhuhr", prayer.Dhuhr.Arabic(), m.day.Dhuhr, prayer.Dhuhr, true},
		{"Asr", prayer.Asr.Arabic(), m.day.Asr, prayer.Asr, true},
		{"Maghrib", prayer.Maghrib.Arabic(), m.day.Maghrib, prayer.Maghrib, true},
		{"Isha", prayer.Isha.Arabic(), m.day.Isha, prayer.Isha, true},
	}
	lines := make([]string, 0, len(rows)+4)
	for _, row := range rows {
		value := row.value
		if strings.TrimSpace(value) == "" {
			value = "--:--"
		}
		line := fmt.Sprintf("%-8s %-8s %s", row.title, row.arabic, value)
		if m.hasNext && row.isPrayer && row.p == m.next.Prayer {
			line = m.st.highlight.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	table := strings.Join(lines, "\n")
	if !m.hasNext {
		return table
	}
	card := metricCard(m.st, "Next: "+m.next.Prayer.Title()+" "+m.next.Prayer.Arabic(), m.next.Countdown)
	if m.width < 60 {
		return table + "\n\n" + card
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, table, "    ", card)
}

func (m *Model) renderTasbeeh() string {
	big := metricCard(m.st, "سبحان الله", fmt.Sprintf("%d", m.count))
	cards := []string{
		metricCard(m.st, "Today", fmt.Sprintf("%d", m.tally.Today)),
		metricCard(m.st, "Week", fmt.Sprintf("%d", m.tally.Week)),
		metricCard(m.st, "Month", fmt.Sprintf("%d", m.tally.Month)),
	}
	if m.width < 60 {
		return strings.Join(append([]string{big}, cards...), "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, big, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (m *Model) qiblaPoint() (qibla.GeoPoint, bool) {
	if m.opts.Location.Point != nil {
		return *m.opts.Location.Point, true
	}
	if m.hasDay {
		return m.day.Point()
	}
	return qibla.GeoPoint{}, false
}

func (m *Model) renderQibla() string {
	point, ok := m.qiblaPoint()
	if !ok {
		return "Location coordinates unknown; set latitude and longitude in the config."
	}
	res := qibla.BearingAndDistance(point)
	relative := qibla.Relative(res.BearingDeg, m.heading)
	arrow := m.st.highlight.Render(qibla.Arrow(relative))
	lines := []string{
		fmt.Sprintf("Bearing   %.1f° %s", res.BearingDeg, qibla.Cardinal(res.BearingDeg)),
		fmt.Sprintf("Distance  %.0f km", res.DistanceKm),
		fmt.Sprintf("Heading   %.0f°", m.heading),
		fmt.Sprintf("Turn      %.0f°  %s", relative, arrow),
		m.st.muted.Render(fmt.Sprintf("From %.4f, %.4f", point.Lat, point.Lng)),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAzkar() string {
	title := m.st.highlight.Render(m.azkarType.Arabic()) + "  " + m.st.muted.Render(m.azkarType.Title())
	if len(m.azkarList) == 0 {
		return title + "\n\nThis list is empty."
	}
	d := m.azkarList[m.azkarIndex]
	lines := []string{
		title,
		m.st.muted.Render(fmt.Sprintf("%d / %d", m.azkarIndex+1, len(m.azkarList))),
		"",
		m.azkarView.View(),
		"",
		m.st.cardValue.Render(fmt.Sprintf("× %d", d.Count)),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderNames() string {
	var top string
	switch {
	case m.searching:
		top = m.search.View()
	case m.query != "":
		top = m.st.muted.Render(fmt.Sprintf("Filter: %s (%d)", m.query, len(m.namesTable.Rows())))
	default:
		top = m.st.muted.Render("أسماء الله الحسنى")
	}
	return top + "\n" + m.namesTable.View()
}

func metricCard(st styles, label, value string) string {
	content := fmt.Sprintf("%s\n%s", st.cardTitle.Render(label), st.cardValue.Render(value))
	return st.card.Render(content)
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
