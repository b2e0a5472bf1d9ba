// Package tui provides the Bubble Tea dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/salat/internal/azkar"
	"github.com/verte-zerg/salat/internal/model"
	"github.com/verte-zerg/salat/internal/names"
	"github.com/verte-zerg/salat/internal/prayer"
)

const (
	tabTimes = iota
	tabTasbeeh
	tabQibla
	tabAzkar
	tabNames
)

const (
	fetchTimeout = 20 * time.Second
	// fetchRetry spaces refetches after a failed load.
	fetchRetry = time.Minute
	headingStep  = 15.0
)

// DayLoader returns today's schedule.
type DayLoader interface {
	Today(ctx context.Context) (day model.DayTimings, stale bool, err error)
}

// Counter is the tasbeeh tally.
type Counter interface {
	Count(ctx context.Context) (int, error)
	Increment(ctx context.Context) (int, error)
	ResetToday(ctx context.Context) error
	Stats(ctx context.Context) (model.TallyStats, error)
}

// AzkarProgress remembers the reading position per list.
type AzkarProgress interface {
	Index(ctx context.Context, t azkar.Type, size int) (int, error)
	Next(ctx context.Context, t azkar.Type, size int) (int, error)
	Prev(ctx context.Context, t azkar.Type, size int) (int, error)
}

// Options wires the dashboard to its data.
type Options struct {
	Days     DayLoader
	Tasbeeh  Counter
	Progress AzkarProgress
	AzkarDir string
	Location model.Location
	Theme    string
	Now      func() time.Time
}

type tickMsg struct {
	gen int
	at  time.Time
}

type dayMsg struct {
	day   model.DayTimings
	stale bool
	err   error
}

// Model implements the dashboard.
type Model struct {
	opts      Options
	st        styles
	tabs      []string
	width     int
	height    int
	activeTab int

	day      model.DayTimings
	hasDay   bool
	stale    bool
	loading  bool
	loadedOn string
	retryAt  time.Time
	// gen discards ticks from chains started before the latest schedule.
	gen     int
	next    prayer.Result
	hasNext bool
	errMsg  string

	count int
	tally model.TallyStats

	heading float64

	azkarType  azkar.Type
	azkarList  []azkar.Dhikr
	azkarIndex int
	azkarView  viewport.Model

	namesTable table.Model
	search     textinput.Model
	searching  bool
	query      string
}

// NewModel constructs the dashboard.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Model{
		opts:      opts,
		st:        newStyles(opts.Theme),
		tabs:      []string{"Times", "Tasbeeh", "Qibla", "Azkar", "Names"},
		loading:   true,
		azkarType: azkar.TypeAt(opts.Now()),
	}
	m.azkarView = viewport.New(80, 10)
	m.search = textinput.New()
	m.search.Prompt = "Search: "
	m.search.Placeholder = "number, Arabic or meaning"
	m.namesTable = table.New(
		table.WithColumns(nameColumns(80)),
		table.WithRows(nameRows(names.All())),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.refreshTally()
	m.loadAzkar()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.fetchDay()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case dayMsg:
		return m, m.handleDay(msg)
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.moveTab(1)
			return m, nil
		case "shift+tab", "left", "h":
			m.moveTab(-1)
			return m, nil
		case "1", "2", "3", "4", "5":
			m.activeTab = int(msg.String()[0] - '1')
			return m, nil
		}
		return m, m.handleTabKey(msg)
	}
	return m, nil
}

func (m *Model) handleDay(msg dayMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		m.errMsg = fmt.Sprintf("Failed to load prayer times: %v", msg.err)
		log.Warn().Err(msg.err).Msg("dashboard fetch failed")
		m.retryAt = m.opts.Now().Add(fetchRetry)
		if m.hasDay {
			return nil
		}
		// Without a schedule no tick chain runs yet; start one to retry.
		m.gen++
		return tick(m.gen)
	}
	m.errMsg = ""
	m.retryAt = time.Time{}
	m.day = msg.day
	m.hasDay = true
	m.stale = msg.stale
	now := m.opts.Now()
	m.loadedOn = now.Format("2006-01-02")
	m.gen++
	m.recompute(now)
	return tick(m.gen)
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.gen {
		return nil
	}
	now := m.opts.Now()
	m.recompute(now)
	if now.Format("2006-01-02") != m.loadedOn && !m.loading && !now.Before(m.retryAt) {
		m.loading = true
		return tea.Batch(tick(m.gen), m.fetchDay())
	}
	return tick(m.gen)
}

func (m *Model) recompute(now time.Time) {
	if !m.hasDay {
		return
	}
	m.next, m.hasNext = prayer.ComputeNext(m.day.Schedule(), prayer.At(now))
}

func (m *Model) fetchDay() tea.Cmd {
	days := m.opts.Days
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		day, stale, err := days.Today(ctx)
		return dayMsg{day: day, stale: stale, err: err}
	}
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg{gen: gen, at: t} })
}

func (m *Model) handleTabKey(msg tea.KeyMsg) tea.Cmd {
	ctx := context.Background()
	key := msg.String()
	switch m.activeTab {
	case tabTimes:
		if key == "r" && !m.loading {
			m.loading = true
			return m.fetchDay()
		}
	case tabTasbeeh:
		switch key {
		case " ", "enter":
			count, err := m.opts.Tasbeeh.Increment(ctx)
			if err != nil {
				m.errMsg = fmt.Sprintf("Failed to save tasbeeh: %v", err)
				return nil
			}
			m.count = count
			m.refreshTally()
		case "r":
			if err := m.opts.Tasbeeh.ResetToday(ctx); err != nil {
				m.errMsg = fmt.Sprintf("Failed to reset tasbeeh: %v", err)
				return nil
			}
			m.refreshTally()
		}
	case tabQibla:
		switch key {
		case "]":
			m.heading = normalizeHeading(m.heading + headingStep)
		case "[":
			m.heading = normalizeHeading(m.heading - headingStep)
		case "0":
			m.heading = 0
		}
	case tabAzkar:
		if m.handleAzkarKey(ctx, key) {
			return nil
		}
		var cmd tea.Cmd
		m.azkarView, cmd = m.azkarView.Update(msg)
		return cmd
	case tabNames:
		switch key {
		case "/":
			m.searching = true
			m.search.SetValue(m.query)
			return m.search.Focus()
		case "esc":
			m.applySearch("")
			return nil
		}
		var cmd tea.Cmd
		m.namesTable, cmd = m.namesTable.Update(msg)
		return cmd
	}
	return nil
}

// handleAzkarKey reports whether key switched or moved the list; other keys
// scroll the text.
func (m *Model) handleAzkarKey(ctx context.Context, key string) bool {
	size := len(m.azkarList)
	var err error
	switch key {
	case "m", "e", "s":
		t, perr := azkar.ParseType(key)
		if perr != nil {
			return true
		}
		m.azkarType = t
		m.loadAzkar()
		return true
	case "n", "down", "j":
		m.azkarIndex, err = m.opts.Progress.Next(ctx, m.azkarType, size)
	case "p", "up", "k":
		m.azkarIndex, err = m.opts.Progress.Prev(ctx, m.azkarType, size)
	default:
		return false
	}
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to save azkar progress: %v", err)
	}
	m.refreshAzkarView()
	return true
}

// refreshAzkarView wraps the current dhikr into the scrollable pane.
func (m *Model) refreshAzkarView() {
	if len(m.azkarList) == 0 {
		m.azkarView.SetContent("This list is empty.")
		return
	}
	width := m.azkarView.Width
	if width < 20 {
		width = 20
	}
	m.azkarView.SetContent(strings.Join(wrapText(m.azkarList[m.azkarIndex].Text, width), "\n"))
	m.azkarView.GotoTop()
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.applySearch(m.search.Value())
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) applySearch(q string) {
	m.query = strings.TrimSpace(q)
	m.namesTable.SetRows(nameRows(names.Search(m.query)))
	m.namesTable.GotoTop()
}

func (m *Model) refreshTally() {
	ctx := context.Background()
	count, err := m.opts.Tasbeeh.Count(ctx)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load tasbeeh: %v", err)
		return
	}
	tally, err := m.opts.Tasbeeh.Stats(ctx)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load tasbeeh: %v", err)
		return
	}
	m.count = count
	m.tally = tally
}

func (m *Model) loadAzkar() {
	list, err := azkar.List(m.azkarType, m.opts.AzkarDir)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load custom azkar: %v", err)
		list = azkar.Builtin(m.azkarType)
	}
	m.azkarList = list
	idx, err := m.opts.Progress.Index(context.Background(), m.azkarType, len(list))
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load azkar progress: %v", err)
	}
	m.azkarIndex = idx
	m.refreshAzkarView()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.azkarView.Width = maxInt(20, m.width-4)
	m.azkarView.Height = maxInt(3, bodyHeight-5)
	m.refreshAzkarView()
	m.namesTable.SetColumns(nameColumns(m.width))
	m.namesTable.SetWidth(m.width)
	m.namesTable.SetHeight(maxInt(3, bodyHeight-2))
	m.search.Width = maxInt(10, m.width-len(m.search.Prompt)-2)
}

func normalizeHeading(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

func nameColumns(width int) []table.Column {
	meaning := maxInt(20, width-4-18-6)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 18},
		{Title: "Meaning", Width: meaning},
	}
}

func nameRows(list []names.Name) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, n := range list {
		rows = append(rows, table.Row{fmt.Sprintf("%d", n.Number), n.Arabic, n.Meaning})
	}
	return rows
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
