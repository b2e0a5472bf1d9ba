package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	accent lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	border lipgloss.Color
}

var palettes = map[string]palette{
	"emerald":  {accent: "#2E9E6B", text: "#F0F0F0", muted: "#8C8C8C", border: "#3C5A4A"},
	"midnight": {accent: "#6C8CD5", text: "#E6E9F0", muted: "#7A8194", border: "#394052"},
	"sand":     {accent: "#C89A3A", text: "#F2EBDD", muted: "#9A8F7A", border: "#5A4E38"},
	"rose":     {accent: "#D46A8C", text: "#F5E9ED", muted: "#98808A", border: "#5A3C47"},
	"ocean":    {accent: "#2F9FB8", text: "#E8F4F7", muted: "#7E9499", border: "#34525A"},
}

type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	header      lipgloss.Style
	err         lipgloss.Style
	card        lipgloss.Style
	cardTitle   lipgloss.Style
	cardValue   lipgloss.Style
	highlight   lipgloss.Style
	muted       lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["emerald"]
	}
	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.accent),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.border),
		header: lipgloss.NewStyle().Foreground(p.muted),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.border),
		cardTitle: lipgloss.NewStyle().Foreground(p.muted),
		cardValue: lipgloss.NewStyle().Foreground(p.text).Bold(true),
		highlight: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
	}
}
