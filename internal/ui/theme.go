package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared theme for the CLI and the TUI board.
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconRoutine  = "📋"
	IconSparkle  = "✨"
	IconDone     = "✅"
	IconUndo     = "↩️"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconStreak   = "🔥"
	IconPrestige = "🌟"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconReset    = "🧹"
	IconLock     = "🔒"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// ProgressBar renders a fixed-width bar like ███░░░░░░░ 30%.
func ProgressBar(completed, total, width int) string {
	if width <= 0 {
		width = 10
	}
	pct := 0
	if total > 0 {
		pct = completed * 100 / total
	}
	filled := 0
	if total > 0 {
		filled = completed * width / total
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d%%", Good.Render(bar), pct)
}

// SessionStatusText colors a session status string.
func SessionStatusText(status string) string {
	switch status {
	case "completed":
		return Good.Render("completed")
	case "in_progress":
		return Warn.Render("in progress")
	case "not_started":
		return Muted.Render("not started")
	default:
		return Muted.Render(status)
	}
}
