// Package styles provides shared lipgloss styles for command output.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/squadview/internal/core/activity"
	"github.com/colonyops/squadview/internal/core/roster"
)

// Semantic colors.
var (
	ColorGreen = lipgloss.Color("#9ece6a")
	ColorBlue  = lipgloss.Color("#7aa2f7")
	ColorGray  = lipgloss.Color("#565f89")
	ColorRed   = lipgloss.Color("#f7768e")
	ColorAmber = lipgloss.Color("#e0af68")
)

var (
	Heading = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	Muted   = lipgloss.NewStyle().Foreground(ColorGray)

	working = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	idle    = lipgloss.NewStyle().Foreground(ColorGray)

	completed  = lipgloss.NewStyle().Foreground(ColorGreen)
	inProgress = lipgloss.NewStyle().Foreground(ColorAmber)
	pending    = lipgloss.NewStyle().Foreground(ColorGray)
)

// StatusBadge renders a member status with its color.
func StatusBadge(status roster.Status) string {
	if status == roster.StatusWorking {
		return working.Render("working")
	}
	return idle.Render("idle")
}

// TaskBadge renders a task status with its color.
func TaskBadge(status activity.TaskStatus) string {
	switch status {
	case activity.TaskCompleted:
		return completed.Render(string(status))
	case activity.TaskInProgress:
		return inProgress.Render(string(status))
	default:
		return pending.Render(string(status))
	}
}
