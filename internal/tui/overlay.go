package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/mboehm/tix/internal/tui/theme"
)

// ExpiredView is the blocking notice shown after a forced sign-out. It stays
// up until the user acknowledges it.
func (m *Model) ExpiredView() string {
	title := m.theme.TextDanger().Bold(true).Render("Session ended")
	body := lipgloss.NewStyle().Foreground(theme.ColorWhite).
		Render("Your session is no longer valid. Sign in again to continue.")
	hint := m.theme.TextDim().Render("enter back to sign in")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorDanger).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", hint))
}

// LockView covers the screen while the local-auth gate decides.
func (m *Model) LockView() string {
	title := lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Render("Locked")

	status := m.theme.TextDim().Render("Waiting for local authentication...")
	hint := ""
	if !m.sup.Lock().Evaluating {
		status = m.theme.TextDanger().Render("Authentication failed.")
		hint = "r try again"
	}

	rows := []string{title, "", status}
	if hint != "" {
		rows = append(rows, "", m.theme.TextDim().Render(hint))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorAccent).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}
