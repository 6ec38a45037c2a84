package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/tui/theme"
)

const Logo = `
 ▄▄▄▄▄▄▄▄  ▄▄▄▄  ▄▄    ▄▄
 ▀▀▀██▀▀▀  ▀██▀  ▀██▄▄██▀
    ██      ██     ▀██▀
    ██      ██    ▄██▄
    ██     ▄██▄  ▄█▀▀█▄
    ▀▀     ▀▀▀▀  ▀▀  ▀▀`

func (m *Model) LogoView() string {
	return m.theme.TextAccent().Render(Logo)
}

func (m *Model) handleSplashKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "l", "enter":
		return m, m.applyEffects(m.sup.GoForward(session.ScreenLogin))
	case "r":
		return m, m.applyEffects(m.sup.GoForward(session.ScreenRegister))
	}
	return m, nil
}

func (m *Model) SplashView() string {
	title := lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).
		Render("Tickets, todos and time, in your terminal")
	hint := m.theme.TextDim().
		Render("l sign in  ·  r create account  ·  q quit")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.LogoView(),
		"",
		title,
		"",
		hint,
	)
}
