package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mboehm/tix/internal/qr"
	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/tui/theme"
)

type MainState struct {
	Profile store.Profile
	Healthy *bool // nil until the first health probe answers

	// QR is non-nil while the approval flow is presented.
	QR      *qr.Orchestrator
	QRInput string
}

func (m *Model) handleMainKey(key string) (tea.Model, tea.Cmd) {
	st := &m.state.main

	if st.QR != nil {
		return m.handleQRKey(key)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "l":
		return m, m.applyEffects(m.sup.Logout())
	case "s":
		st.QR = qr.NewOrchestrator()
		st.QRInput = ""
		return m, nil
	case "h":
		st.Healthy = nil
		return m, healthCmd(m.deps)
	case "b":
		m.prefs.BiometricLock = !m.prefs.BiometricLock
		return m, savePrefsCmd(m.deps, m.prefs)
	}
	return m, nil
}

func (m *Model) handleQRKey(key string) (tea.Model, tea.Cmd) {
	st := &m.state.main

	switch st.QR.Phase() {
	case qr.PhaseScanning:
		switch key {
		case "esc":
			st.QR = nil
			st.QRInput = ""
			return m, nil
		case "enter":
			id, fire := st.QR.Scan(st.QRInput)
			if fire {
				return m, approveQRCmd(m.deps, id)
			}
			return m, nil
		}
		st.QRInput, _ = editField(st.QRInput, key)

	case qr.PhaseProcessing:
		// The in-flight approval cannot be cancelled; ignore input.

	case qr.PhaseSuccess:
		switch key {
		case "esc", "enter", " ", "space":
			st.QR = nil
			st.QRInput = ""
		}

	case qr.PhaseFailure:
		switch key {
		case "r":
			st.QR.Retry()
			st.QRInput = ""
		case "esc":
			st.QR = nil
			st.QRInput = ""
		}
	}
	return m, nil
}

func (m *Model) MainView() string {
	st := m.state.main

	if st.QR != nil {
		return m.QRView()
	}

	title := lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Render("tix")

	who := m.theme.TextDim().Render("loading profile...")
	if st.Profile != (store.Profile{}) {
		who = fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(theme.ColorWhite).Render(st.Profile.Name),
			m.theme.TextDim().Render("<"+st.Profile.Email+">"),
		)
	}

	rows := []string{
		m.LogoView(),
		"",
		title,
		"",
		who,
		m.healthLine(),
		m.lockPrefLine(),
		"",
		m.theme.TextDim().Render("s approve browser login  ·  h recheck server  ·  b toggle lock  ·  l sign out  ·  q quit"),
	}

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) healthLine() string {
	switch {
	case m.state.main.Healthy == nil:
		return m.theme.TextDim().Render("server: checking...")
	case *m.state.main.Healthy:
		return lipgloss.NewStyle().Foreground(theme.ColorOK).Render("server: reachable")
	}
	return m.theme.TextDanger().Render("server: unreachable")
}

func (m *Model) lockPrefLine() string {
	if !m.prefs.BiometricLock {
		return m.theme.TextDim().Render("lock on background: off")
	}
	if m.deps.Gate == nil || !m.deps.Gate.Available() {
		return lipgloss.NewStyle().Foreground(theme.ColorWarn).Render("lock on background: on (no local auth available)")
	}
	return lipgloss.NewStyle().Foreground(theme.ColorOK).Render("lock on background: on")
}

func (m *Model) QRView() string {
	st := m.state.main
	title := lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Render("Approve a browser login")

	var body, hint string
	switch st.QR.Phase() {
	case qr.PhaseScanning:
		body = lipgloss.JoinVertical(
			lipgloss.Center,
			m.theme.TextDim().Render("Paste the code from the browser's QR page."),
			"",
			m.fieldView("Login code", st.QRInput, true, false),
		)
		hint = "enter approve  ·  esc cancel"

	case qr.PhaseProcessing:
		body = lipgloss.NewStyle().Foreground(theme.ColorWarn).Render("Approving...")
		hint = ""

	case qr.PhaseSuccess:
		body = lipgloss.NewStyle().Foreground(theme.ColorOK).Render("Login approved. Finish signing in from the browser.")
		hint = "enter done"

	case qr.PhaseFailure:
		body = m.theme.TextDanger().Render(qr.Describe(st.QR.Failure()))
		hint = "r try again  ·  esc cancel"
	}

	rows := []string{title, "", body}
	if hint != "" {
		rows = append(rows, "", m.theme.TextDim().Render(hint))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
