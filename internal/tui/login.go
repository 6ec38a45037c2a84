package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mboehm/tix/internal/client/api"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/tui/theme"
)

type LoginState struct {
	Email    string
	Password string
	Focus    int // 0 email, 1 password
	Busy     bool
	Err      string
	Flash    string // e.g. set after a successful registration
}

func (m *Model) handleLoginKey(key string) (tea.Model, tea.Cmd) {
	st := &m.state.login
	if st.Busy {
		return m, nil
	}

	switch key {
	case "esc":
		return m, m.applyEffects(m.sup.GoBack(session.ScreenSplash))
	case "tab", "down":
		st.Focus = (st.Focus + 1) % 2
		return m, nil
	case "shift+tab", "up":
		st.Focus = (st.Focus + 1) % 2
		return m, nil
	case "enter":
		if st.Focus == 0 {
			st.Focus = 1
			return m, nil
		}
		if st.Email == "" || st.Password == "" {
			st.Err = "Enter your email and password."
			return m, nil
		}
		st.Busy = true
		st.Err = ""
		st.Flash = ""
		return m, loginCmd(m.deps, st.Email, st.Password)
	}

	if st.Focus == 0 {
		st.Email, _ = editField(st.Email, key)
	} else {
		st.Password, _ = editField(st.Password, key)
	}
	return m, nil
}

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	st := &m.state.login
	st.Busy = false

	if msg.Err != nil {
		st.Err = loginErrorMessage(msg.Err)
		return m, nil
	}

	m.state.login = LoginState{}
	m.state.main = MainState{}
	if msg.Result.User != nil {
		m.state.main.Profile = *msg.Result.User
	}
	return m, tea.Batch(
		m.applyEffects(m.sup.GoForward(session.ScreenMain)),
		m.enterMainCmds(),
	)
}

// loginErrorMessage keeps credential failures local to this screen; nothing
// here escalates to the session supervisor.
func loginErrorMessage(err error) string {
	var apiErr *api.APIError
	var netErr *api.NetworkError

	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		return "Wrong email or password."
	case errors.Is(err, api.ErrNoServer):
		return "No server is configured. Set TIX_TENANT or TIX_DOMAIN first."
	case errors.As(err, &netErr):
		return "Couldn't reach the server. Check your connection."
	case errors.As(err, &apiErr):
		return "The server rejected the sign-in: " + apiErr.Message
	}
	return "Sign-in failed: " + err.Error()
}

func (m *Model) LoginView() string {
	st := m.state.login

	title := lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Render("Sign in")

	rows := []string{
		m.LogoView(),
		"",
		title,
		"",
		m.fieldView("Email", st.Email, st.Focus == 0, false),
		m.fieldView("Password", st.Password, st.Focus == 1, true),
	}

	switch {
	case st.Busy:
		rows = append(rows, "", m.theme.TextDim().Render("Signing in..."))
	case st.Err != "":
		rows = append(rows, "", m.theme.TextDanger().Render(st.Err))
	case st.Flash != "":
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.ColorOK).Render(st.Flash))
	}

	rows = append(rows, "", m.theme.TextDim().Render("enter submit  ·  tab next field  ·  esc back"))

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) fieldView(label, value string, focused, secret bool) string {
	shown := value
	if secret {
		shown = maskField(value)
	}

	labelStyle := m.theme.TextDim()
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorDim).
		Padding(0, 1).
		Width(36)
	if focused {
		labelStyle = m.theme.TextAccent()
		boxStyle = boxStyle.BorderForeground(theme.ColorAccent)
		shown += "▏"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		labelStyle.Render(label),
		boxStyle.Render(shown),
	)
}
