package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mboehm/tix/internal/client/api"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/tui/theme"
)

type RegisterState struct {
	Name     string
	Email    string
	Password string
	Focus    int // 0 name, 1 email, 2 password
	Busy     bool
	Err      string
}

const registerFields = 3

func (m *Model) handleRegisterKey(key string) (tea.Model, tea.Cmd) {
	st := &m.state.register
	if st.Busy {
		return m, nil
	}

	switch key {
	case "esc":
		return m, m.applyEffects(m.sup.GoBack(session.ScreenSplash))
	case "left":
		return m, m.applyEffects(m.sup.GoBack(session.ScreenLogin))
	case "tab", "down":
		st.Focus = (st.Focus + 1) % registerFields
		return m, nil
	case "shift+tab", "up":
		st.Focus = (st.Focus + registerFields - 1) % registerFields
		return m, nil
	case "enter":
		if st.Focus < registerFields-1 {
			st.Focus++
			return m, nil
		}
		if st.Name == "" || st.Email == "" || st.Password == "" {
			st.Err = "Fill in all fields."
			return m, nil
		}
		st.Busy = true
		st.Err = ""
		return m, registerCmd(m.deps, st.Name, st.Email, st.Password)
	}

	switch st.Focus {
	case 0:
		st.Name, _ = editField(st.Name, key)
	case 1:
		st.Email, _ = editField(st.Email, key)
	case 2:
		st.Password, _ = editField(st.Password, key)
	}
	return m, nil
}

func (m *Model) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	st := &m.state.register
	st.Busy = false

	if msg.Err != nil {
		st.Err = registerErrorMessage(msg.Err)
		return m, nil
	}

	// Registration is followed by a normal sign-in.
	m.state.register = RegisterState{}
	m.state.login.Flash = "Account created. Sign in to continue."
	return m, m.applyEffects(m.sup.GoBack(session.ScreenLogin))
}

func registerErrorMessage(err error) string {
	var apiErr *api.APIError
	var netErr *api.NetworkError

	switch {
	case errors.Is(err, api.ErrNoServer):
		return "No server is configured. Set TIX_TENANT or TIX_DOMAIN first."
	case errors.As(err, &netErr):
		return "Couldn't reach the server. Check your connection."
	case errors.As(err, &apiErr):
		return "The server rejected the registration: " + apiErr.Message
	}
	return "Registration failed: " + err.Error()
}

func (m *Model) RegisterView() string {
	st := m.state.register

	title := lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Render("Create account")

	rows := []string{
		m.LogoView(),
		"",
		title,
		"",
		m.fieldView("Name", st.Name, st.Focus == 0, false),
		m.fieldView("Email", st.Email, st.Focus == 1, false),
		m.fieldView("Password", st.Password, st.Focus == 2, true),
	}

	switch {
	case st.Busy:
		rows = append(rows, "", m.theme.TextDim().Render("Creating account..."))
	case st.Err != "":
		rows = append(rows, "", m.theme.TextDanger().Render(st.Err))
	}

	rows = append(rows, "", m.theme.TextDim().Render("enter submit  ·  tab next field  ·  left sign in  ·  esc back"))

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
