package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mboehm/tix/internal/qr"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type state struct {
	login    LoginState
	register RegisterState
	main     MainState
}

type Model struct {
	ready          bool
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	sup            *session.Supervisor
	expiryCh       <-chan struct{}
	prefs          store.Prefs
	state          state
	deps           Deps
}

func New(deps Deps, hasToken bool) Model {
	return Model{
		theme:    theme.New(),
		sup:      session.New(hasToken, deps.Logger),
		expiryCh: deps.Bus.Subscribe(),
		deps:     deps,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.applyEffects(m.sup.Start()),
		waitExpiryCmd(m.deps.Ctx, m.expiryCh),
		loadPrefsCmd(m.deps),
	}
	if m.sup.Screen() == session.ScreenMain {
		cmds = append(cmds, m.enterMainCmds())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.FocusMsg:
		return m, m.applyEffects(m.sup.EnterForeground())

	case tea.BlurMsg:
		m.sup.EnterBackground(lockEnabled(m.prefs, m.deps.Gate))

	case validatorTickMsg:
		return m, m.applyEffects(m.sup.ValidatorTick(msg.Gen))

	case checkDoneMsg:
		// Outcome travels through the expiry bus.

	case expirySignalMsg:
		return m, tea.Batch(
			m.applyEffects(m.sup.SessionExpired()),
			waitExpiryCmd(m.deps.Ctx, m.expiryCh),
		)

	case commitBackMsg:
		return m, m.applyEffects(m.sup.CommitBack(msg.To))

	case cleanupDoneMsg:
		return m, m.applyEffects(m.sup.CleanupDone())

	case lockEvalMsg:
		return m, m.applyEffects(m.sup.LockResult(msg.Err == nil))

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case prefsMsg:
		if msg.Err == nil {
			m.prefs = msg.Prefs
		}

	case profileMsg:
		if msg.Err == nil {
			m.state.main.Profile = msg.Profile
		}

	case healthMsg:
		healthy := msg.Err == nil
		m.state.main.Healthy = &healthy

	case qrResultMsg:
		if m.state.main.QR != nil {
			m.state.main.QR.Complete(msg.Err)
			if m.state.main.QR.Phase() == qr.PhaseSuccess {
				return m, qrDismissCmd()
			}
		}

	case qrDismissMsg:
		// Ignored when the user already closed the pane or retried.
		if m.state.main.QR != nil && m.state.main.QR.Phase() == qr.PhaseSuccess {
			m.state.main.QR = nil
			m.state.main.QRInput = ""
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// The session-ended notice blocks everything else.
	if m.sup.Expired() {
		switch key {
		case "enter", "esc", " ", "space":
			return m, m.applyEffects(m.sup.AcknowledgeExpiry())
		}
		return m, nil
	}

	// The lock overlay only offers a manual retry.
	if m.sup.Lock().Locked {
		if key == "r" {
			return m, m.applyEffects(m.sup.RetryLock())
		}
		return m, nil
	}

	switch m.sup.Screen() {
	case session.ScreenSplash:
		return m.handleSplashKey(key)
	case session.ScreenLogin:
		return m.handleLoginKey(key)
	case session.ScreenRegister:
		return m.handleRegisterKey(key)
	case session.ScreenMain:
		return m.handleMainKey(key)
	}
	return m, nil
}

// applyEffects translates supervisor instructions into commands.
func (m *Model) applyEffects(fx []session.Effect) tea.Cmd {
	if len(fx) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(fx))
	for _, e := range fx {
		switch e := e.(type) {
		case session.ScheduleValidator:
			cmds = append(cmds, validatorTickCmd(e.Gen))
		case session.CheckSession:
			cmds = append(cmds, checkSessionCmd(m.deps.Ctx, m.deps.Checker))
		case session.DeferCommit:
			cmds = append(cmds, commitBackCmd(e.To))
		case session.RunLogoutCleanup:
			cmds = append(cmds, cleanupCmd(m.deps))
		case session.ShowExpiredNotice:
			// Rendered from supervisor state; nothing to schedule.
		case session.EvaluateLock:
			cmds = append(cmds, evaluateLockCmd(m.deps.Ctx, m.deps.Gate))
		}
	}
	return tea.Batch(cmds...)
}

// enterMainCmds loads the data the main screen shows.
func (m *Model) enterMainCmds() tea.Cmd {
	return tea.Batch(fetchProfileCmd(m.deps), healthCmd(m.deps))
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	// Focus reporting drives the background lock.
	view.ReportFocus = true
	view.BackgroundColor = m.theme.Background()

	if !m.ready {
		return view
	}

	var content string
	switch {
	case m.sup.Expired():
		content = m.ExpiredView()
	case m.sup.Lock().Locked:
		content = m.LockView()
	default:
		switch m.sup.Screen() {
		case session.ScreenSplash:
			content = m.SplashView()
		case session.ScreenLogin:
			content = m.LoginView()
		case session.ScreenRegister:
			content = m.RegisterView()
		case session.ScreenMain:
			content = m.MainView()
		}
	}

	view.SetContent(lipgloss.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		content,
	))
	return view
}
