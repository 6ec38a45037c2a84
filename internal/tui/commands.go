package tui

import (
	"context"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mboehm/tix/internal/biometric"
	"github.com/mboehm/tix/internal/paths"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/xslog"
)

func validatorTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(session.ValidatorInterval, func(time.Time) tea.Msg {
		return validatorTickMsg{Gen: gen}
	})
}

func checkSessionCmd(ctx context.Context, checker *session.Checker) tea.Cmd {
	return func() tea.Msg {
		checker.Check(ctx)
		return checkDoneMsg{}
	}
}

// waitExpiryCmd blocks on the expiry bus and must be re-armed after each
// delivery.
func waitExpiryCmd(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return expirySignalMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// commitBackCmd delivers the deferred commit on the next pass of the loop.
func commitBackCmd(to session.Screen) tea.Cmd {
	return func() tea.Msg {
		return commitBackMsg{To: to}
	}
}

// cleanupCmd wipes local state after a logout or forced expiry. The five
// clears are independent storage; a failure in one never blocks the rest.
func cleanupCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		ctx := deps.Ctx

		steps := []struct {
			name string
			run  func() error
		}{
			{name: "records", run: func() error { return deps.Store.ClearRecords(ctx) }},
			{name: "token", run: func() error { return deps.Store.ClearToken(ctx) }},
			{name: "profile", run: func() error { return deps.Store.ClearProfile(ctx) }},
			{name: "prefs", run: func() error { return deps.Store.ClearPrefs(ctx) }},
			{name: "caches", run: clearCaches},
		}

		for _, step := range steps {
			if err := step.run(); err != nil {
				deps.Logger.Warn("logout cleanup step failed", "step", step.name, xslog.Error(err))
			}
		}
		return cleanupDoneMsg{}
	}
}

func clearCaches() error {
	dir, err := paths.CacheDir()
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

// evaluateLockCmd waits out the render delay so the lock overlay is visible
// before any prompt appears, then runs the gate.
func evaluateLockCmd(ctx context.Context, gate biometric.Gate) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(session.LockRenderDelay)
		return lockEvalMsg{Err: gate.Evaluate(ctx, session.LockReason)}
	}
}

func loginCmd(deps Deps, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := deps.API.Auth.Login(deps.Ctx, email, password)
		if err != nil {
			return loginResultMsg{Err: err}
		}

		if err := deps.Store.SetToken(deps.Ctx, result.Token); err != nil {
			return loginResultMsg{Err: err}
		}
		if result.User != nil {
			if err := deps.Store.SetProfile(deps.Ctx, *result.User); err != nil {
				deps.Logger.Warn("failed to cache profile", xslog.Error(err))
			}
		}
		if err := deps.Store.MarkSignedIn(deps.Ctx, time.Now()); err != nil {
			deps.Logger.Warn("failed to record sign-in time", xslog.Error(err))
		}

		return loginResultMsg{Result: result}
	}
}

func registerCmd(deps Deps, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{Err: deps.API.Auth.Register(deps.Ctx, name, email, password)}
	}
}

func savePrefsCmd(deps Deps, prefs store.Prefs) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Store.SetPrefs(deps.Ctx, prefs); err != nil {
			deps.Logger.Warn("failed to save preferences", xslog.Error(err))
		}
		return prefsMsg{Prefs: prefs}
	}
}

func loadPrefsCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		prefs, err := deps.Store.Prefs(deps.Ctx)
		return prefsMsg{Prefs: prefs, Err: err}
	}
}

// fetchProfileCmd prefers the locally cached profile and falls back to the
// "who am I" endpoint.
func fetchProfileCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if p, err := deps.Store.Profile(deps.Ctx); err == nil && p != (store.Profile{}) {
			return profileMsg{Profile: p}
		}

		p, err := deps.API.Auth.Me(deps.Ctx)
		if err != nil {
			return profileMsg{Err: err}
		}
		if err := deps.Store.SetProfile(deps.Ctx, p); err != nil {
			deps.Logger.Warn("failed to cache profile", xslog.Error(err))
		}
		return profileMsg{Profile: p}
	}
}

func healthCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{Err: deps.API.Health(deps.Ctx)}
	}
}

// qrSuccessLinger is how long the approval success pane stays up before it
// dismisses itself.
const qrSuccessLinger = 1500 * time.Millisecond

func qrDismissCmd() tea.Cmd {
	return tea.Tick(qrSuccessLinger, func(time.Time) tea.Msg {
		return qrDismissMsg{}
	})
}

func approveQRCmd(deps Deps, requestID string) tea.Cmd {
	return func() tea.Msg {
		return qrResultMsg{Err: deps.API.QR.Approve(deps.Ctx, requestID)}
	}
}

// lockEnabled decides whether leaving the foreground should engage the lock:
// the preference must be on and the capability present. Unavailable
// capability fails open.
func lockEnabled(prefs store.Prefs, gate biometric.Gate) bool {
	return prefs.BiometricLock && gate != nil && gate.Available()
}
