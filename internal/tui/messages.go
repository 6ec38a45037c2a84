package tui

import (
	"github.com/mboehm/tix/internal/client/api"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
)

// validatorTickMsg is one periodic validation tick. Gen lets the supervisor
// drop ticks scheduled for a validator that has since been stopped.
type validatorTickMsg struct {
	Gen uint64
}

// checkDoneMsg reports that one fire-and-forget session check completed; the
// outcome travels through the expiry bus, not this message.
type checkDoneMsg struct{}

// expirySignalMsg is delivered when the expiry bus fires.
type expirySignalMsg struct{}

// commitBackMsg lands one loop tick after GoBack to complete the deferred
// screen commit.
type commitBackMsg struct {
	To session.Screen
}

// cleanupDoneMsg reports that the local logout wipe finished.
type cleanupDoneMsg struct{}

// lockEvalMsg is the local-auth gate's verdict.
type lockEvalMsg struct {
	Err error
}

type loginResultMsg struct {
	Result *api.LoginResult
	Err    error
}

type registerResultMsg struct {
	Err error
}

type prefsMsg struct {
	Prefs store.Prefs
	Err   error
}

type profileMsg struct {
	Profile store.Profile
	Err     error
}

type healthMsg struct {
	Err error
}

type qrResultMsg struct {
	Err error
}

// qrDismissMsg closes the QR pane after a successful approval has been shown
// for a short moment.
type qrDismissMsg struct{}
