// Package session owns the client's top-level session lifecycle: which screen
// is visible, whether the periodic revocation check is running, whether the
// UI is locked behind a local-auth gate, and how a server-side expiry is
// recovered from.
//
// The Supervisor is a plain state machine: the host UI feeds it events and
// executes the effects it returns. No goroutines, timers, or network calls
// live here, which keeps every ordering property testable without a UI loop.
package session

import "time"

// ValidatorInterval is how often the "who am I" revocation check runs while
// the main screen is visible and the app is foregrounded.
const ValidatorInterval = 30 * time.Second

// LockRenderDelay gives the lock overlay a beat to render before the local
// auth prompt appears.
const LockRenderDelay = 300 * time.Millisecond

// LockReason is the human-readable prompt shown by the local-auth helper.
const LockReason = "Unlock tix to continue"

type Screen int

const (
	ScreenSplash Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenMain
)

func (s Screen) String() string {
	switch s {
	case ScreenSplash:
		return "splash"
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenMain:
		return "main"
	}
	return "unknown"
}

// Direction selects the slide animation for a screen change. It has no
// functional meaning beyond presentation.
type Direction int

const (
	DirForward Direction = iota
	DirBackward
)

func (d Direction) String() string {
	if d == DirBackward {
		return "backward"
	}
	return "forward"
}

// LockState is the local-auth overlay state. Locked is only ever true while
// the main screen is current.
type LockState struct {
	Locked     bool
	Evaluating bool
}
