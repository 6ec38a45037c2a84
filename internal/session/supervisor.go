package session

import (
	"log/slog"

	"github.com/mboehm/tix/internal/xslog"
)

// Supervisor is the screen state machine. One instance lives for the process
// lifetime; all methods must be called from the host UI loop.
//
// Transition graph:
//
//	Splash   -> Login, Register   (forward)
//	Login    -> Main              (forward)
//	Login    -> Splash            (backward, deferred)
//	Register -> Login, Splash     (backward, deferred)
//	Main     -> Splash            (logout or acknowledged expiry only)
type Supervisor struct {
	screen    Screen
	direction Direction

	// pendingBack holds a deferred backward commit until the host's next tick.
	pendingBack Screen
	hasPending  bool

	foreground bool
	lock       LockState

	// expired is the SessionExpiredFlag: true only while the session-ended
	// notice is up. expiring covers the window between the signal and the end
	// of cleanup so duplicate signals stay no-ops.
	expired  bool
	expiring bool

	loggingOut bool

	validatorGen     uint64
	validatorRunning bool

	logger *slog.Logger
}

// New picks the initial screen from token presence: Main when a session is
// stored, Splash otherwise.
func New(hasToken bool, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Supervisor{
		screen:     ScreenSplash,
		foreground: true,
		logger:     logger,
	}
	if hasToken {
		s.screen = ScreenMain
	}
	return s
}

// Start returns the effects for the initial screen. Called once, after the
// host loop is running.
func (s *Supervisor) Start() []Effect {
	if s.screen != ScreenMain {
		return nil
	}
	return s.enterMain()
}

func (s *Supervisor) Screen() Screen         { return s.screen }
func (s *Supervisor) Direction() Direction   { return s.direction }
func (s *Supervisor) Lock() LockState        { return s.lock }
func (s *Supervisor) Expired() bool          { return s.expired }
func (s *Supervisor) Foreground() bool       { return s.foreground }
func (s *Supervisor) ValidatorRunning() bool { return s.validatorRunning }

// GoForward commits a forward transition immediately.
func (s *Supervisor) GoForward(to Screen) []Effect {
	if s.expired || s.expiring || s.loggingOut {
		return nil
	}
	if !forwardEdge(s.screen, to) {
		s.logger.Debug("ignoring forward transition", "from", s.screen, "to", to)
		return nil
	}

	s.commit(to, DirForward)
	if to == ScreenMain {
		return s.enterMain()
	}
	return nil
}

// GoBack sets the backward direction now and defers the state commit to the
// host's next scheduling tick; the host completes it via CommitBack.
func (s *Supervisor) GoBack(to Screen) []Effect {
	if s.expired || s.expiring || s.loggingOut || s.hasPending {
		return nil
	}
	if !backwardEdge(s.screen, to) {
		s.logger.Debug("ignoring backward transition", "from", s.screen, "to", to)
		return nil
	}

	s.direction = DirBackward
	s.pendingBack = to
	s.hasPending = true
	return []Effect{DeferCommit{To: to}}
}

// CommitBack completes a transition deferred by GoBack.
func (s *Supervisor) CommitBack(to Screen) []Effect {
	if !s.hasPending || s.pendingBack != to {
		return nil
	}
	s.hasPending = false
	s.commit(to, DirBackward)
	return nil
}

// Logout starts the explicit sign-out sequence from Main. The screen changes
// after the host reports the cleanup pass finished.
func (s *Supervisor) Logout() []Effect {
	if s.screen != ScreenMain || s.expired || s.expiring || s.loggingOut {
		return nil
	}
	s.loggingOut = true
	s.stopValidator()
	s.lock = LockState{}
	return []Effect{RunLogoutCleanup{}}
}

// SessionExpired handles one expiry signal. Signals arriving while off Main,
// while cleanup is already underway, or while the notice is visible are
// no-ops.
func (s *Supervisor) SessionExpired() []Effect {
	if s.screen != ScreenMain || s.expired || s.expiring || s.loggingOut {
		return nil
	}
	s.logger.Info("session expired, forcing sign-out")
	s.expiring = true
	s.stopValidator()
	// The expiry notice outranks the lock overlay; drop any lock state so the
	// two can never co-occur.
	s.lock = LockState{}
	return []Effect{RunLogoutCleanup{}}
}

// CleanupDone is called by the host once the logout cleanup pass finished.
// For an expiry it raises the blocking notice; for an explicit logout it
// completes the transition to Splash.
func (s *Supervisor) CleanupDone() []Effect {
	switch {
	case s.expiring:
		s.expiring = false
		s.expired = true
		return []Effect{ShowExpiredNotice{}}
	case s.loggingOut:
		s.loggingOut = false
		s.commit(ScreenSplash, DirForward)
		return nil
	}
	return nil
}

// AcknowledgeExpiry dismisses the session-ended notice.
func (s *Supervisor) AcknowledgeExpiry() []Effect {
	if !s.expired {
		return nil
	}
	s.expired = false
	s.commit(ScreenSplash, DirForward)
	return nil
}

// ValidatorTick processes one periodic tick. Stale generations are dropped
// without rescheduling, which is how a stopped validator terminates.
func (s *Supervisor) ValidatorTick(gen uint64) []Effect {
	if !s.validatorRunning || gen != s.validatorGen {
		return nil
	}
	return []Effect{CheckSession{}, ScheduleValidator{Gen: s.validatorGen}}
}

// EnterBackground records the app leaving the foreground. lockEnabled is the
// conjunction of the user preference and local-auth capability; when the
// capability is unavailable the gate fails open rather than locking the user
// out.
func (s *Supervisor) EnterBackground(lockEnabled bool) []Effect {
	if !s.foreground {
		return nil
	}
	s.foreground = false
	if s.screen != ScreenMain {
		return nil
	}
	s.stopValidator()
	if lockEnabled && !s.expired && !s.expiring {
		s.lock.Locked = true
	}
	return nil
}

// EnterForeground resumes the validator on Main and, when locked, kicks off a
// local-auth evaluation.
func (s *Supervisor) EnterForeground() []Effect {
	if s.foreground {
		return nil
	}
	s.foreground = true

	var fx []Effect
	if s.screen == ScreenMain && !s.expired && !s.expiring && !s.loggingOut {
		fx = append(fx, s.startValidator()...)
	}
	if s.lock.Locked && !s.lock.Evaluating {
		s.lock.Evaluating = true
		fx = append(fx, EvaluateLock{})
	}
	return fx
}

// LockResult reports the outcome of a local-auth evaluation. A result landing
// after expiry cleared the lock is discarded.
func (s *Supervisor) LockResult(ok bool) []Effect {
	s.lock.Evaluating = false
	if !s.lock.Locked {
		return nil
	}
	if ok {
		s.lock.Locked = false
	}
	return nil
}

// RetryLock re-runs the evaluation from the lock overlay's manual retry
// action. There is no automatic retry loop.
func (s *Supervisor) RetryLock() []Effect {
	if !s.lock.Locked || s.lock.Evaluating || s.expired {
		return nil
	}
	s.lock.Evaluating = true
	return []Effect{EvaluateLock{}}
}

func (s *Supervisor) commit(to Screen, dir Direction) {
	from := s.screen
	s.screen = to
	s.direction = dir
	if from == ScreenMain && to != ScreenMain {
		s.stopValidator()
		s.lock = LockState{}
	}
	s.logger.Debug("screen transition", xslog.Screen(to.String()), "from", from.String(), "direction", dir.String())
}

func (s *Supervisor) enterMain() []Effect {
	fx := []Effect{CheckSession{}}
	if s.foreground {
		fx = append(fx, s.startValidator()...)
	}
	return fx
}

// startValidator bumps the generation so any tick scheduled for a previous
// run is stale before the new one is scheduled.
func (s *Supervisor) startValidator() []Effect {
	s.validatorGen++
	s.validatorRunning = true
	return []Effect{ScheduleValidator{Gen: s.validatorGen}}
}

func (s *Supervisor) stopValidator() {
	if !s.validatorRunning {
		return
	}
	s.validatorRunning = false
	s.validatorGen++
}

func forwardEdge(from, to Screen) bool {
	switch from {
	case ScreenSplash:
		return to == ScreenLogin || to == ScreenRegister
	case ScreenLogin:
		return to == ScreenMain
	}
	return false
}

func backwardEdge(from, to Screen) bool {
	switch from {
	case ScreenLogin:
		return to == ScreenSplash
	case ScreenRegister:
		return to == ScreenSplash || to == ScreenLogin
	}
	return false
}
