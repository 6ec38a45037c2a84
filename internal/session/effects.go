package session

// Effect is an instruction for the host UI layer. The Supervisor mutates its
// own state synchronously and describes every side effect as a value, so the
// host decides how to schedule network calls, timers, and deferred commits.
type Effect interface {
	isEffect()
}

// ScheduleValidator asks the host to deliver a validator tick after
// ValidatorInterval, tagged with Gen. Ticks carrying a stale generation are
// dropped by the Supervisor, which is how a stopped validator dies: it is
// simply never rescheduled.
type ScheduleValidator struct {
	Gen uint64
}

// CheckSession asks the host to fire one "who am I" call. Fire and forget;
// overlapping checks are harmless because the only consequence of a 401 is
// the idempotent expiry signal.
type CheckSession struct{}

// DeferCommit asks the host to complete a backward transition on its next
// scheduling tick by calling CommitBack. Deferral keeps the commit from
// racing the slide animation.
type DeferCommit struct {
	To Screen
}

// RunLogoutCleanup asks the host to wipe local state: cached records, token,
// profile, preferences, and HTTP caches, in that order, best effort.
type RunLogoutCleanup struct{}

// ShowExpiredNotice asks the host to present the blocking session-ended
// overlay.
type ShowExpiredNotice struct{}

// EvaluateLock asks the host to run the local-auth gate (after
// LockRenderDelay) and report the outcome via LockResult.
type EvaluateLock struct{}

func (ScheduleValidator) isEffect() {}
func (CheckSession) isEffect()      {}
func (DeferCommit) isEffect()       {}
func (RunLogoutCleanup) isEffect()  {}
func (ShowExpiredNotice) isEffect() {}
func (EvaluateLock) isEffect()      {}
