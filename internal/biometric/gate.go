// Package biometric wraps the local-auth capability used to re-reveal the UI
// after backgrounding. The gate never talks to the server; the session stays
// valid underneath regardless of the outcome.
package biometric

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

var ErrEvaluationFailed = errors.New("local authentication failed")

type Gate interface {
	// Available reports whether the capability can work at all. When it
	// cannot, the lock feature fails open: locking anyway would leave the
	// user with no way back in.
	Available() bool

	// Evaluate runs one local-auth check with a human-readable reason.
	Evaluate(ctx context.Context, reason string) error
}

// CommandGate delegates to an operator-configured helper command, the
// terminal counterpart of a platform biometric prompt. The reason string is
// passed as the final argument; exit code zero is success.
type CommandGate struct {
	command string
}

var _ Gate = (*CommandGate)(nil)

func NewCommandGate(command string) *CommandGate {
	return &CommandGate{command: strings.TrimSpace(command)}
}

func (g *CommandGate) Available() bool {
	if g.command == "" {
		return false
	}
	fields := strings.Fields(g.command)
	_, err := exec.LookPath(fields[0])
	return err == nil
}

func (g *CommandGate) Evaluate(ctx context.Context, reason string) error {
	if !g.Available() {
		return ErrEvaluationFailed
	}
	fields := strings.Fields(g.command)
	args := append(fields[1:], reason)

	cmd := exec.CommandContext(ctx, fields[0], args...)
	if err := cmd.Run(); err != nil {
		return ErrEvaluationFailed
	}
	return nil
}

// StaticGate is a test double with fixed answers.
type StaticGate struct {
	Capable bool
	Allow   bool
}

var _ Gate = (*StaticGate)(nil)

func (g *StaticGate) Available() bool {
	return g.Capable
}

func (g *StaticGate) Evaluate(_ context.Context, _ string) error {
	if !g.Capable || !g.Allow {
		return ErrEvaluationFailed
	}
	return nil
}
