// Package qr drives the scan -> parse -> approve sequence that lets this
// signed-in device authorize a browser login on another machine. Approval
// success or failure never touches the local session.
package qr

import (
	"errors"
	"net/url"
)

// ErrNotLoginQR means the scanned payload is not a login QR code: either it
// does not parse as a URL or it carries no request id. Rejected locally,
// without any server call.
var ErrNotLoginQR = errors.New("not a login QR code")

// requestParam is the query parameter holding the approval request id.
const requestParam = "r"

// ParsePayload extracts the approval request id from a scanned payload.
func ParsePayload(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrNotLoginQR
	}
	id := u.Query().Get(requestParam)
	if id == "" {
		return "", ErrNotLoginQR
	}
	return id, nil
}

type Phase int

const (
	// PhaseScanning accepts exactly one payload; further frames are ignored
	// until the phase returns here.
	PhaseScanning Phase = iota
	PhaseProcessing
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseScanning:
		return "scanning"
	case PhaseProcessing:
		return "processing"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	}
	return "unknown"
}

// Orchestrator is the per-presentation state machine. Like the session
// supervisor it is event-driven and side-effect free: Scan reports whether
// the host should fire the approval call.
type Orchestrator struct {
	phase   Phase
	failure error
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{phase: PhaseScanning}
}

func (o *Orchestrator) Phase() Phase   { return o.phase }
func (o *Orchestrator) Failure() error { return o.failure }

// Scan consumes one camera frame. It returns the extracted request id and
// true when the host should call the approval endpoint. Frames arriving
// outside the scanning phase are dropped, which bounds the flow to one
// in-flight approval per scanning phase.
func (o *Orchestrator) Scan(raw string) (string, bool) {
	if o.phase != PhaseScanning {
		return "", false
	}

	id, err := ParsePayload(raw)
	if err != nil {
		o.phase = PhaseFailure
		o.failure = err
		return "", false
	}

	o.phase = PhaseProcessing
	o.failure = nil
	return id, true
}

// Complete records the approval call's outcome.
func (o *Orchestrator) Complete(err error) {
	if o.phase != PhaseProcessing {
		return
	}
	if err != nil {
		o.phase = PhaseFailure
		o.failure = err
		return
	}
	o.phase = PhaseSuccess
	o.failure = nil
}

// Retry returns to scanning after a failure.
func (o *Orchestrator) Retry() {
	if o.phase != PhaseFailure {
		return
	}
	o.phase = PhaseScanning
	o.failure = nil
}

// Reset prepares the orchestrator for a fresh presentation of the screen.
func (o *Orchestrator) Reset() {
	o.phase = PhaseScanning
	o.failure = nil
}
