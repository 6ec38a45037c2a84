package tui

import (
	"errors"
	"testing"

	"github.com/mboehm/tix/internal/qr"
	"github.com/mboehm/tix/internal/session"
)

func newQRModel(t *testing.T) *Model {
	t.Helper()
	m := New(Deps{Bus: session.NewBus()}, false)
	m.state.main.QR = qr.NewOrchestrator()
	return &m
}

func TestQRSuccessSchedulesDismiss(t *testing.T) {
	t.Parallel()

	m := newQRModel(t)
	if _, fire := m.state.main.QR.Scan("https://app.tixhq.com/qr?r=req-1"); !fire {
		t.Fatal("expected scan to fire the approval call")
	}

	_, cmd := m.Update(qrResultMsg{})
	if m.state.main.QR.Phase() != qr.PhaseSuccess {
		t.Fatalf("phase = %v, want success", m.state.main.QR.Phase())
	}
	if cmd == nil {
		t.Fatal("expected a scheduled dismiss after a successful approval")
	}

	m.Update(qrDismissMsg{})
	if m.state.main.QR != nil {
		t.Error("success pane should close itself after the linger delay")
	}
}

func TestQRFailureDoesNotAutoDismiss(t *testing.T) {
	t.Parallel()

	m := newQRModel(t)
	if _, fire := m.state.main.QR.Scan("https://app.tixhq.com/qr?r=req-1"); !fire {
		t.Fatal("expected scan to fire the approval call")
	}

	_, cmd := m.Update(qrResultMsg{Err: errors.New("boom")})
	if m.state.main.QR.Phase() != qr.PhaseFailure {
		t.Fatalf("phase = %v, want failure", m.state.main.QR.Phase())
	}
	if cmd != nil {
		t.Error("failures wait for the user; no dismiss should be scheduled")
	}

	m.Update(qrDismissMsg{})
	if m.state.main.QR == nil {
		t.Error("a stray dismiss must not close the failure pane")
	}
}

func TestQRDismissAfterManualCloseIsNoOp(t *testing.T) {
	t.Parallel()

	m := newQRModel(t)
	m.state.main.QR = nil

	m.Update(qrDismissMsg{})
	if m.state.main.QR != nil {
		t.Error("dismiss after manual close should leave the pane closed")
	}
}
