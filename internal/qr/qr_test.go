package qr

import (
	"errors"
	"testing"

	"github.com/mboehm/tix/internal/client/api"
)

func TestParsePayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "login payload",
			raw:  "https://x.test/qr-login?r=abc123",
			want: "abc123",
		},
		{
			name: "extra query params",
			raw:  "https://x.test/qr-login?v=2&r=req-42",
			want: "req-42",
		},
		{
			name:    "url without request param",
			raw:     "https://x.test/other?x=1",
			wantErr: true,
		},
		{
			name:    "not a url",
			raw:     "not a url",
			wantErr: true,
		},
		{
			name:    "empty payload",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "empty request param",
			raw:     "https://x.test/qr-login?r=",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePayload(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrNotLoginQR) {
					t.Fatalf("ParsePayload(%q) error = %v, want ErrNotLoginQR", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePayload(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParsePayload(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOrchestratorHappyPath(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator()
	if o.Phase() != PhaseScanning {
		t.Fatalf("initial phase = %v, want scanning", o.Phase())
	}

	id, fire := o.Scan("https://x.test/qr-login?r=abc123")
	if !fire || id != "abc123" {
		t.Fatalf("Scan() = %q, %v, want abc123, true", id, fire)
	}
	if o.Phase() != PhaseProcessing {
		t.Fatalf("phase after scan = %v, want processing", o.Phase())
	}

	o.Complete(nil)
	if o.Phase() != PhaseSuccess {
		t.Fatalf("phase after success = %v, want success", o.Phase())
	}
}

func TestOrchestratorDebounce(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator()

	if _, fire := o.Scan("https://x.test/qr-login?r=first"); !fire {
		t.Fatal("first scan should fire")
	}

	// Frames arriving while processing, and after completion, are dropped.
	if _, fire := o.Scan("https://x.test/qr-login?r=second"); fire {
		t.Fatal("scan during processing must be ignored")
	}
	o.Complete(nil)
	if _, fire := o.Scan("https://x.test/qr-login?r=third"); fire {
		t.Fatal("scan after success must be ignored")
	}
}

func TestOrchestratorFailureAndRetry(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator()

	// A malformed payload fails locally without reaching processing.
	if _, fire := o.Scan("garbage"); fire {
		t.Fatal("malformed payload must not fire the approval call")
	}
	if o.Phase() != PhaseFailure || !errors.Is(o.Failure(), ErrNotLoginQR) {
		t.Fatalf("phase = %v, failure = %v", o.Phase(), o.Failure())
	}

	// New frames are ignored until retry.
	if _, fire := o.Scan("https://x.test/qr-login?r=abc"); fire {
		t.Fatal("scan in failure phase must be ignored")
	}

	o.Retry()
	if o.Phase() != PhaseScanning || o.Failure() != nil {
		t.Fatalf("after retry: phase = %v, failure = %v", o.Phase(), o.Failure())
	}

	// A server-side failure is recoverable the same way.
	if _, fire := o.Scan("https://x.test/qr-login?r=abc"); !fire {
		t.Fatal("scan after retry should fire")
	}
	o.Complete(api.ErrApprovalConsumed)
	if o.Phase() != PhaseFailure || !errors.Is(o.Failure(), api.ErrApprovalConsumed) {
		t.Fatalf("phase = %v, failure = %v", o.Phase(), o.Failure())
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	// Every taxonomy branch must have distinct wording.
	errs := []error{
		ErrNotLoginQR,
		api.ErrNoServer,
		api.ErrNoToken,
		api.ErrUnauthorized,
		api.ErrApprovalNotFound,
		api.ErrApprovalConsumed,
		&api.NetworkError{Err: errors.New("dial tcp: refused")},
		&api.APIError{StatusCode: 500, Message: "boom"},
	}

	seen := make(map[string]error, len(errs))
	for _, err := range errs {
		msg := Describe(err)
		if msg == "" {
			t.Errorf("Describe(%v) is empty", err)
			continue
		}
		if prev, ok := seen[msg]; ok {
			t.Errorf("Describe(%v) and Describe(%v) share message %q", err, prev, msg)
		}
		seen[msg] = err
	}

	if Describe(nil) != "" {
		t.Error("Describe(nil) should be empty")
	}
}
