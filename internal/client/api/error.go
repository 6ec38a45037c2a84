package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	go_json "github.com/goccy/go-json"
)

var (
	// ErrNoServer means no usable base URL is configured for the tenant.
	ErrNoServer = errors.New("no server configured")

	// ErrNoToken means the call needs a signed-in session and none is stored
	// locally. Distinct from the remote end rejecting anything.
	ErrNoToken = errors.New("not signed in")

	// ErrUnauthorized is a 401 from the server on an authenticated call.
	ErrUnauthorized = errors.New("session unauthorized")

	// ErrInvalidCredentials is a 401 from the login endpoint specifically.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrApprovalNotFound means the login request being approved does not
	// exist or has expired server-side.
	ErrApprovalNotFound = errors.New("login request not found or expired")

	// ErrApprovalConsumed means the login request was already approved.
	ErrApprovalConsumed = errors.New("login request already used")
)

// APIError is any other 4xx/5xx, with a best-effort extracted message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error: %d %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level failure or timeout. It never indicates
// expiry.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := go_json.Unmarshal(body, &errResp); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}
	if msg == "" {
		msg = resp.Status
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}
