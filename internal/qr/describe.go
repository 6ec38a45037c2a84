package qr

import (
	"errors"

	"github.com/mboehm/tix/internal/client/api"
)

// Describe maps an approval failure to the message shown on the QR screen.
// Each branch of the failure taxonomy gets its own wording so the user can
// tell a stale code from a dead server from their own session being invalid.
func Describe(err error) string {
	var apiErr *api.APIError
	var netErr *api.NetworkError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotLoginQR):
		return "That doesn't look like a login QR code."
	case errors.Is(err, api.ErrNoServer):
		return "No server is configured. Set one up in settings first."
	case errors.Is(err, api.ErrNoToken):
		return "You need to be signed in to approve a login."
	case errors.Is(err, api.ErrUnauthorized):
		return "Your own session is no longer valid."
	case errors.Is(err, api.ErrApprovalNotFound):
		return "This login request was not found or has expired."
	case errors.Is(err, api.ErrApprovalConsumed):
		return "This login request was already used."
	case errors.As(err, &netErr):
		return "Couldn't reach the server. Check your connection."
	case errors.As(err, &apiErr):
		return "The server rejected the request: " + apiErr.Message
	}
	return "Something went wrong: " + err.Error()
}
