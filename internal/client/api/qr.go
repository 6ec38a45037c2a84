package api

import (
	"context"
	"errors"
	"net/http"
)

type QRService struct {
	client *Client
}

// Approve confirms a pending browser login identified by requestID, using the
// local device's session as the approving authority. Failures stay local:
// even a 401 here does not publish the expiry signal, since approval outcomes
// never touch the local session.
func (s *QRService) Approve(ctx context.Context, requestID string) error {
	const resource = "qr-login"

	body := map[string]string{"requestId": requestID}
	err := s.client.do(ctx, http.MethodPost, resource, body, nil, callOpts{
		authed:  true,
		timeout: approveTimeout,
	})
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound, http.StatusGone:
			return ErrApprovalNotFound
		case http.StatusConflict:
			return ErrApprovalConsumed
		}
	}
	return err
}
