// Package api is the typed client for the tix REST service: login and
// registration, the "who am I" session check, QR login approval, and the
// health ping. Resource paths are derived from the operator's login path
// template so the client works against both flat and namespaced deployments.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/mboehm/tix/internal/routes"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/xhttp"
	"github.com/mboehm/tix/internal/xslog"
)

// Per-endpoint timeouts: session checks stay short so a dead server cannot
// stall the validator; credential operations get longer.
const (
	healthTimeout  = 8 * time.Second
	meTimeout      = 8 * time.Second
	loginTimeout   = 15 * time.Second
	approveTimeout = 15 * time.Second
)

// ConfigSource resolves the server settings at call time; the client never
// caches them across requests.
type ConfigSource interface {
	BaseURL() (string, error)
	LoginPathTemplate() string
}

type Client struct {
	Auth *AuthService
	QR   *QRService

	cfg        ConfigSource
	tokens     store.TokenStore
	bus        *session.Bus
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a client. bus receives one expiry signal per observed 401 on a
// session-bearing call.
func New(cfg ConfigSource, tokens store.TokenStore, bus *session.Bus, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		tokens:     tokens,
		bus:        bus,
		httpClient: xhttp.NewHTTPClient(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.QR = &QRService{client: c}
	return c
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithClientID(clientID string) Option {
	return func(c *Client) {
		c.httpClient = xhttp.NewHTTPClient(xhttp.WithTransport(xhttp.NewTransportWithClientID(clientID)))
	}
}

type callOpts struct {
	// authed attaches the stored bearer token; ErrNoToken when absent.
	authed bool
	// signalExpiry publishes to the expiry bus on 401. QR approval keeps its
	// failures local and leaves this off.
	signalExpiry bool
	timeout      time.Duration
}

// Health pings the status endpoint on the configured base URL. It is an
// unauthenticated fixed route, not a derived sibling.
func (c *Client) Health(ctx context.Context) error {
	base, err := c.cfg.BaseURL()
	if err != nil {
		return ErrNoServer
	}
	return c.request(ctx, http.MethodGet, base+"/api/health", nil, nil, callOpts{timeout: healthTimeout})
}

// do derives the resource path and performs the request.
func (c *Client) do(ctx context.Context, method, resource string, body, result any, opts callOpts) error {
	base, err := c.cfg.BaseURL()
	if err != nil {
		return ErrNoServer
	}
	u := routes.Resource(base, c.cfg.LoginPathTemplate(), resource)
	c.logger.Debug("derived resource path", xslog.Resource(resource), xslog.URL(u))
	return c.request(ctx, method, u, body, result, opts)
}

func (c *Client) request(ctx context.Context, method, u string, body, result any, opts callOpts) error {
	var bearer string
	if opts.authed {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			if errors.Is(err, store.ErrNoToken) {
				return ErrNoToken
			}
			return fmt.Errorf("loading token: %w", err)
		}
		bearer = token
	}

	var reader io.Reader
	if body != nil {
		buf, err := go_json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", xslog.URL(u), xslog.Duration(time.Since(start)), xslog.Error(err))
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request completed", xslog.URL(u), xslog.HTTPStatus(resp.StatusCode), xslog.Duration(time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		if opts.signalExpiry && c.bus != nil {
			c.bus.Publish()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if err := go_json.Unmarshal(payload, result); err != nil {
			return fmt.Errorf("decoding response: %w\nbody: %s", err, string(payload))
		}
	}

	return nil
}
