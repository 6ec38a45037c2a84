package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/xslog"
)

type testConfig struct {
	base     string
	baseErr  error
	template string
}

func (c testConfig) BaseURL() (string, error) {
	return c.base, c.baseErr
}

func (c testConfig) LoginPathTemplate() string {
	if c.template == "" {
		return "api/login"
	}
	return c.template
}

func newTestClient(t *testing.T, handler http.Handler, cfg testConfig) (*Client, *store.Memory, *session.Bus) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	if cfg.base == "" && cfg.baseErr == nil {
		cfg.base = srv.URL
	}

	tokens := store.NewMemory()
	bus := session.NewBus()
	return New(cfg, tokens, bus), tokens, bus
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("token key", func(t *testing.T) {
		t.Parallel()
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/login", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"tok-1","user":{"name":"Ada","email":"ada@example.com"}}`))
		}), testConfig{})

		res, err := client.Auth.Login(context.Background(), "ada@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", res.Token)
		require.NotNil(t, res.User)
		assert.Equal(t, "Ada", res.User.Name)
	})

	t.Run("accessToken key", func(t *testing.T) {
		t.Parallel()
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accessToken":"tok-2"}`))
		}), testConfig{})

		res, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", res.Token)
		assert.Nil(t, res.User)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()
		client, _, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}), testConfig{})
		expiry := bus.Subscribe()

		_, err := client.Auth.Login(context.Background(), "a@b.c", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		select {
		case <-expiry:
			t.Fatal("login 401 must not publish the expiry signal")
		default:
		}
	})

	t.Run("missing token in response", func(t *testing.T) {
		t.Parallel()
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}), testConfig{})

		_, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	})

	t.Run("namespaced template", func(t *testing.T) {
		t.Parallel()
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/login", r.URL.Path)
			_, _ = w.Write([]byte(`{"token":"tok"}`))
		}), testConfig{template: "api/auth/login"})

		_, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
		require.NoError(t, err)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/me", r.URL.Path)
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"name":"Ada","email":"ada@example.com"}`))
		}), testConfig{})
		require.NoError(t, tokens.SetToken(context.Background(), "tok-1"))

		profile, err := client.Auth.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, store.Profile{Name: "Ada", Email: "ada@example.com"}, profile)
	})

	t.Run("401 publishes expiry signal", func(t *testing.T) {
		t.Parallel()
		client, tokens, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}), testConfig{})
		require.NoError(t, tokens.SetToken(context.Background(), "tok-1"))
		expiry := bus.Subscribe()

		_, err := client.Auth.Me(context.Background())
		require.ErrorIs(t, err, ErrUnauthorized)

		select {
		case <-expiry:
		default:
			t.Fatal("expected expiry signal after 401 on authenticated call")
		}
	})

	t.Run("no local token", func(t *testing.T) {
		t.Parallel()
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected without a token")
		}), testConfig{})

		_, err := client.Auth.Me(context.Background())
		require.ErrorIs(t, err, ErrNoToken)
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/change-password", r.URL.Path)
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		}), testConfig{})
		require.NoError(t, tokens.SetToken(context.Background(), "tok-1"))

		require.NoError(t, client.Auth.ChangePassword(context.Background(), "old", "new"))
	})

	t.Run("401 publishes expiry signal", func(t *testing.T) {
		t.Parallel()
		client, tokens, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}), testConfig{})
		require.NoError(t, tokens.SetToken(context.Background(), "tok-1"))
		expiry := bus.Subscribe()

		err := client.Auth.ChangePassword(context.Background(), "old", "new")
		require.ErrorIs(t, err, ErrUnauthorized)

		select {
		case <-expiry:
		default:
			t.Fatal("expected expiry signal after 401 on authenticated call")
		}
	})
}

func TestQRApprove(t *testing.T) {
	t.Parallel()

	statusTests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrApprovalNotFound},
		{name: "expired", status: http.StatusGone, wantErr: ErrApprovalNotFound},
		{name: "already consumed", status: http.StatusConflict, wantErr: ErrApprovalConsumed},
		{name: "own session unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
	}

	for _, tt := range statusTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, tokens, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}), testConfig{})
			require.NoError(t, tokens.SetToken(context.Background(), "tok-1"))
			expiry := bus.Subscribe()

			err := client.QR.Approve(context.Background(), "req-1")
			require.ErrorIs(t, err, tt.wantErr)

			select {
			case <-expiry:
				t.Fatal("approval failures must stay local to the QR flow")
			default:
			}
		})
	}

	t.Run("success posts request id", func(t *testing.T) {
		t.Parallel()
		client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/qr-login", r.URL.Path)
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		}), testConfig{})
		require.NoError(t, tokens.SetToken(context.Background(), "tok-1"))

		require.NoError(t, client.QR.Approve(context.Background(), "abc123"))
	})

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected without a token")
		}), testConfig{})

		err := client.QR.Approve(context.Background(), "abc123")
		require.ErrorIs(t, err, ErrNoToken)
	})
}

func TestNoServerConfigured(t *testing.T) {
	t.Parallel()

	client := New(testConfig{baseErr: errors.New("unset")}, store.NewMemory(), session.NewBus())

	_, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrNoServer)

	require.ErrorIs(t, client.Health(context.Background()), ErrNoServer)
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	// Point at a closed server to force a transport error.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := New(testConfig{base: srv.URL}, store.NewMemory(), session.NewBus())

	_, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestServerErrorMessage(t *testing.T) {
	t.Parallel()

	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database down"}`))
	}), testConfig{})

	_, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database down", apiErr.Message)
}

func TestRequestLogging(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok"}`))
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	client := New(
		testConfig{base: srv.URL},
		store.NewMemory(),
		session.NewBus(),
		WithLogger(xslog.NewLogger(&buf, xslog.LevelDebug)),
	)

	_, err := client.Auth.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, `"resource":"login"`)
	assert.Contains(t, logged, `"url":"`+srv.URL+`/api/login"`)
	assert.Contains(t, logged, `"status":200`)
	assert.Contains(t, logged, `"duration"`)
}

func TestHealthPath(t *testing.T) {
	t.Parallel()

	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}), testConfig{template: "api/auth/login"})

	require.NoError(t, client.Health(context.Background()))
}
