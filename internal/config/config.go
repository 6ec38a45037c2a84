package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// OfficialBaseURL is the hosted multi-tenant service.
const OfficialBaseURL = "https://app.tixhq.com"

// DefaultLoginPath is used when no login path template is configured.
const DefaultLoginPath = "api/login"

var ErrNoServer = errors.New("no server configured")

type Tenant string

const (
	TenantOfficial Tenant = "official"
	TenantOnPrem   Tenant = "onprem"
)

type Config struct {
	Tenant    Tenant `env:"TIX_TENANT" envDefault:"official"`
	Domain    string `env:"TIX_DOMAIN"`
	Port      int    `env:"TIX_PORT"`
	UseHTTPS  bool   `env:"TIX_HTTPS" envDefault:"true"`
	LoginPath string `env:"TIX_LOGIN_PATH" envDefault:"api/login"`

	// LocalAuthCommand is an optional helper invoked to confirm the local
	// user's presence before unlocking the UI after backgrounding. Exit code
	// zero counts as success. Empty disables the lock feature.
	LocalAuthCommand string `env:"TIX_LOCAL_AUTH_CMD"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}

// BaseURL resolves the REST base for the configured tenant. It is evaluated
// at call time on every request so that settings edits take effect without a
// restart.
func (c Config) BaseURL() (string, error) {
	if c.Tenant != TenantOnPrem {
		return OfficialBaseURL, nil
	}

	domain := strings.TrimSpace(c.Domain)
	if domain == "" {
		return "", ErrNoServer
	}

	scheme := "https"
	if !c.UseHTTPS {
		scheme = "http"
	}

	if c.Port > 0 && !isDefaultPort(scheme, c.Port) {
		return fmt.Sprintf("%s://%s:%d", scheme, domain, c.Port), nil
	}
	return fmt.Sprintf("%s://%s", scheme, domain), nil
}

// LoginPathTemplate returns the configured login path, falling back to the
// default when blank.
func (c Config) LoginPathTemplate() string {
	if strings.TrimSpace(c.LoginPath) == "" {
		return DefaultLoginPath
	}
	return c.LoginPath
}

func isDefaultPort(scheme string, port int) bool {
	switch scheme {
	case "https":
		return port == 443
	case "http":
		return port == 80
	}
	return false
}
