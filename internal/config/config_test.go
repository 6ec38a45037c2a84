package config

import (
	"errors"
	"testing"
)

func TestBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr error
	}{
		{
			name: "official tenant ignores domain settings",
			cfg:  Config{Tenant: TenantOfficial, Domain: "ignored.example"},
			want: OfficialBaseURL,
		},
		{
			name: "on-prem https with custom port",
			cfg:  Config{Tenant: TenantOnPrem, Domain: "tix.corp.example", Port: 8443, UseHTTPS: true},
			want: "https://tix.corp.example:8443",
		},
		{
			name: "on-prem https default port omitted",
			cfg:  Config{Tenant: TenantOnPrem, Domain: "tix.corp.example", Port: 443, UseHTTPS: true},
			want: "https://tix.corp.example",
		},
		{
			name: "on-prem plain http",
			cfg:  Config{Tenant: TenantOnPrem, Domain: "10.0.0.5", Port: 3000, UseHTTPS: false},
			want: "http://10.0.0.5:3000",
		},
		{
			name: "on-prem http default port omitted",
			cfg:  Config{Tenant: TenantOnPrem, Domain: "10.0.0.5", Port: 80, UseHTTPS: false},
			want: "http://10.0.0.5",
		},
		{
			name: "on-prem without port",
			cfg:  Config{Tenant: TenantOnPrem, Domain: "tix.corp.example", UseHTTPS: true},
			want: "https://tix.corp.example",
		},
		{
			name:    "on-prem without domain",
			cfg:     Config{Tenant: TenantOnPrem, UseHTTPS: true},
			wantErr: ErrNoServer,
		},
		{
			name:    "on-prem whitespace domain",
			cfg:     Config{Tenant: TenantOnPrem, Domain: "   "},
			wantErr: ErrNoServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.cfg.BaseURL()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BaseURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BaseURL() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginPathTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "configured path kept", path: "api/auth/login", want: "api/auth/login"},
		{name: "blank falls back to default", path: "", want: DefaultLoginPath},
		{name: "whitespace falls back to default", path: "  ", want: DefaultLoginPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Config{LoginPath: tt.path}
			if got := cfg.LoginPathTemplate(); got != tt.want {
				t.Errorf("LoginPathTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}
