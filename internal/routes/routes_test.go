package routes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		resource string
		want     []string
	}{
		{
			name:     "namespaced template",
			template: "api/auth/login",
			resource: "tickets",
			want:     []string{"api", "auth", "tickets"},
		},
		{
			name:     "flat template",
			template: "api/login",
			resource: "me",
			want:     []string{"api", "me"},
		},
		{
			name:     "empty template uses default",
			template: "",
			resource: "collections",
			want:     []string{"api", "collections"},
		},
		{
			name:     "whitespace template uses default",
			template: "   ",
			resource: "todos",
			want:     []string{"api", "todos"},
		},
		{
			name:     "bare login yields bare resource",
			template: "login",
			resource: "time-entries",
			want:     []string{"time-entries"},
		},
		{
			name:     "mixed case login replaced",
			template: "api/LOGIN",
			resource: "links",
			want:     []string{"api", "links"},
		},
		{
			name:     "leading and trailing slashes dropped",
			template: "/api/login/",
			resource: "search",
			want:     []string{"api", "search"},
		},
		{
			name:     "double slashes collapsed",
			template: "api//login",
			resource: "change-password",
			want:     []string{"api", "change-password"},
		},
		{
			name:     "multi segment resource",
			template: "api/login",
			resource: "qr-login",
			want:     []string{"api", "qr-login"},
		},
		{
			// U+023A lowercases to U+2C65, which is one byte longer.
			name:     "rune whose lowercase form is longer",
			template: "Ⱥlogin",
			resource: "tickets",
			want:     []string{"Ⱥtickets"},
		},
		{
			// U+0130 lowercases to U+0069, which is one byte shorter.
			name:     "rune whose lowercase form is shorter",
			template: "api/İlogin",
			resource: "tickets",
			want:     []string{"api", "İtickets"},
		},
		{
			name:     "dotted capital I inside login still matches",
			template: "api/LOGİN",
			resource: "tickets",
			want:     []string{"api", "tickets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Derive(tt.template, tt.resource)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Derive(%q, %q) mismatch (-want +got):\n%s", tt.template, tt.resource, diff)
			}
		})
	}
}

func TestResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		template string
		resource string
		want     string
	}{
		{
			name:     "namespaced",
			base:     "https://tix.corp.example",
			template: "api/auth/login",
			resource: "tickets",
			want:     "https://tix.corp.example/api/auth/tickets",
		},
		{
			name:     "base with trailing slash",
			base:     "https://tix.corp.example/",
			template: "api/login",
			resource: "me",
			want:     "https://tix.corp.example/api/me",
		},
		{
			name:     "bare template",
			base:     "http://10.0.0.5:3000",
			template: "login",
			resource: "health",
			want:     "http://10.0.0.5:3000/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Resource(tt.base, tt.template, tt.resource); got != tt.want {
				t.Errorf("Resource() = %q, want %q", got, tt.want)
			}
		})
	}
}
