package version

import "testing"

func TestIsDevelopment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    string
		want bool
	}{
		{
			name: "devel",
			v:    "devel",
			want: true,
		},
		{
			name: "unknown",
			v:    "unknown",
			want: true,
		},
		{
			name: "empty",
			v:    "",
			want: true,
		},
		{
			name: "dirty build",
			v:    "1.2.0-dirty",
			want: true,
		},
		{
			name: "pseudo version",
			v:    "1.2.0-0.abc123",
			want: true,
		},
		{
			name: "release version",
			v:    "1.2.0",
			want: false,
		},
		{
			name: "release version with v prefix",
			v:    "v1.2.0",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsDevelopment(tt.v); got != tt.want {
				t.Errorf("IsDevelopment(%q) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
