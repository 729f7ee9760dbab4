package logger

import (
	"strings"
	"testing"
)

func TestRedactToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty", token: "", want: ""},
		{name: "short token fully hidden", token: "abc", want: "[redacted]"},
		{name: "long token keeps prefix", token: "eyJhbGciOiJIUzI1NiJ9.payload.sig", want: "eyJhbG...[redacted]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RedactToken(tt.token); got != tt.want {
				t.Errorf("RedactToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	if got := SanitizePath("/api/Trips/abc\x00\x1b"); got != "/api/Trips/abc" {
		t.Errorf("control characters should be stripped, got %q", got)
	}

	long := "/" + strings.Repeat("a", MaxPathLength*2)
	if got := SanitizePath(long); len(got) != MaxPathLength {
		t.Errorf("long path should truncate to %d, got %d", MaxPathLength, len(got))
	}

	if got := SanitizePath(""); got != "" {
		t.Errorf("empty path should stay empty, got %q", got)
	}
}
