package browser

import (
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	const link = "https://view-api.box.com/1/sessions/abc/view"
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := command(tt.goos, link)
			if err != nil {
				t.Fatalf("command() error: %v", err)
			}
			if !strings.HasSuffix(cmd.Path, tt.want) && cmd.Args[0] != tt.want {
				t.Errorf("command path = %q, want %q", cmd.Path, tt.want)
			}
			if got := cmd.Args[len(cmd.Args)-1]; got != link {
				t.Errorf("last arg = %q, want %q", got, link)
			}
		})
	}
}

func TestCommandRejects(t *testing.T) {
	tests := []struct {
		name string
		goos string
		url  string
	}{
		{"file scheme", "linux", "file:///etc/passwd"},
		{"no host", "linux", "https://"},
		{"relative", "linux", "/1/sessions/abc/view"},
		{"unknown os", "plan9", "https://view-api.box.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := command(tt.goos, tt.url); err == nil {
				t.Errorf("command(%q, %q) expected error", tt.goos, tt.url)
			}
		})
	}
}
