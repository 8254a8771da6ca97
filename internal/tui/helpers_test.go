package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0s"},
		{0, "0s"},
		{500 * time.Millisecond, "0s"},
		{12 * time.Second, "12s"},
		{4*time.Minute + 5*time.Second, "4m05s"},
		{time.Hour + 2*time.Minute + 30*time.Second, "1h02m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatRemaining(tt.in); got != tt.want {
				t.Errorf("formatRemaining(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("abcdef", 4); got != "abc…" {
		t.Errorf("truncStr = %q, want %q", got, "abc…")
	}
	if got := truncStr("abc", 4); got != "abc" {
		t.Errorf("truncStr = %q, want %q", got, "abc")
	}
}

func TestRenderShimmerLogo(t *testing.T) {
	for _, frame := range []int{0, 7, 1000} {
		logo := renderShimmerLogo(frame)
		for _, ch := range "BOXVIEW" {
			if !strings.ContainsRune(logo, ch) {
				t.Errorf("frame %d: logo missing %q: %q", frame, ch, logo)
			}
		}
	}
}
