package main

import (
	"fmt"
	"io"
	"time"

	"github.com/naveenspark/boxview/pkg/domain"
)

// ANSI color constants for plain command output (no lipgloss, runs outside the TUI).
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiSky   = "\033[38;2;74;168;240m"  // #4aa8f0
	ansiGreen = "\033[38;2;52;212;116m"  // #34d474
	ansiGold  = "\033[38;2;212;168;68m"  // #d4a844
	ansiRed   = "\033[38;2;180;85;85m"   // #b45555
	ansiSlate = "\033[38;2;136;144;160m" // #8890a0
)

func printHelp(w io.Writer) {
	fmt.Fprint(w, `boxview: expiring viewer links for Box View documents

Usage:
  boxview session <document-id> [--duration 60m | --expires-at RFC3339] [--open] [--copy] [--json]
  boxview document <document-id>
  boxview view <document-id> [--duration 60m]
  boxview login        save an API key to ~/.boxview/token
  boxview logout       remove the saved API key
  boxview version

Environment:
  BOXVIEW_API_KEY            API key (overrides the saved token)
  BOXVIEW_API_URL            API base URL (default https://view-api.box.com)
  BOXVIEW_SESSION_DURATION   default link lifetime (default 60m)
  BOXVIEW_TIMEOUT            HTTP timeout (default 30s)
  BOXVIEW_LOG_LEVEL          debug, info, warn or error (default warn)
`)
}

func printField(w io.Writer, label, color, value string) {
	fmt.Fprintf(w, "  %s%-9s%s %s%s%s\n", ansiSlate, label, ansiReset, color, value, ansiReset)
}

// printSession prints the viewer link and its expiry.
func printSession(w io.Writer, s domain.Session, link string, now time.Time) {
	docID, expires := sessionSummary(s, now)
	fmt.Fprintln(w)
	printField(w, "document", ansiBold, docID)
	printField(w, "session", ansiBold, s.ID())
	printField(w, "link", ansiSky, link)
	color := ansiGreen
	if expired, err := s.Expired(now); err != nil {
		color = ansiSlate
	} else if expired {
		color = ansiRed
	}
	printField(w, "expires", color, expires)
	fmt.Fprintln(w)
}

// printDocument prints document metadata with a colored status.
func printDocument(w io.Writer, d domain.Document) {
	color := ansiGold
	switch d.Status {
	case domain.DocumentDone:
		color = ansiGreen
	case domain.DocumentError:
		color = ansiRed
	}
	fmt.Fprintln(w)
	printField(w, "document", ansiBold, d.ID)
	if d.Name != "" {
		printField(w, "name", "", d.Name)
	}
	printField(w, "status", color, string(d.Status))
	if !d.CreatedAt.IsZero() {
		printField(w, "created", "", d.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(w)
}
