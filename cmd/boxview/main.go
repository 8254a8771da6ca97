package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/boxview/internal/browser"
	"github.com/naveenspark/boxview/internal/config"
	"github.com/naveenspark/boxview/internal/tui"
	"github.com/naveenspark/boxview/pkg/client"
	"github.com/naveenspark/boxview/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var errNoAPIKey = errors.New("no API key: set BOXVIEW_API_KEY or run `boxview login`")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}
	switch args[0] {
	case "--version", "version", "-v":
		fmt.Fprintln(stdout, "boxview "+version)
		return nil
	case "help", "--help", "-h":
		printHelp(stdout)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	switch args[0] {
	case "login":
		return runLogin(cfg, stdin, stdout)
	case "logout":
		return runLogout(cfg, stdout)
	case "session":
		return runSession(ctx, cfg, logger, args[1:], stdout)
	case "document":
		return runDocument(ctx, cfg, logger, args[1:], stdout)
	case "view":
		return runView(cfg, logger, args[1:])
	default:
		return fmt.Errorf("unknown command %q (see `boxview help`)", args[0])
	}
}

func newClient(cfg config.Config, logger *slog.Logger) (*client.Client, error) {
	if cfg.APIKey == "" {
		return nil, errNoAPIKey
	}
	return client.New(cfg.APIURL, cfg.APIKey,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(logger),
	), nil
}

// documentArg returns the single positional document id after flags.
func documentArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one document id", fs.Name())
	}
	return fs.Arg(0), nil
}

func runSession(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("session", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	duration := fs.Duration("duration", cfg.SessionDuration, "how long the viewer link stays valid")
	expiresAt := fs.String("expires-at", "", "absolute expiry (RFC 3339); overrides --duration")
	open := fs.Bool("open", false, "open the viewer link in a browser")
	copyLink := fs.Bool("copy", false, "copy the viewer link to the clipboard")
	asJSON := fs.Bool("json", false, "print the session as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	docID, err := documentArg(fs)
	if err != nil {
		return err
	}

	req := client.CreateSessionRequest{DocumentID: docID, Duration: *duration}
	if *expiresAt != "" {
		t, err := time.Parse(time.RFC3339, *expiresAt)
		if err != nil {
			return fmt.Errorf("session: parse --expires-at: %w", err)
		}
		req.ExpiresAt = t
		req.Duration = 0
	}

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	s, err := c.CreateSession(ctx, req)
	if err != nil {
		if nr, ok := client.IsNotReady(err); ok {
			return fmt.Errorf("document %s is still converting; try again in %s", docID, nr.RetryAfter)
		}
		return err
	}
	logger.Info("session created", "session_id", s.ID(), "document_id", docID)

	link, err := s.ViewURL(c.BaseURL())
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	printSession(stdout, *s, link, time.Now())

	if *copyLink {
		if err := clipboard.WriteAll(link); err != nil {
			logger.Warn("copy to clipboard failed", "error", err)
		} else {
			fmt.Fprintln(stdout, "  copied to clipboard")
		}
	}
	if *open {
		if err := browser.Open(link); err != nil {
			fmt.Fprintf(stdout, "Could not open browser. Visit this URL manually:\n  %s\n", link)
		}
	}
	return nil
}

func runDocument(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("document", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	docID, err := documentArg(fs)
	if err != nil {
		return err
	}
	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	doc, err := c.GetDocument(ctx, docID)
	if err != nil {
		if client.IsStatus(err, http.StatusNotFound) {
			return fmt.Errorf("document %s not found", docID)
		}
		return err
	}
	printDocument(stdout, *doc)
	return nil
}

func runView(cfg config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	duration := fs.Duration("duration", cfg.SessionDuration, "how long the viewer link stays valid")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	docID, err := documentArg(fs)
	if err != nil {
		return err
	}
	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	app := tui.NewApp(c, docID, *duration)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(cfg config.Config, stdin io.Reader, stdout io.Writer) error {
	fmt.Fprint(stdout, "Box View API key: ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read API key: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return errors.New("login: empty API key")
	}
	if err := cfg.SaveToken(key); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nSaved to %s\n", cfg.TokenPath())
	return nil
}

func runLogout(cfg config.Config, stdout io.Writer) error {
	removed, err := cfg.RemoveToken()
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(stdout, "Already logged out.")
		return nil
	}
	fmt.Fprintln(stdout, "Logged out.")
	return nil
}

// sessionSummary renders the document id and expiry of s for display.
// Unset fields render as placeholders rather than zero values.
func sessionSummary(s domain.Session, now time.Time) (docID, expires string) {
	docID, err := s.DocumentID()
	if err != nil {
		docID = "unknown"
	}
	exp, err := s.ExpirationDate()
	if err != nil {
		return docID, "not reported"
	}
	left, _ := s.TimeLeft(now) //nolint:errcheck // expiration known above
	if left == 0 {
		return docID, exp.Format(time.RFC3339) + " (expired)"
	}
	return docID, fmt.Sprintf("%s (in %s)", exp.Format(time.RFC3339), left.Truncate(time.Second))
}
