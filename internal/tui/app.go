package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/boxview/internal/browser"
	"github.com/naveenspark/boxview/pkg/client"
	"github.com/naveenspark/boxview/pkg/domain"
)

// SessionCreator creates viewing sessions. *client.Client satisfies it.
type SessionCreator interface {
	CreateSession(ctx context.Context, req client.CreateSessionRequest) (*domain.Session, error)
	BaseURL() string
}

// sessionLoadedMsg carries the result of CreateSession.
type sessionLoadedMsg struct {
	session *domain.Session
	err     error
}

type copyResultMsg struct{ err error }
type openResultMsg struct{ err error }

// App is the root Bubbletea model for the session viewer.
type App struct {
	creator    SessionCreator
	documentID string
	duration   time.Duration

	session *domain.Session
	viewURL string
	loading bool
	err     string
	status  string

	now    time.Time
	clock  func() time.Time
	width  int
	height int
	frame  int

	copyText func(string) error
	openURL  func(string) error
}

// NewApp creates a viewer for one document. It requests a session on start
// and again whenever the user refreshes.
func NewApp(creator SessionCreator, documentID string, duration time.Duration) App {
	return App{
		creator:    creator,
		documentID: documentID,
		duration:   duration,
		loading:    true,
		clock:      time.Now,
		now:        time.Now(),
		copyText:   clipboard.WriteAll,
		openURL:    browser.Open,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadSession(), tickCmd())
}

func (a App) loadSession() tea.Cmd {
	c := a.creator
	req := client.CreateSessionRequest{DocumentID: a.documentID, Duration: a.duration}
	return func() tea.Msg {
		s, err := c.CreateSession(context.Background(), req)
		return sessionLoadedMsg{session: s, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.frame++
		a.now = a.clock()
		return a, tickCmd()

	case sessionLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = describeError(msg.err)
			return a, nil
		}
		if msg.session == nil {
			a.err = "empty response from API"
			return a, nil
		}
		a.err = ""
		a.session = msg.session
		a.viewURL = ""
		if u, err := msg.session.ViewURL(a.creator.BaseURL()); err == nil {
			a.viewURL = u
		} else {
			a.err = err.Error()
		}
		return a, nil

	case copyResultMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			a.status = "copied!"
		}
		return a, nil

	case openResultMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("open failed: %v", msg.err)
		} else {
			a.status = "opened in browser"
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		case "r":
			if a.loading {
				return a, nil
			}
			a.loading = true
			a.status = ""
			return a, a.loadSession()
		case "c":
			if a.usableURL() {
				link, copyText := a.viewURL, a.copyText
				return a, func() tea.Msg {
					return copyResultMsg{err: copyText(link)}
				}
			}
		case "o":
			if a.usableURL() {
				link, openURL := a.viewURL, a.openURL
				return a, func() tea.Msg {
					return openResultMsg{err: openURL(link)}
				}
			}
		}
	}
	return a, nil
}

// usableURL reports whether the current link exists and has not expired.
// A session with no expiration is treated as live.
func (a App) usableURL() bool {
	if a.viewURL == "" || a.session == nil {
		return false
	}
	expired, err := a.session.Expired(a.now)
	return err != nil || !expired
}

func describeError(err error) string {
	if nr, ok := client.IsNotReady(err); ok {
		if nr.RetryAfter > 0 {
			return fmt.Sprintf("document is still converting, press r in %s", formatRemaining(nr.RetryAfter))
		}
		return "document is still converting, press r to retry"
	}
	if client.IsStatus(err, 401) {
		return "API key rejected, run boxview login"
	}
	if client.IsStatus(err, 404) {
		return "document not found"
	}
	if errors.Is(err, domain.ErrDocumentIDNotFound) {
		return "no document id given"
	}
	return err.Error()
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	pad := (a.width - lipgloss.Width(logo)) / 2
	if pad < 0 {
		pad = 0
	}
	header := strings.Repeat(" ", pad) + logo

	cardWidth := min(76, a.width-4)
	if cardWidth < 40 {
		cardWidth = 40
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder
	sb.WriteString(row("document", valueStyle.Render(a.documentID)))

	switch {
	case a.err != "":
		sb.WriteString("\n" + errStyle.Render(a.err))
	case a.session == nil:
		sb.WriteString("\n" + dimStyle.Render("creating session..."))
	default:
		sb.WriteString(a.sessionRows(cardWidth - 16))
	}

	help := " " + helpEntry("c", "copy") + "  " + helpEntry("o", "open") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	status := ""
	if a.status != "" {
		status = " " + okStyle.Render(a.status)
	} else if a.loading && a.session != nil {
		status = " " + dimStyle.Render("refreshing...")
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", header, card.Render(sb.String()), help, status)
}

func (a App) sessionRows(linkWidth int) string {
	s := a.session
	var sb strings.Builder
	sb.WriteString(row("session", valueStyle.Render(s.ID())))
	sb.WriteString(row("link", linkStyle.Render(truncStr(a.viewURL, linkWidth))))

	exp, err := s.ExpirationDate()
	if errors.Is(err, domain.ErrExpirationDateNotFound) {
		sb.WriteString(row("expires", dimStyle.Render("not reported")))
		return sb.String()
	}
	when := exp.Local().Format("2006-01-02 15:04:05 MST")
	left, _ := s.TimeLeft(a.now) //nolint:errcheck // expiration known above
	switch {
	case left <= 0:
		sb.WriteString(row("expires", errStyle.Render(when+"  expired")))
	case left < 5*time.Minute:
		sb.WriteString(row("expires", warnStyle.Render(when+"  in "+formatRemaining(left))))
	default:
		sb.WriteString(row("expires", valueStyle.Render(when)+"  "+dimStyle.Render("in "+formatRemaining(left))))
	}
	return sb.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}
