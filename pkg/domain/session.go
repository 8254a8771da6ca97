package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Session is one document-viewing session: the document it points at and
// the time its viewer link stops working. A zero Session is empty; reading
// an unset field returns an error instead of a zero value.
//
// A Session belongs to a single request and is not safe for shared mutation.
type Session struct {
	id             string
	documentID     string
	expirationDate time.Time
}

// SessionOption populates a field of a new Session.
type SessionOption func(*Session)

// WithSessionID sets the identifier assigned by the viewing API.
func WithSessionID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// WithDocumentID sets the document the session views.
func WithDocumentID(id string) SessionOption {
	return func(s *Session) { s.documentID = id }
}

// WithExpirationDate sets when the session's links expire.
func WithExpirationDate(t time.Time) SessionOption {
	return func(s *Session) { s.expirationDate = t }
}

// NewSession builds a Session. With no options it is empty.
func NewSession(opts ...SessionOption) Session {
	var s Session
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ID returns the API session identifier, or "" if none was assigned.
func (s Session) ID() string {
	return s.id
}

// DocumentID returns the document identifier.
// It returns ErrDocumentIDNotFound when no identifier has been set.
func (s Session) DocumentID() (string, error) {
	if s.documentID == "" {
		return "", ErrDocumentIDNotFound
	}
	return s.documentID, nil
}

// ExpirationDate returns when the session's links expire.
// It returns ErrExpirationDateNotFound when no expiration has been set.
func (s Session) ExpirationDate() (time.Time, error) {
	if s.expirationDate.IsZero() {
		return time.Time{}, ErrExpirationDateNotFound
	}
	return s.expirationDate, nil
}

// Expired reports whether now is at or past the expiration date.
func (s Session) Expired(now time.Time) (bool, error) {
	exp, err := s.ExpirationDate()
	if err != nil {
		return false, err
	}
	return !now.Before(exp), nil
}

// TimeLeft returns the time remaining before expiry, never negative.
func (s Session) TimeLeft(now time.Time) (time.Duration, error) {
	exp, err := s.ExpirationDate()
	if err != nil {
		return 0, err
	}
	if d := exp.Sub(now); d > 0 {
		return d, nil
	}
	return 0, nil
}

// ViewURL returns the URL of the HTML viewer for this session.
func (s Session) ViewURL(baseURL string) (string, error) {
	return s.sessionURL(baseURL, "view")
}

// AssetsURL returns the URL of the converted document assets for this session.
func (s Session) AssetsURL(baseURL string) (string, error) {
	return s.sessionURL(baseURL, "assets")
}

func (s Session) sessionURL(baseURL, suffix string) (string, error) {
	if s.id == "" {
		return "", ErrSessionIDNotFound
	}
	return fmt.Sprintf("%s/1/sessions/%s/%s", strings.TrimRight(baseURL, "/"), s.id, suffix), nil
}

// sessionPayload is the wire shape of a session resource.
type sessionPayload struct {
	Type      string     `json:"type,omitempty"`
	ID        string     `json:"id,omitempty"`
	Document  *docRef    `json:"document,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type docRef struct {
	ID string `json:"id"`
}

// UnmarshalJSON decodes a session resource. Absent fields stay unset.
func (s *Session) UnmarshalJSON(data []byte) error {
	var p sessionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	*s = Session{id: p.ID}
	if p.Document != nil {
		s.documentID = p.Document.ID
	}
	if p.ExpiresAt != nil {
		s.expirationDate = *p.ExpiresAt
	}
	return nil
}

// MarshalJSON encodes the session in the same shape UnmarshalJSON reads.
func (s Session) MarshalJSON() ([]byte, error) {
	p := sessionPayload{Type: "session", ID: s.id}
	if s.documentID != "" {
		p.Document = &docRef{ID: s.documentID}
	}
	if !s.expirationDate.IsZero() {
		exp := s.expirationDate
		p.ExpiresAt = &exp
	}
	return json.Marshal(p)
}
