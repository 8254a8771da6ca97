package domain

import "errors"

// Errors returned by Session accessors when a field was never populated.
var (
	ErrDocumentIDNotFound     = errors.New("session: document id not found")
	ErrExpirationDateNotFound = errors.New("session: expiration date not found")
	ErrSessionIDNotFound      = errors.New("session: session id not found")
)
