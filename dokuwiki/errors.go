package dokuwiki

import (
	"errors"
	"fmt"
)

// Error is the normalized remote error: every fault the server reports
// that is not one of the benign empty-result cases surfaces as this type,
// carrying the original fault code and message for diagnostics.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("dokuwiki: fault %d: %s", e.Code, e.Message)
	}
	return "dokuwiki: " + e.Message
}

// ConfigError indicates the client was constructed with bad settings.
// It is reported before any network activity.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dokuwiki: invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// AuthenticationError indicates the wiki rejected the configured
// credentials during connection bootstrap.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "dokuwiki: authentication failed: " + e.Reason
}

// ErrNoDataentry is returned by ParseDataentry when the content contains
// no dataentry start marker.
var ErrNoDataentry = errors.New("dokuwiki: no dataentry found")
