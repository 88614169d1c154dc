package dokuwiki

import (
	"errors"
	"os"
	"time"
)

// Config holds DokuWiki connection settings.
type Config struct {
	// URL of the wiki in the form PROTO://HOST[/PATH]
	// (e.g. https://wiki.example.com/dokuwiki). The XML-RPC endpoint
	// path is appended automatically.
	URL string

	// User is the wiki login.
	User string

	// Password for the wiki login.
	Password string

	// CookieAuth selects cookie-based session authentication instead of
	// embedding the credentials in the endpoint URI.
	CookieAuth bool

	// Timeout for RPC round trips.
	Timeout time.Duration

	// UserAgent identifies the client to the wiki.
	UserAgent string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	rawURL := os.Getenv("DOKUWIKI_URL")
	if rawURL == "" {
		return nil, errors.New("DOKUWIKI_URL environment variable is required")
	}

	timeout := 30 * time.Second
	if t := os.Getenv("DOKUWIKI_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	userAgent := os.Getenv("DOKUWIKI_USER_AGENT")
	if userAgent == "" {
		userAgent = "go-dokuwiki/1.0 (https://github.com/wikitools/go-dokuwiki)"
	}

	return &Config{
		URL:        rawURL,
		User:       os.Getenv("DOKUWIKI_USER"),
		Password:   os.Getenv("DOKUWIKI_PASSWORD"),
		CookieAuth: os.Getenv("DOKUWIKI_COOKIE_AUTH") == "true",
		Timeout:    timeout,
		UserAgent:  userAgent,
	}, nil
}

// HasCredentials returns true if a login and password are configured.
func (c *Config) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}
