// Package dokuwiki is a client for the DokuWiki XML-RPC API
// (https://www.dokuwiki.org/devel:xmlrpc).
//
// Every remote command passes through a single invocation chokepoint,
// Client.Invoke, which normalizes the server's heterogeneous error
// signaling: two fault codes that actually mean "no results" are
// translated into empty collections, and one known response-framing bug
// on successful writes is translated into a clean acknowledgement. All
// other faults surface as *Error.
package dokuwiki

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/wikitools/go-dokuwiki/metrics"
	"github.com/wikitools/go-dokuwiki/xmlrpc"
)

// rpcPath is where DokuWiki exposes its XML-RPC endpoint, relative to the
// wiki root.
const rpcPath = "/lib/exe/xmlrpc.php"

var urlRE = regexp.MustCompile(`^(?P<proto>https?)://(?P<host>[^/]*)(?P<uri>/.*)?$`)

// Client is an established binding to one remote wiki. It owns exactly
// one transport connection and is constructed once; after construction
// the only mutable state is the transport's cookie jar, which the server
// updates on its own responses.
type Client struct {
	config *Config
	rpc    *xmlrpc.Client
	logger *slog.Logger

	// Resource groups. They borrow the client and never outlive it.
	Pages   *Pages
	Medias  *Medias
	Structs *Structs
}

// New connects to the wiki described by config. The URL is validated
// before any network activity; a rejected login or an HTTP 401 on the
// liveness probe fails construction with *AuthenticationError.
func New(ctx context.Context, config *Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := urlRE.FindStringSubmatch(config.URL)
	if m == nil {
		return nil, &ConfigError{Field: "url", Value: config.URL, Message: "expected PROTO://HOST[/PATH]"}
	}
	proto, host, uri := m[1], m[2], m[3]

	opts := []xmlrpc.Option{
		xmlrpc.WithLogger(logger),
		xmlrpc.WithUserAgent(config.UserAgent),
	}
	if config.Timeout > 0 {
		opts = append(opts, xmlrpc.WithTimeout(config.Timeout))
	}

	endpoint := url.URL{
		Scheme: proto,
		Host:   host,
		Path:   uri + rpcPath,
	}
	if config.CookieAuth {
		opts = append(opts, xmlrpc.WithCookies())
	} else if config.HasCredentials() {
		endpoint.User = url.UserPassword(config.User, config.Password)
	}

	c := &Client{
		config: config,
		rpc:    xmlrpc.NewClient(endpoint.String(), opts...),
		logger: logger,
	}

	// Cookie-based sessions need an explicit login round trip.
	if config.CookieAuth {
		ok, err := c.Login(ctx, config.User, config.Password)
		if err != nil {
			return nil, err
		}
		if !ok {
			metrics.RecordAuthFailure("login_rejected")
			return nil, &AuthenticationError{Reason: "invalid login or password"}
		}
	}

	// Liveness probe; a 401 here means the embedded credentials were
	// rejected.
	if _, err := c.Version(ctx); err != nil {
		var protoErr *xmlrpc.ProtocolError
		if errors.As(err, &protoErr) && protoErr.Status == 401 {
			metrics.RecordAuthFailure("http_unauthorized")
			return nil, &AuthenticationError{Reason: "invalid login or password"}
		}
		return nil, err
	}

	c.Pages = &Pages{client: c}
	c.Medias = &Medias{client: c}
	c.Structs = &Structs{client: c}

	logger.Debug("Connected to wiki", "url", config.URL, "cookie_auth", config.CookieAuth)
	return c, nil
}

// Version returns the DokuWiki version of the remote wiki.
func (c *Client) Version(ctx context.Context) (string, error) {
	v, err := c.Invoke(ctx, "dokuwiki.getVersion", nil, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// Time returns the current time at the remote wiki as a Unix timestamp.
func (c *Client) Time(ctx context.Context) (int, error) {
	v, err := c.Invoke(ctx, "dokuwiki.getTime", nil, nil)
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

// XMLRPCVersion returns the DokuWiki-specific XML-RPC interface version.
// This is independent of the supported standard API version reported by
// XMLRPCSupportedVersion.
func (c *Client) XMLRPCVersion(ctx context.Context) (string, error) {
	v, err := c.Invoke(ctx, "dokuwiki.getXMLRPCAPIVersion", nil, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// XMLRPCSupportedVersion returns the supported standard RPC API version.
func (c *Client) XMLRPCSupportedVersion(ctx context.Context) (string, error) {
	v, err := c.Invoke(ctx, "wiki.getRPCVersionSupported", nil, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// Title returns the title of the wiki.
func (c *Client) Title(ctx context.Context) (string, error) {
	v, err := c.Invoke(ctx, "dokuwiki.getTitle", nil, nil)
	if err != nil {
		return "", err
	}
	return toString(v)
}

// Login authenticates against the wiki and reports whether the
// credentials were accepted.
func (c *Client) Login(ctx context.Context, user, password string) (bool, error) {
	v, err := c.Invoke(ctx, "dokuwiki.login", []any{user, password}, nil)
	if err != nil {
		return false, err
	}
	return toBool(v)
}

// AddACL adds an ACL rule restricting scope to user (use @group syntax
// for groups) at the given permission level. It reports whether the rule
// was added.
func (c *Client) AddACL(ctx context.Context, scope, user, permission string) (bool, error) {
	v, err := c.Invoke(ctx, "plugin.acl.addAcl", []any{scope, user, permission}, nil)
	if err != nil {
		return false, err
	}
	return toBool(v)
}

// DelACL deletes any ACL rule matching scope and user. It reports
// whether a rule was removed.
func (c *Client) DelACL(ctx context.Context, scope, user string) (bool, error) {
	v, err := c.Invoke(ctx, "plugin.acl.delAcl", []any{scope, user}, nil)
	if err != nil {
		return false, err
	}
	return toBool(v)
}
