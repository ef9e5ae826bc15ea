package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// Scheme is the scheme prefix of a basic authentication header.
	Scheme = "Basic"

	// DefaultRealm is advertised in a challenge when Config.Realm is empty.
	DefaultRealm = "shotglass"
)

// A Config configures a Gate.
type Config struct {
	Enabled  bool
	Username string
	Password string

	// Realm is advertised to clients in the challenge of a rejection.
	Realm string
}

// A Gate authorizes requests against the credentials of a Config.
//
// A Gate is immutable and safe for concurrent use.
type Gate struct {
	cfg Config
}

// NewGate constructs a *Gate from cfg.
//
// If cfg is enabled, both its Username and Password must be set,
// else ErrBadConfig returns.
func NewGate(cfg Config) (*Gate, error) {
	if cfg.Enabled && (cfg.Username == "" || cfg.Password == "") {
		return nil, fmt.Errorf("%w: basic auth enabled without username and password", ErrBadConfig)
	}

	if cfg.Realm == "" {
		cfg.Realm = DefaultRealm
	}

	return &Gate{cfg: cfg}, nil
}

// Enabled asserts whether g checks credentials at all.
func (g *Gate) Enabled() bool { return g != nil && g.cfg.Enabled }

// Authorize asserts whether header, the value of an Authorization header,
// carries the configured credentials.
//
// Authorize always returns true when g is not enabled.
func (g *Gate) Authorize(header string) bool {
	return g.Check(header) == nil
}

// Check is Authorize, reporting why a header was rejected.
// Every rejection wraps ErrRejected.
func (g *Gate) Check(header string) error {
	if !g.Enabled() {
		return nil
	}

	if header == "" {
		return fmt.Errorf("%w: no credentials", ErrRejected)
	}

	user, pass, err := ParseHeader(header)
	if err != nil {
		return err
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(g.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(g.cfg.Password)) == 1
	if !userOK || !passOK {
		return fmt.Errorf("%w: credentials do not match", ErrRejected)
	}

	return nil
}

// Challenge is the WWW-Authenticate header value sent with a rejection.
func (g *Gate) Challenge() string {
	realm := DefaultRealm
	if g != nil {
		realm = g.cfg.Realm
	}

	return fmt.Sprintf(`%s realm=%q, charset="UTF-8"`, Scheme, realm)
}

// ParseHeader decodes the username and password of a basic authentication header.
func ParseHeader(header string) (string, string, error) {
	prefix := Scheme + " "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", fmt.Errorf("%w: not %s scheme", ErrRejected, Scheme)
	}

	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", fmt.Errorf("%w: malformed credentials: %s", ErrRejected, err)
	}

	user, pass, ok := strings.Cut(string(b), ":")
	if !ok {
		return "", "", fmt.Errorf("%w: credentials without separator", ErrRejected)
	}

	return user, pass, nil
}
