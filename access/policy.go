// access/policy.go
package access

import (
	"context"
	"net"
	"strings"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
)

const (
	// ModeAuto bypasses the check only when the server itself listens on a
	// development host. It is meant for local development.
	ModeAuto    = "auto"
	ModeBypass  = "bypass"
	ModeEnforce = "enforce"

	// DevSubject is reported when the check is bypassed.
	DevSubject = "dev_user"
	// CookieName carries the id of the last signed-in user.
	CookieName = "LASTUSER"
)

// Credentials are the request facts the policy looks at. Nothing the client
// controls decides the development bypass.
type Credentials struct {
	LastUser string
}

type Decision struct {
	Granted bool   `json:"granted"`
	Subject string `json:"subject"`
}

// Checker decides whether a session may reach protected routes.
type Checker interface {
	HasAccess(ctx context.Context, creds Credentials) Decision
	IsProtected(path string) bool
}

// CookiePolicy denies users whose id starts with a restricted prefix.
type CookiePolicy struct {
	mode               string
	bypass             bool
	restrictedPrefixes []string
	protectedPaths     []string
}

var _ Checker = (*CookiePolicy)(nil)

// NewCookiePolicy builds the policy. In auto mode the bypass is decided once,
// from listenHost (the address the server binds to) being one of devHosts. An
// unknown mode enforces.
func NewCookiePolicy(mode string, restrictedPrefixes, protectedPaths, devHosts []string, listenHost string) *CookiePolicy {
	mode = strings.ToLower(strings.TrimSpace(mode))
	var bypass bool
	switch mode {
	case ModeBypass:
		bypass = true
	case ModeAuto:
		bypass = isDevHost(listenHost, devHosts)
	case ModeEnforce:
	default:
		logger.Warn("Unknown auth mode, enforcing access checks", zap.String("mode", mode))
		mode = ModeEnforce
	}
	if bypass {
		logger.Warn("Access checks are bypassed", zap.String("mode", mode), zap.String("listenHost", listenHost))
	}
	prefixes := make([]string, 0, len(restrictedPrefixes))
	for _, p := range restrictedPrefixes {
		if p != "" {
			prefixes = append(prefixes, strings.ToLower(p))
		}
	}

	return &CookiePolicy{
		mode:               mode,
		bypass:             bypass,
		restrictedPrefixes: prefixes,
		protectedPaths:     append([]string(nil), protectedPaths...),
	}
}

func (p *CookiePolicy) HasAccess(ctx context.Context, creds Credentials) Decision {
	if p.bypass {
		return Decision{Granted: true, Subject: DevSubject}
	}

	if p.IsRestricted(creds.LastUser) {
		logger.Info("Access denied for restricted user", zap.String("subject", creds.LastUser))
		return Decision{Granted: false, Subject: creds.LastUser}
	}
	return Decision{Granted: true, Subject: creds.LastUser}
}

// IsRestricted reports whether userID starts with a restricted prefix, ignoring
// case. An empty id is not restricted.
func (p *CookiePolicy) IsRestricted(userID string) bool {
	if userID == "" {
		return false
	}
	lower := strings.ToLower(userID)
	for _, prefix := range p.restrictedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// IsProtected reports whether path contains any protected path.
func (p *CookiePolicy) IsProtected(path string) bool {
	for _, protected := range p.protectedPaths {
		if strings.Contains(path, protected) {
			return true
		}
	}
	return false
}

// Bypassed reports whether every request is granted as DevSubject.
func (p *CookiePolicy) Bypassed() bool {
	return p.bypass
}

// isDevHost reports whether host, with any port stripped, is one of devHosts.
// An empty host means all interfaces and is never a development host.
func isDevHost(host string, devHosts []string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.Trim(host, "[]"))
	if host == "" {
		return false
	}
	for _, dev := range devHosts {
		if strings.EqualFold(dev, host) {
			return true
		}
	}
	return false
}
