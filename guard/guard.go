// guard/guard.go
package guard

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/fabdash/access"
	"github.com/dev-mohitbeniwal/fabdash/audit"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
)

// State is a step of one navigation attempt.
type State string

const (
	StateCheckAccess   State = "CHECK_ACCESS"
	StateWaitDirectory State = "WAIT_DIRECTORY"
	StateValidate      State = "VALIDATE"
	StateCommit        State = "COMMIT"
	StateRedirect      State = "REDIRECT"
	StateAccept        State = "ACCEPT"
)

const (
	ActionProceed  = "proceed"
	ActionRedirect = "redirect"

	ReasonNeedsFacility   = "needs_fab"
	ReasonInvalidFacility = "invalid_fab"
	ReasonAccessDenied    = "access_denied"
)

const auditTimeout = 5 * time.Second

// Directory is what the guard needs from the facility directory loader.
type Directory interface {
	Snapshot() model.DirectorySnapshot
	Ready() <-chan struct{}
}

// Committer applies the resolved facility to a session's selection.
type Committer interface {
	SetFacility(ctx context.Context, id string) (model.Selection, error)
}

type Navigation struct {
	Path        string
	SessionID   string
	Credentials access.Credentials
}

// Outcome is the result of one navigation attempt. It is always either a
// proceed or a redirect.
type Outcome struct {
	Action       string          `json:"action"`
	Location     string          `json:"location,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	Route        string          `json:"route,omitempty"`
	Facility     string          `json:"facility,omitempty"`
	Selection    model.Selection `json:"selection"`
	Trace        []State         `json:"trace"`
	Waited       time.Duration   `json:"waited"`
	UsedFallback bool            `json:"used_fallback"`
}

type Guard struct {
	checker   access.Checker
	directory Directory
	fallback  model.Fallback
	maxWait   time.Duration

	auditService audit.Service
	navigations  *prometheus.CounterVec
	auditWG      sync.WaitGroup
}

type Option func(*Guard)

// WithAudit records every navigation that reaches a facility decision.
func WithAudit(svc audit.Service) Option {
	return func(g *Guard) {
		g.auditService = svc
	}
}

// WithRegisterer counts outcomes by action and reason.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(g *Guard) {
		g.navigations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fabdash",
			Subsystem: "guard",
			Name:      "navigations_total",
			Help:      "Navigation attempts resolved by the route guard.",
		}, []string{"action", "reason"})
		reg.MustRegister(g.navigations)
	}
}

func New(checker access.Checker, directory Directory, fallback model.Fallback, maxWait time.Duration, opts ...Option) *Guard {
	g := &Guard{
		checker:   checker,
		directory: directory,
		fallback:  fallback,
		maxWait:   maxWait,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve runs the guard for one navigation. It never blocks longer than the
// configured wait plus the commit, and every path ends in proceed or redirect.
// The selection is only touched by the final commit.
func (g *Guard) Resolve(ctx context.Context, nav Navigation, committer Committer) Outcome {
	out := Outcome{Trace: []State{StateCheckAccess}}

	if g.checker.IsProtected(nav.Path) {
		decision := g.checker.HasAccess(ctx, nav.Credentials)
		if !decision.Granted {
			g.redirect(&out, ReasonAccessDenied, "")
			return g.finish(ctx, nav, out, decision.Subject)
		}
	}

	match, ok := MatchPath(nav.Path)
	if ok {
		out.Route = match.Route.Name
	}
	if !ok || !match.Route.RequiresFacility {
		out.Action = ActionProceed
		out.Trace = append(out.Trace, StateAccept)
		return out
	}

	snapshot := g.directory.Snapshot()
	if snapshot.Loading {
		out.Trace = append(out.Trace, StateWaitDirectory)
		out.Waited = g.waitForDirectory(ctx)
		snapshot = g.directory.Snapshot()
	}

	out.Trace = append(out.Trace, StateValidate)
	if match.Facility == "" {
		g.redirect(&out, ReasonNeedsFacility, "")
		return g.finish(ctx, nav, out, nav.Credentials.LastUser)
	}

	dir, usedFallback := model.Effective(snapshot, g.fallback)
	out.UsedFallback = usedFallback
	facility, ok := dir.Canonical(match.Facility)
	if !ok {
		g.redirect(&out, ReasonInvalidFacility, match.Facility)
		return g.finish(ctx, nav, out, nav.Credentials.LastUser)
	}

	out.Trace = append(out.Trace, StateCommit)
	sel, err := committer.SetFacility(ctx, facility)
	if err != nil {
		// The directory moved between validation and commit.
		logger.Warn("Commit rejected a validated facility",
			zap.String("sessionID", nav.SessionID),
			zap.String("facility", facility),
			zap.Error(err))
		g.redirect(&out, ReasonInvalidFacility, match.Facility)
		return g.finish(ctx, nav, out, nav.Credentials.LastUser)
	}

	out.Action = ActionProceed
	out.Facility = sel.Facility
	out.Selection = sel
	return g.finish(ctx, nav, out, nav.Credentials.LastUser)
}

// Wait blocks until pending audit writes are done.
func (g *Guard) Wait() {
	g.auditWG.Wait()
}

func (g *Guard) waitForDirectory(ctx context.Context) time.Duration {
	start := time.Now()
	timer := time.NewTimer(g.maxWait)
	defer timer.Stop()

	select {
	case <-g.directory.Ready():
	case <-timer.C:
		logger.Warn("Facility directory not ready, continuing with what is loaded",
			zap.Duration("maxWait", g.maxWait))
	case <-ctx.Done():
	}
	return time.Since(start)
}

func (g *Guard) redirect(out *Outcome, reason, rawFacility string) {
	out.Trace = append(out.Trace, StateRedirect)
	out.Action = ActionRedirect
	out.Reason = reason
	out.Location = RedirectLocation(reason, rawFacility)
}

// RedirectLocation builds the root URL carrying the redirect reason.
func RedirectLocation(reason, rawFacility string) string {
	q := url.Values{}
	switch reason {
	case ReasonNeedsFacility:
		q.Set("needsFab", "true")
	case ReasonInvalidFacility:
		q.Set("invalidFab", rawFacility)
	case ReasonAccessDenied:
		q.Set("accessDenied", "true")
		q.Set("reason", "insufficient_permissions")
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (g *Guard) finish(ctx context.Context, nav Navigation, out Outcome, subject string) Outcome {
	if g.navigations != nil {
		g.navigations.WithLabelValues(out.Action, out.Reason).Inc()
	}

	if out.Action == ActionRedirect {
		logger.Info("Navigation redirected",
			zap.String("sessionID", nav.SessionID),
			zap.String("path", nav.Path),
			zap.String("reason", out.Reason),
			zap.String("location", out.Location))
	} else {
		logger.Debug("Navigation committed",
			zap.String("sessionID", nav.SessionID),
			zap.String("path", nav.Path),
			zap.String("facility", out.Facility),
			zap.Duration("waited", out.Waited))
	}

	if g.auditService != nil {
		entry := audit.NavigationLog{
			Timestamp:    time.Now().UTC(),
			SessionID:    nav.SessionID,
			Subject:      subject,
			Path:         nav.Path,
			Action:       out.Action,
			Reason:       out.Reason,
			Facility:     out.Facility,
			Location:     out.Location,
			WaitedMs:     out.Waited.Milliseconds(),
			UsedFallback: out.UsedFallback,
		}
		for _, s := range out.Trace {
			entry.Trace = append(entry.Trace, string(s))
		}
		g.auditWG.Add(1)
		go func() {
			defer g.auditWG.Done()
			actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
			defer cancel()
			if err := g.auditService.LogNavigation(actx, entry); err != nil {
				logger.Warn("Failed to record navigation", zap.Error(err), zap.String("sessionID", nav.SessionID))
			}
		}()
	}
	return out
}
