package guard_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/fabdash/access"
	"github.com/dev-mohitbeniwal/fabdash/audit"
	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/guard"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/selection"
	"github.com/dev-mohitbeniwal/fabdash/test/mock"
)

type fakeDirectory struct {
	mu        sync.Mutex
	snapshot  model.DirectorySnapshot
	ready     chan struct{}
	readyOnce sync.Once
}

func loadingDirectory() *fakeDirectory {
	return &fakeDirectory{snapshot: model.DirectorySnapshot{Loading: true}, ready: make(chan struct{})}
}

func loadedDirectory(dir model.FacilityDirectory) *fakeDirectory {
	f := loadingDirectory()
	f.load(dir)
	return f
}

func (f *fakeDirectory) Snapshot() model.DirectorySnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

func (f *fakeDirectory) Ready() <-chan struct{} {
	return f.ready
}

func (f *fakeDirectory) load(dir model.FacilityDirectory) {
	f.mu.Lock()
	f.snapshot = model.DirectorySnapshot{Directory: dir, Loaded: true, LoadedAt: time.Now()}
	f.mu.Unlock()
	f.readyOnce.Do(func() { close(f.ready) })
}

var (
	scenarioDirectory = model.FacilityDirectory{"R3": {"CD-SEM"}, "M16": {"HV-SEM"}}
	fallback          = model.Fallback{
		Facilities: []string{"R3", "M16", "M14", "M15", "M11", "M10"},
		Tools:      []string{"CD-SEM", "HV-SEM"},
	}
	regularUser = access.Credentials{LastUser: "a12345"}
)

func enforcePolicy() *access.CookiePolicy {
	return access.NewCookiePolicy(access.ModeEnforce, []string{"x"},
		[]string{"/equipment-status", "/device-statistics"}, []string{"localhost", "127.0.0.1"}, "")
}

func newSelection(dir selection.Directory) *selection.State {
	return selection.NewState(context.Background(), "s1", selection.NewMemoryStore(), dir, fallback, nil)
}

func TestResolve_ScenarioA_CommitsCanonicalSelection(t *testing.T) {
	dir := loadedDirectory(scenarioDirectory)
	g := guard.New(enforcePolicy(), dir, fallback, 5*time.Second)
	state := newSelection(dir)

	out := g.Resolve(context.Background(), guard.Navigation{Path: "/r3/equipment-status", SessionID: "s1", Credentials: regularUser}, state)

	assert.Equal(t, guard.ActionProceed, out.Action)
	assert.Equal(t, "equipment-status", out.Route)
	assert.Equal(t, "R3", out.Facility)
	assert.Equal(t, model.Selection{Facility: "R3", Tool: "CD-SEM"}, out.Selection)
	assert.Equal(t, model.Selection{Facility: "R3", Tool: "CD-SEM"}, state.Current())
	assert.Equal(t, []guard.State{guard.StateCheckAccess, guard.StateValidate, guard.StateCommit}, out.Trace)
	assert.False(t, out.UsedFallback)
	assert.Zero(t, out.Waited)
}

func TestResolve_ScenarioB_UnknownFacilityRedirects(t *testing.T) {
	dir := loadedDirectory(scenarioDirectory)
	g := guard.New(enforcePolicy(), dir, fallback, 5*time.Second)
	state := newSelection(dir)
	_, err := state.SetFacility(context.Background(), "M16")
	require.NoError(t, err)

	out := g.Resolve(context.Background(), guard.Navigation{Path: "/Z9/equipment-status", Credentials: regularUser}, state)

	assert.Equal(t, guard.ActionRedirect, out.Action)
	assert.Equal(t, guard.ReasonInvalidFacility, out.Reason)
	assert.Equal(t, "/?invalidFab=Z9", out.Location)
	assert.Equal(t, "M16", state.Current().Facility, "guard never clears the selection")
}

func TestResolve_ScenarioC_MissingFacilityRedirects(t *testing.T) {
	dir := loadedDirectory(scenarioDirectory)
	g := guard.New(enforcePolicy(), dir, fallback, 5*time.Second)
	committer := new(mock.MockCommitter)

	out := g.Resolve(context.Background(), guard.Navigation{Path: "/equipment-status", Credentials: regularUser}, committer)

	assert.Equal(t, guard.ActionRedirect, out.Action)
	assert.Equal(t, guard.ReasonNeedsFacility, out.Reason)
	assert.Equal(t, "/?needsFab=true", out.Location)
	assert.Equal(t, []guard.State{guard.StateCheckAccess, guard.StateValidate, guard.StateRedirect}, out.Trace)
	committer.AssertNotCalled(t, "SetFacility", testifymock.Anything, testifymock.Anything)
}

func TestResolve_ScenarioD_AccessDenied(t *testing.T) {
	for _, path := range []string{"/R3/equipment-status", "/Z9/device-statistics", "/equipment-status"} {
		t.Run(path, func(t *testing.T) {
			checker := new(mock.MockChecker)
			checker.On("IsProtected", path).Return(true)
			checker.On("HasAccess", testifymock.Anything, regularUser).Return(access.Decision{Granted: false, Subject: "a12345"})
			committer := new(mock.MockCommitter)

			g := guard.New(checker, loadedDirectory(scenarioDirectory), fallback, 5*time.Second)
			out := g.Resolve(context.Background(), guard.Navigation{Path: path, Credentials: regularUser}, committer)

			assert.Equal(t, guard.ActionRedirect, out.Action)
			assert.Equal(t, guard.ReasonAccessDenied, out.Reason)
			assert.Equal(t, "/?accessDenied=true&reason=insufficient_permissions", out.Location)
			assert.Equal(t, []guard.State{guard.StateCheckAccess, guard.StateRedirect}, out.Trace)
			committer.AssertNotCalled(t, "SetFacility", testifymock.Anything, testifymock.Anything)
			checker.AssertExpectations(t)
		})
	}
}

func TestResolve_RestrictedCookieUser(t *testing.T) {
	dir := loadedDirectory(scenarioDirectory)
	g := guard.New(enforcePolicy(), dir, fallback, 5*time.Second)
	state := newSelection(dir)

	out := g.Resolve(context.Background(), guard.Navigation{
		Path:        "/R3/equipment-status",
		Credentials: access.Credentials{LastUser: "X999"},
	}, state)
	assert.Equal(t, guard.ReasonAccessDenied, out.Reason)
	assert.True(t, state.Current().IsEmpty())

	out = g.Resolve(context.Background(), guard.Navigation{
		Path:        "/R3/recipe-search",
		Credentials: access.Credentials{LastUser: "X999"},
	}, state)
	assert.Equal(t, guard.ActionProceed, out.Action, "unprotected routes skip the access check")
}

func TestResolve_RoutesWithoutFacility(t *testing.T) {
	committer := new(mock.MockCommitter)
	g := guard.New(enforcePolicy(), loadingDirectory(), fallback, time.Hour)

	for _, path := range []string{"/", "/about", "/R3/unknown-view", "/a/b/c"} {
		start := time.Now()
		out := g.Resolve(context.Background(), guard.Navigation{Path: path}, committer)
		assert.Equal(t, guard.ActionProceed, out.Action, path)
		assert.Equal(t, []guard.State{guard.StateCheckAccess, guard.StateAccept}, out.Trace, path)
		assert.Less(t, time.Since(start), time.Second, "no directory wait for %s", path)
	}
	committer.AssertNotCalled(t, "SetFacility", testifymock.Anything, testifymock.Anything)
}

func TestResolve_BoundedWaitFallsBack(t *testing.T) {
	dir := loadingDirectory()
	maxWait := 50 * time.Millisecond
	g := guard.New(enforcePolicy(), dir, fallback, maxWait)
	state := newSelection(dir)

	start := time.Now()
	out := g.Resolve(context.Background(), guard.Navigation{Path: "/m14/fail-issue", Credentials: regularUser}, state)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, out.Waited, maxWait)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, guard.ActionProceed, out.Action)
	assert.True(t, out.UsedFallback)
	assert.Equal(t, "M14", state.Current().Facility)
	assert.Contains(t, out.Trace, guard.StateWaitDirectory)

	out = g.Resolve(context.Background(), guard.Navigation{Path: "/Q1/fail-issue"}, state)
	assert.Equal(t, "/?invalidFab=Q1", out.Location)
}

func TestResolve_WaitEndsWhenDirectoryLoads(t *testing.T) {
	dir := loadingDirectory()
	g := guard.New(enforcePolicy(), dir, fallback, 10*time.Second)
	state := newSelection(dir)

	go func() {
		time.Sleep(20 * time.Millisecond)
		dir.load(model.FacilityDirectory{"P1": {"CD-SEM"}})
	}()

	out := g.Resolve(context.Background(), guard.Navigation{Path: "/p1/skewvoir"}, state)
	assert.Equal(t, guard.ActionProceed, out.Action)
	assert.Equal(t, "P1", out.Facility)
	assert.False(t, out.UsedFallback)
	assert.Less(t, out.Waited, 5*time.Second)
}

func TestResolve_CancelledContextStopsWaiting(t *testing.T) {
	dir := loadingDirectory()
	g := guard.New(enforcePolicy(), dir, fallback, time.Hour)
	committer := new(mock.MockCommitter)
	committer.On("SetFacility", testifymock.Anything, "R3").Return(model.Selection{Facility: "R3"}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	out := g.Resolve(ctx, guard.Navigation{Path: "/R3"}, committer)
	assert.Equal(t, guard.ActionProceed, out.Action)
	assert.Equal(t, "fab-main", out.Route)
	assert.Less(t, out.Waited, time.Second)
}

func TestResolve_CommitFailureRedirects(t *testing.T) {
	committer := new(mock.MockCommitter)
	committer.On("SetFacility", testifymock.Anything, "R3").
		Return(model.Selection{}, fab_errors.ErrFacilityNotFound)

	g := guard.New(enforcePolicy(), loadedDirectory(scenarioDirectory), fallback, time.Second)
	out := g.Resolve(context.Background(), guard.Navigation{Path: "/r3/recipe-search"}, committer)

	assert.Equal(t, guard.ReasonInvalidFacility, out.Reason)
	assert.Equal(t, "/?invalidFab=r3", out.Location)
	committer.AssertExpectations(t)
}

func TestResolve_ConcurrentNavigationsWhileLoading(t *testing.T) {
	dir := loadingDirectory()
	g := guard.New(enforcePolicy(), dir, fallback, 5*time.Second)
	state := newSelection(dir)

	paths := []string{"/r3/equipment-status", "/Z9/equipment-status", "/equipment-status", "/m16/device-statistics"}
	outcomes := make([]guard.Outcome, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			outcomes[i] = g.Resolve(context.Background(), guard.Navigation{Path: path, Credentials: regularUser}, state)
		}(i, path)
	}

	time.Sleep(10 * time.Millisecond)
	dir.load(scenarioDirectory)
	wg.Wait()

	assert.Equal(t, "R3", outcomes[0].Facility)
	assert.Equal(t, "/?invalidFab=Z9", outcomes[1].Location)
	assert.Equal(t, "/?needsFab=true", outcomes[2].Location)
	assert.Equal(t, "M16", outcomes[3].Facility)

	cur := state.Current()
	assert.Contains(t, []model.Selection{
		{Facility: "R3", Tool: "CD-SEM"},
		{Facility: "M16", Tool: "HV-SEM"},
	}, cur)
}

func TestResolve_AuditsDecisions(t *testing.T) {
	auditService := new(mock.MockAuditService)
	auditService.On("LogNavigation", testifymock.Anything, testifymock.MatchedBy(func(log audit.NavigationLog) bool {
		return log.Reason == guard.ReasonInvalidFacility && log.SessionID == "s9" && log.Location == "/?invalidFab=Z9"
	})).Return(errors.New("elasticsearch unavailable")).Once()

	g := guard.New(enforcePolicy(), loadedDirectory(scenarioDirectory), fallback, time.Second, guard.WithAudit(auditService))
	out := g.Resolve(context.Background(), guard.Navigation{Path: "/Z9/recipe-search", SessionID: "s9"}, new(mock.MockCommitter))
	g.Wait()

	assert.Equal(t, guard.ActionRedirect, out.Action)
	auditService.AssertExpectations(t)
}

func TestResolve_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	dir := loadedDirectory(scenarioDirectory)
	g := guard.New(enforcePolicy(), dir, fallback, time.Second, guard.WithRegisterer(reg))
	state := newSelection(dir)

	g.Resolve(context.Background(), guard.Navigation{Path: "/R3/recipe-search"}, state)
	g.Resolve(context.Background(), guard.Navigation{Path: "/Z9/recipe-search"}, state)
	g.Resolve(context.Background(), guard.Navigation{Path: "/Z8/recipe-search"}, state)

	count, err := testutil.GatherAndCount(reg, "fabdash_guard_navigations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
