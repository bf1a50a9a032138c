// selection/state.go
package selection

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

// Directory is the view of the facility directory loader that selection needs.
type Directory interface {
	Snapshot() model.DirectorySnapshot
}

// View is the selection together with everything derived from it.
type View struct {
	Selection      model.Selection `json:"selection"`
	AvailableTools []string        `json:"available_tools"`
	UsedFallback   bool            `json:"used_fallback"`
	Loading        bool            `json:"loading"`
}

// State is the in-memory selection of one session. Mutations are
// serialized; reads never wait on the store.
type State struct {
	sessionID string
	store     Store
	directory Directory
	fallback  model.Fallback
	eventBus  *util.EventBus

	writeMu   sync.Mutex
	mu        sync.RWMutex
	selection model.Selection
}

// NewState builds the selection of sessionID and restores whatever the store
// holds that validates against the current directory. eventBus may be nil.
func NewState(ctx context.Context, sessionID string, store Store, directory Directory, fallback model.Fallback, eventBus *util.EventBus) *State {
	s := &State{
		sessionID: sessionID,
		store:     store,
		directory: directory,
		fallback:  fallback,
		eventBus:  eventBus,
	}
	s.InitializeFromPersisted(ctx)
	return s
}

func (s *State) SessionID() string {
	return s.sessionID
}

// Current returns the committed selection.
func (s *State) Current() model.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// AvailableTools returns the tools of the selected facility, or nil without one.
func (s *State) AvailableTools() []string {
	return s.View().AvailableTools
}

// View derives the tool list and directory flags from the current selection.
func (s *State) View() View {
	cur := s.Current()
	snapshot := s.directory.Snapshot()
	dir, usedFallback := model.Effective(snapshot, s.fallback)

	view := View{
		Selection:    cur,
		UsedFallback: usedFallback,
		Loading:      snapshot.Loading,
	}
	if cur.HasFacility() {
		view.AvailableTools = append([]string(nil), model.ToolsFor(dir, cur.Facility, s.fallback.Tools)...)
	}
	return view
}

// SetFacility commits the facility matching id, ignoring case, in the
// directory's casing. A facility with a single tool gets that tool selected.
// Otherwise the tool is cleared when the facility changes.
func (s *State) SetFacility(ctx context.Context, id string) (model.Selection, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	dir, _ := model.Effective(s.directory.Snapshot(), s.fallback)
	facility, ok := dir.Canonical(id)
	if !ok {
		return s.Current(), fmt.Errorf("%w: %q", fab_errors.ErrFacilityNotFound, id)
	}
	tools := model.ToolsFor(dir, facility, s.fallback.Tools)

	prev := s.Current()
	next := model.Selection{Facility: facility}
	switch {
	case len(tools) == 1:
		next.Tool = tools[0]
	case prev.Facility == facility:
		if tool, ok := model.MatchTool(tools, prev.Tool); ok {
			next.Tool = tool
		}
	}

	s.commit(ctx, prev, next)
	return next, nil
}

// SetTool commits a tool of the selected facility.
func (s *State) SetTool(ctx context.Context, id string) (model.Selection, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.Current()
	if !prev.HasFacility() {
		return prev, fab_errors.ErrNoFacilitySelected
	}

	dir, _ := model.Effective(s.directory.Snapshot(), s.fallback)
	tool, ok := model.MatchTool(model.ToolsFor(dir, prev.Facility, s.fallback.Tools), id)
	if !ok {
		return prev, fmt.Errorf("%w: %q in facility %s", fab_errors.ErrToolNotFound, id, prev.Facility)
	}

	next := model.Selection{Facility: prev.Facility, Tool: tool}
	s.commit(ctx, prev, next)
	return next, nil
}

// Clear drops the selection and its persisted mirror.
func (s *State) Clear(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.commit(ctx, s.Current(), model.Selection{})
}

// InitializeFromPersisted restores the stored selection when the current one
// is empty and the stored facility exists in the directory. It reports whether
// anything was restored. While the directory is still on its first load the
// restore is deferred to the load event.
func (s *State) InitializeFromPersisted(ctx context.Context) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.Current()
	if !prev.IsEmpty() {
		return false
	}

	snapshot := s.directory.Snapshot()
	if snapshot.Loading && len(snapshot.Directory) == 0 {
		return false
	}

	stored, ok, err := s.store.Get(ctx, KeyFacility)
	if err != nil {
		logger.Warn("Failed to read persisted facility",
			zap.String("sessionID", s.sessionID),
			zap.Error(err))
		return false
	}
	if !ok || stored == "" {
		return false
	}

	dir, usedFallback := model.Effective(snapshot, s.fallback)
	facility, ok := dir.Canonical(stored)
	if !ok {
		logger.Debug("Persisted facility not in directory",
			zap.String("sessionID", s.sessionID),
			zap.String("facility", stored),
			zap.Bool("usedFallback", usedFallback))
		return false
	}

	next := model.Selection{Facility: facility}
	tools := model.ToolsFor(dir, facility, s.fallback.Tools)
	storedTool, _, err := s.store.Get(ctx, KeyTool)
	if err != nil {
		logger.Warn("Failed to read persisted tool",
			zap.String("sessionID", s.sessionID),
			zap.Error(err))
	}
	if tool, ok := model.MatchTool(tools, storedTool); ok {
		next.Tool = tool
	} else if len(tools) == 1 {
		next.Tool = tools[0]
	}

	s.commit(ctx, prev, next)
	logger.Info("Selection restored",
		zap.String("sessionID", s.sessionID),
		zap.String("facility", next.Facility),
		zap.String("tool", next.Tool))
	return true
}

// commit must be called with writeMu held. A failed write to the store is
// logged and the in-memory selection stays committed.
func (s *State) commit(ctx context.Context, prev, next model.Selection) {
	s.mu.Lock()
	s.selection = next
	s.mu.Unlock()

	if err := s.persist(ctx, next); err != nil {
		logger.Error("Failed to persist selection",
			zap.String("sessionID", s.sessionID),
			zap.String("facility", next.Facility),
			zap.String("tool", next.Tool),
			zap.Error(err))
	}

	if prev != next && s.eventBus != nil {
		s.eventBus.Publish(context.WithoutCancel(ctx), util.EventSelectionChanged, model.SelectionChange{
			SessionID: s.sessionID,
			Previous:  prev,
			Current:   next,
		})
	}
}

func (s *State) persist(ctx context.Context, sel model.Selection) error {
	if !sel.HasFacility() {
		if err := s.store.Delete(ctx, KeyFacility, KeyTool); err != nil {
			return fmt.Errorf("%w: %w", fab_errors.ErrSelectionStore, err)
		}
		return nil
	}
	if err := s.store.Set(ctx, KeyFacility, sel.Facility); err != nil {
		return fmt.Errorf("%w: %w", fab_errors.ErrSelectionStore, err)
	}
	if sel.HasTool() {
		if err := s.store.Set(ctx, KeyTool, sel.Tool); err != nil {
			return fmt.Errorf("%w: %w", fab_errors.ErrSelectionStore, err)
		}
		return nil
	}
	if err := s.store.Delete(ctx, KeyTool); err != nil {
		return fmt.Errorf("%w: %w", fab_errors.ErrSelectionStore, err)
	}
	return nil
}
