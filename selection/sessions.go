package selection

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

// StoreFactory returns the persistent store of one session.
type StoreFactory func(sessionID string) Store

// Sessions keeps the selection state of recently active sessions. An evicted
// session is rebuilt from its store on the next request.
type Sessions struct {
	states      *lru.Cache[string, *State]
	newStore    StoreFactory
	directory   Directory
	fallback    model.Fallback
	eventBus    *util.EventBus
	unsubscribe func()
}

func NewSessions(capacity int, newStore StoreFactory, directory Directory, fallback model.Fallback, eventBus *util.EventBus) (*Sessions, error) {
	states, err := lru.New[string, *State](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create session registry: %w", err)
	}
	s := &Sessions{
		states:    states,
		newStore:  newStore,
		directory: directory,
		fallback:  fallback,
		eventBus:  eventBus,
	}
	if eventBus != nil {
		s.unsubscribe = eventBus.Subscribe(util.EventDirectoryLoaded, s.handleDirectoryLoaded)
	}
	return s, nil
}

// Get returns the state of sessionID, creating it on first use.
func (s *Sessions) Get(ctx context.Context, sessionID string) *State {
	if state, ok := s.states.Get(sessionID); ok {
		return state
	}
	state := NewState(ctx, sessionID, s.newStore(sessionID), s.directory, s.fallback, s.eventBus)
	if prev, ok, _ := s.states.PeekOrAdd(sessionID, state); ok {
		return prev
	}
	return state
}

func (s *Sessions) Len() int {
	return s.states.Len()
}

// Close stops listening for directory loads.
func (s *Sessions) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Sessions) handleDirectoryLoaded(ctx context.Context, event util.Event) error {
	restored := 0
	for _, state := range s.states.Values() {
		if state.InitializeFromPersisted(ctx) {
			restored++
		}
	}
	logger.Info("Directory loaded, selections reconciled",
		zap.Int("sessions", s.states.Len()),
		zap.Int("restored", restored))
	return nil
}
