// util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
)

const (
	// EventDirectoryLoaded carries a model.DirectorySnapshot. Published when
	// the first load settles and after every successful load.
	EventDirectoryLoaded = "directory.loaded"
	// EventSelectionChanged carries a model.SelectionChange.
	EventSelectionChanged = "selection.changed"
)

// Event represents an event in the system
type Event struct {
	Type    string
	Payload interface{}
}

// EventHandler is a function that handles an event
type EventHandler func(context.Context, Event) error

type subscription struct {
	id      int
	handler EventHandler
}

// EventBus manages event subscriptions and publications
type EventBus struct {
	subscribers map[string][]subscription
	nextID      int
	mu          sync.RWMutex
	errorChan   chan error
	inFlight    sync.WaitGroup
}

// NewEventBus creates a new EventBus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]subscription),
		errorChan:   make(chan error, 100),
	}
}

// Subscribe adds a new subscriber for a specific event type and returns a
// function that removes it.
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) func() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, handler: handler})

	return func() { eb.unsubscribe(eventType, id) }
}

// Publish sends an event to all subscribers, each on its own goroutine.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	subs := append([]subscription(nil), eb.subscribers[eventType]...)
	eb.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	event := Event{
		Type:    eventType,
		Payload: payload,
	}

	for _, sub := range subs {
		eb.inFlight.Add(1)
		go func(h EventHandler) {
			defer eb.inFlight.Done()
			if err := h(ctx, event); err != nil {
				select {
				case eb.errorChan <- fmt.Errorf("event handler error: %w", err):
				default:
					// If error channel is full, log the error
					logger.Error("Error channel full, logging event handler error",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(sub.handler)
	}
}

// Wait blocks until every handler started by Publish has returned.
func (eb *EventBus) Wait() {
	eb.inFlight.Wait()
}

// Start begins processing events and handling errors
func (eb *EventBus) Start(ctx context.Context) {
	go eb.processErrors(ctx)
}

// processErrors handles errors from event handlers
func (eb *EventBus) processErrors(ctx context.Context) {
	for {
		select {
		case err := <-eb.errorChan:
			logger.Error("Event handler error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}

func (eb *EventBus) unsubscribe(eventType string, id int) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			eb.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
