// service/prefetch.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

const prefetchTimeout = 30 * time.Second

// Prefetcher warms the equipment resources of a facility as soon as a
// session selects it.
type Prefetcher struct {
	equipment   IEquipmentService
	unsubscribe func()
}

// NewPrefetcher subscribes to selection changes when eventBus is non-nil.
func NewPrefetcher(equipment IEquipmentService, eventBus *util.EventBus) *Prefetcher {
	p := &Prefetcher{equipment: equipment}
	if eventBus != nil {
		p.unsubscribe = eventBus.Subscribe(util.EventSelectionChanged, p.handleSelectionChanged)
	}
	return p
}

// Close stops prefetching on selection changes.
func (p *Prefetcher) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}

// Prefetch loads the current status, not-available list and storage of facility concurrently.
func (p *Prefetcher) Prefetch(ctx context.Context, facility string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := p.equipment.CurrentStatus(ctx, facility)
		return err
	})
	g.Go(func() error {
		_, err := p.equipment.NotAvailable(ctx, facility)
		return err
	})
	g.Go(func() error {
		_, err := p.equipment.Storage(ctx, facility)
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to prefetch facility %s: %w", facility, err)
	}
	return nil
}

func (p *Prefetcher) handleSelectionChanged(ctx context.Context, event util.Event) error {
	change, ok := event.Payload.(model.SelectionChange)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if !change.Current.HasFacility() || change.Current.Facility == change.Previous.Facility {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, prefetchTimeout)
	defer cancel()

	if err := p.Prefetch(ctx, change.Current.Facility); err != nil {
		logger.Warn("Prefetch failed", zap.String("facility", change.Current.Facility), zap.Error(err))
		return nil
	}
	logger.Debug("Facility prefetched",
		zap.String("sessionID", change.SessionID),
		zap.String("facility", change.Current.Facility))
	return nil
}
