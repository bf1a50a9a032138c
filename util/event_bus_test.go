package util_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/fabdash/util"
)

func TestEventBus(t *testing.T) {
	bus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)

	var loaded, changed atomic.Int32
	unsubscribe := bus.Subscribe(util.EventDirectoryLoaded, func(ctx context.Context, e util.Event) error {
		loaded.Add(1)
		return nil
	})
	bus.Subscribe(util.EventSelectionChanged, func(ctx context.Context, e util.Event) error {
		changed.Add(1)
		return nil
	})

	bus.Publish(ctx, util.EventDirectoryLoaded, nil)
	bus.Wait()
	assert.Equal(t, int32(1), loaded.Load())
	assert.Equal(t, int32(0), changed.Load())

	unsubscribe()
	bus.Publish(ctx, util.EventDirectoryLoaded, nil)
	bus.Publish(ctx, util.EventSelectionChanged, nil)
	bus.Wait()
	assert.Equal(t, int32(1), loaded.Load())
	assert.Equal(t, int32(1), changed.Load())
}
