package location_test

import (
	"context"
	"testing"
	"time"

	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorWalk(t *testing.T) {
	t.Parallel()

	const (
		originLat  = 51.5074
		originLon  = -0.1278
		stepMeters = 5.0
	)

	sim := location.NewSimulator(originLat, originLon, stepMeters, time.Millisecond)
	require.NoError(t, sim.RequestPermission(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	fixes, err := sim.Watch(ctx, location.WatchOptions{})
	require.NoError(t, err)

	prevLat, prevLon := originLat, originLon

	for range 10 {
		select {
		case fix := <-fixes:
			assert.InDelta(t, prevLat, fix.Latitude, 0.001)
			assert.InDelta(t, prevLon, fix.Longitude, 0.001)
			assert.LessOrEqual(t, geo.Distance(prevLat, prevLon, fix.Latitude, fix.Longitude), stepMeters+0.01)
			assert.False(t, fix.Timestamp.IsZero())

			prevLat, prevLon = fix.Latitude, fix.Longitude
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for a simulated fix")
		}
	}
}

func TestSimulatorStopsOnCancel(t *testing.T) {
	t.Parallel()

	sim := location.NewSimulator(0, 0, 5, time.Millisecond)

	ctx, cancel := context.WithCancel(t.Context())

	fixes, err := sim.Watch(ctx, location.WatchOptions{})
	require.NoError(t, err)

	cancel()

	// Drain until the channel closes; cancellation must end the stream
	deadline := time.After(time.Second)

	for {
		select {
		case _, ok := <-fixes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("fix stream did not close after cancellation")
		}
	}
}
