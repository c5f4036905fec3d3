package matcher_test

import (
	"testing"
	"time"

	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/internal/matcher"
	"github.com/nearwave/nearwave/internal/notify"
	"github.com/nearwave/nearwave/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSessionService(
	t *testing.T, provider *fakeProvider, notifier *fakeNotifier,
) (*matcher.Service, *pipelineEnv) {
	t.Helper()

	env := newPipelineEnvWithNotifier(t, notifier)
	samplerCfg := &config.Sampler{
		MinIntervalSeconds: 30,
		MinDistanceMeters:  10,
		Accuracy:           "high",
	}
	service := matcher.NewService(env.pipeline, provider, notifier, samplerCfg, zaptest.NewLogger(t))

	return service, env
}

func TestStartFailsWithoutLocationPermission(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.permissionErr = location.ErrPermissionDenied

	service, _ := newSessionService(t, provider, &fakeNotifier{})

	session, err := service.Start(t.Context(), "alice")
	require.ErrorIs(t, err, location.ErrPermissionDenied)
	assert.Nil(t, session)
}

func TestStartFailsWithoutNotificationPermission(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{permissionErr: notify.ErrPermissionDenied}
	service, _ := newSessionService(t, newFakeProvider(), notifier)

	session, err := service.Start(t.Context(), "alice")
	require.ErrorIs(t, err, notify.ErrPermissionDenied)
	assert.Nil(t, session)
}

func TestStartFailsWhenWatchFails(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.watchErr = errStorage

	service, _ := newSessionService(t, provider, &fakeNotifier{})

	session, err := service.Start(t.Context(), "alice")
	require.ErrorIs(t, err, errStorage)
	assert.Nil(t, session)
}

func TestSessionThrottlesByIntervalAndDistance(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	service, _ := newSessionService(t, provider, &fakeNotifier{})

	session, err := service.Start(t.Context(), "alice")
	require.NoError(t, err)

	base := time.Now()

	// First fix always passes
	provider.fixes <- location.Fix{Latitude: 0, Longitude: 0, Timestamp: base}
	// Too soon after the last forwarded fix
	provider.fixes <- location.Fix{Latitude: 45 / 111195.0, Longitude: 0, Timestamp: base.Add(time.Second)}
	// Interval satisfied but barely moved
	provider.fixes <- location.Fix{Latitude: 2 / 111195.0, Longitude: 0, Timestamp: base.Add(31 * time.Second)}
	// Interval and distance both satisfied
	provider.fixes <- location.Fix{Latitude: 45 / 111195.0, Longitude: 0, Timestamp: base.Add(62 * time.Second)}

	require.Eventually(t, func() bool {
		stats := session.Stats()
		return stats.FixesProcessed+stats.FixesThrottled == 4
	}, time.Second, 5*time.Millisecond)

	close(provider.fixes)
	session.Stop()

	stats := session.Stats()
	assert.Equal(t, int64(2), stats.FixesProcessed)
	assert.Equal(t, int64(2), stats.FixesThrottled)
	assert.Zero(t, stats.RecoverableErrors)
}

func TestSessionCountsRecoverableErrors(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	service, env := newSessionService(t, provider, &fakeNotifier{})
	env.locations.upsertErr = errStorage

	session, err := service.Start(t.Context(), "alice")
	require.NoError(t, err)

	provider.fixes <- location.Fix{Latitude: 0, Longitude: 0, Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		return session.Stats().FixesProcessed == 1
	}, time.Second, 5*time.Millisecond)

	close(provider.fixes)
	session.Stop()

	stats := session.Stats()
	assert.Equal(t, int64(1), stats.FixesProcessed)
	assert.Equal(t, int64(1), stats.RecoverableErrors)
	assert.Zero(t, stats.MatchesDispatched)
}

func TestSessionDispatchesThroughPipeline(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	notifier := &fakeNotifier{}
	service, env := newSessionService(t, provider, notifier)
	env.seedCandidate("bob", "Bob", 45, time.Minute)

	session, err := service.Start(t.Context(), "alice")
	require.NoError(t, err)

	provider.fixes <- location.Fix{Latitude: 0, Longitude: 0, Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		return session.Stats().FixesProcessed == 1
	}, time.Second, 5*time.Millisecond)

	close(provider.fixes)
	session.Stop()

	stats := session.Stats()
	assert.Equal(t, int64(1), stats.FixesProcessed)
	assert.Equal(t, int64(1), stats.MatchesDispatched)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "alice", notifier.sent[0].userID)
}

func TestStopHaltsProcessing(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	service, _ := newSessionService(t, provider, &fakeNotifier{})

	session, err := service.Start(t.Context(), "alice")
	require.NoError(t, err)

	provider.fixes <- location.Fix{Latitude: 0, Longitude: 0, Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		return session.Stats().FixesProcessed == 1
	}, time.Second, 5*time.Millisecond)

	session.Stop()

	// Fixes delivered after Stop are never processed
	provider.fixes <- location.Fix{Latitude: 1, Longitude: 1, Timestamp: time.Now()}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int64(1), session.Stats().FixesProcessed)

	// Stop is idempotent when the stream already closed
	assert.Equal(t, "alice", session.UserID())
}
