// Package match implements the proximity matching worker. It drives one
// matching session per configured user, using simulated device locations
// when no real devices are attached.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/internal/matcher"
	"github.com/nearwave/nearwave/internal/notify"
	"github.com/nearwave/nearwave/internal/redis"
	"github.com/nearwave/nearwave/internal/setup"
	"github.com/nearwave/nearwave/internal/worker/core"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Simulated sessions walk around a shared origin so nearby users exist.
const (
	simOriginLat = 51.5074
	simOriginLon = -0.1278
)

// Worker runs matching sessions for a set of users.
type Worker struct {
	app      *setup.App
	pipeline *matcher.Pipeline
	notifier notify.Notifier
	reporter *core.StatusReporter
	users    []string
	logger   *zap.Logger
}

// New creates a match worker from the app bundle. The users slice overrides
// the configured simulated users when non-empty.
func New(app *setup.App, users []string, logger *zap.Logger) (*Worker, error) {
	cfg := app.Config

	lockClient, err := app.RedisManager.GetClient(redis.PairLockDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get lock client: %w", err)
	}

	statusClient, err := app.RedisManager.GetClient(redis.WorkerStatusDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get status client: %w", err)
	}

	repo := app.DB.Model()

	var notifier notify.Notifier
	if cfg.Push.Endpoint != "" {
		notifier = notify.NewPushClient(&cfg.Push, repo.PushToken(), logger)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	gate := matcher.NewGate(repo.Friend(), repo.Notification(), cfg.Matching.Cooldown(), logger)
	dispatcher := matcher.NewDispatcher(repo.Friend(), repo.Notification(), notifier, logger)
	locker := redis.NewPairLock(lockClient, cfg.Matching.PairLockTTL(), logger)

	pipeline := matcher.NewPipeline(
		repo.Location(), gate, dispatcher, locker,
		cfg.Matching.RadiusMeters, cfg.Matching.FreshnessWindow(), logger,
	)

	if len(users) == 0 {
		users = cfg.Worker.SimulatedUsers
	}

	return &Worker{
		app:      app,
		pipeline: pipeline,
		notifier: notifier,
		reporter: core.NewStatusReporter(statusClient, "match", logger),
		users:    users,
		logger:   logger,
	}, nil
}

// Start runs one matching session per user until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Match worker started",
		zap.String("workerID", w.reporter.GetWorkerID()),
		zap.Int("users", len(w.users)))

	w.reporter.Start(ctx)
	defer w.reporter.Stop()

	if len(w.users) == 0 {
		w.logger.Warn("No users configured, match worker idle")
		<-ctx.Done()

		return
	}

	cfg := w.app.Config

	var wg conc.WaitGroup
	defer wg.Wait()

	for _, userID := range w.users {
		wg.Go(func() {
			provider := location.NewSimulator(
				simOriginLat, simOriginLon,
				cfg.Worker.SimulatedStepMeters,
				time.Duration(cfg.Worker.SimulatedIntervalMS)*time.Millisecond,
			)

			service := matcher.NewService(w.pipeline, provider, w.notifier, &cfg.Sampler, w.logger)

			session, err := service.Start(ctx, userID)
			if err != nil {
				w.logger.Error("Failed to start matching session",
					zap.String("userID", userID),
					zap.Error(err))
				w.reporter.SetHealthy(false)

				return
			}

			<-ctx.Done()
			session.Stop()

			stats := session.Stats()
			w.logger.Info("Session stopped",
				zap.String("userID", userID),
				zap.Int64("fixesProcessed", stats.FixesProcessed),
				zap.Int64("matchesDispatched", stats.MatchesDispatched),
				zap.Int64("recoverableErrors", stats.RecoverableErrors))
		})
	}

	w.reporter.UpdateStatus("Running matching sessions", len(w.users))
	<-ctx.Done()
}
