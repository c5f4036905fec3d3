package matcher

import (
	"context"
	"fmt"

	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/internal/notify"
	"github.com/nearwave/nearwave/internal/setup/config"
	"go.uber.org/zap"
)

// Service starts matching sessions. A session owns one location
// subscription and processes its fixes to completion, one at a time.
type Service struct {
	pipeline  *Pipeline
	provider  location.Provider
	notifier  notify.Notifier
	watchOpts location.WatchOptions
	logger    *zap.Logger
}

// NewService creates a matching service for one location provider.
func NewService(
	pipeline *Pipeline, provider location.Provider, notifier notify.Notifier,
	samplerCfg *config.Sampler, logger *zap.Logger,
) *Service {
	return &Service{
		pipeline: pipeline,
		provider: provider,
		notifier: notifier,
		watchOpts: location.WatchOptions{
			Accuracy:    location.Accuracy(samplerCfg.Accuracy),
			MinInterval: samplerCfg.MinInterval(),
			MinDistance: samplerCfg.MinDistanceMeters,
		},
		logger: logger,
	}
}

// Session is the handle for one running matching session. The caller owns
// its lifetime; Stop guarantees no further fixes are processed after it
// returns.
type Session struct {
	userID string
	cancel context.CancelFunc
	done   chan struct{}
	stats  *Stats
}

// UserID returns the user this session matches for.
func (s *Session) UserID() string {
	return s.userID
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Snapshot {
	return s.stats.Snapshot()
}

// Stop tears down the location subscription and waits for the in-flight
// fix, if any, to finish.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

// Start checks permissions, subscribes to position updates, and begins the
// sampling loop for a user. Both permissions must be granted or Start fails;
// the service never degrades silently.
func (s *Service) Start(ctx context.Context, userID string) (*Session, error) {
	if err := s.provider.RequestPermission(ctx); err != nil {
		return nil, fmt.Errorf("cannot start matching for %s: %w", userID, err)
	}

	if err := s.notifier.RequestPermission(ctx); err != nil {
		return nil, fmt.Errorf("cannot start matching for %s: %w", userID, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)

	fixes, err := s.provider.Watch(watchCtx, s.watchOpts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start location watch for %s: %w", userID, err)
	}

	session := &Session{
		userID: userID,
		cancel: cancel,
		done:   make(chan struct{}),
		stats:  &Stats{},
	}

	go s.run(watchCtx, session, fixes)

	s.logger.Info("Started matching session", zap.String("userID", userID))

	return session, nil
}

// run consumes the fix stream until the subscription closes. Each fix is
// processed to completion before the next one is read.
func (s *Service) run(ctx context.Context, session *Session, fixes <-chan location.Fix) {
	defer close(session.done)

	throttle := newSampler(s.watchOpts)

	for fix := range fixes {
		if !throttle.shouldForward(fix) {
			session.stats.record(Result{Code: CodeSkipped})
			continue
		}

		result := s.pipeline.ProcessFix(ctx, session.userID, fix)
		session.stats.record(result)
	}

	s.logger.Info("Matching session ended",
		zap.String("userID", session.userID),
		zap.Int64("fixesProcessed", session.stats.Snapshot().FixesProcessed))
}
