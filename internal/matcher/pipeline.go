package matcher

import (
	"context"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/pkg/geo"
	"go.uber.org/zap"
)

// Pipeline processes one location fix end to end: publish the fix, scan
// for fresh neighbors in range, gate each candidate, and dispatch matches.
// Stages run in strict sequence; candidates are processed one at a time.
type Pipeline struct {
	locations       LocationStore
	gate            *Gate
	dispatcher      *Dispatcher
	locker          PairLocker
	radiusMeters    float64
	freshnessWindow time.Duration
	logger          *zap.Logger
	now             func() time.Time
}

// NewPipeline assembles the matching pipeline.
func NewPipeline(
	locations LocationStore, gate *Gate, dispatcher *Dispatcher, locker PairLocker,
	radiusMeters float64, freshnessWindow time.Duration, logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		locations:       locations,
		gate:            gate,
		dispatcher:      dispatcher,
		locker:          locker,
		radiusMeters:    radiusMeters,
		freshnessWindow: freshnessWindow,
		logger:          logger.Named("pipeline"),
		now:             time.Now,
	}
}

// ProcessFix runs one full pass for a fix. Storage failures abort the pass
// with a recoverable result; they never propagate to the sampler.
func (p *Pipeline) ProcessFix(ctx context.Context, userID string, fix location.Fix) Result {
	// Publish: last-writer-wins upsert of the user's latest position
	row := &types.UserLocation{
		UserID:      userID,
		Latitude:    fix.Latitude,
		Longitude:   fix.Longitude,
		LastUpdated: fix.Timestamp,
	}
	if err := p.locations.Upsert(ctx, row); err != nil {
		p.logger.Error("Failed to publish location", zap.String("userID", userID), zap.Error(err))
		return Result{Code: CodeRecoverable, Err: err}
	}

	// Scan: fresh locations of other users
	since := p.now().Add(-p.freshnessWindow)

	candidates, err := p.locations.GetFreshLocations(ctx, userID, since)
	if err != nil {
		p.logger.Error("Failed to scan for neighbors", zap.String("userID", userID), zap.Error(err))
		return Result{Code: CodeRecoverable, Err: err}
	}

	dispatched := 0

	for _, candidate := range candidates {
		distance := geo.Distance(fix.Latitude, fix.Longitude, candidate.Latitude, candidate.Longitude)
		if distance > p.radiusMeters {
			continue
		}

		if ok := p.processCandidate(ctx, userID, candidate); ok {
			dispatched++
		}
	}

	return Result{Code: CodeOK, Dispatched: dispatched}
}

// processCandidate gates and dispatches one in-range candidate. Returns
// true when a match was committed.
func (p *Pipeline) processCandidate(ctx context.Context, userID string, candidate *types.UserLocation) bool {
	if !p.gate.CheckEligibility(ctx, userID, candidate.UserID) {
		return false
	}

	// The gate re-runs under a per-pair lock so two in-flight fixes for the
	// same pair cannot both pass the check-then-act gap.
	release, acquired, err := p.locker.Acquire(ctx, types.PairKey(userID, candidate.UserID))
	if err != nil {
		p.logger.Error("Failed to acquire pair lock",
			zap.String("userID", userID),
			zap.String("candidateID", candidate.UserID),
			zap.Error(err))

		return false
	}

	if !acquired {
		// Another pass holds the pair; it will dispatch or decline
		return false
	}
	defer release()

	if !p.gate.CheckEligibility(ctx, userID, candidate.UserID) {
		return false
	}

	if err := p.dispatcher.Dispatch(ctx, userID, candidate); err != nil {
		p.logger.Error("Failed to dispatch match",
			zap.String("userID", userID),
			zap.String("candidateID", candidate.UserID),
			zap.Error(err))

		return false
	}

	return true
}
