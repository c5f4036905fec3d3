// Package location abstracts the platform location services the matcher
// consumes: permission requests and a subscribable stream of position fixes.
package location

import (
	"context"
	"errors"
	"time"
)

// ErrPermissionDenied is returned when the platform refuses location access.
var ErrPermissionDenied = errors.New("location permission denied")

// Accuracy is the positioning accuracy tier requested from the provider.
type Accuracy string

const (
	AccuracyLow      Accuracy = "low"
	AccuracyBalanced Accuracy = "balanced"
	AccuracyHigh     Accuracy = "high"
)

// Fix is one reported device position.
type Fix struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// WatchOptions configures a position subscription.
type WatchOptions struct {
	// Accuracy tier requested from the provider.
	Accuracy Accuracy
	// Minimum time between reported fixes.
	MinInterval time.Duration
	// Minimum distance in meters between reported fixes.
	MinDistance float64
}

// Provider is a source of position fixes. Watch returns a lazy, infinite,
// non-restartable stream; the channel closes when the context is cancelled.
// Providers may apply the watch filters best-effort; the sampler enforces
// them regardless.
type Provider interface {
	RequestPermission(ctx context.Context) error
	Watch(ctx context.Context, opts WatchOptions) (<-chan Fix, error)
}
