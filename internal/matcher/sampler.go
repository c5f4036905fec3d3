package matcher

import (
	"github.com/nearwave/nearwave/internal/location"
	"github.com/nearwave/nearwave/pkg/geo"
)

// sampler throttles the provider's fix stream to the configured cadence:
// a fix is forwarded only once both the minimum interval and the minimum
// distance delta since the last forwarded fix are satisfied. The first fix
// always passes.
type sampler struct {
	opts    location.WatchOptions
	hasLast bool
	last    location.Fix
}

func newSampler(opts location.WatchOptions) *sampler {
	return &sampler{opts: opts}
}

func (s *sampler) shouldForward(fix location.Fix) bool {
	if !s.hasLast {
		s.hasLast = true
		s.last = fix

		return true
	}

	if fix.Timestamp.Sub(s.last.Timestamp) < s.opts.MinInterval {
		return false
	}

	if s.opts.MinDistance > 0 {
		moved := geo.Distance(s.last.Latitude, s.last.Longitude, fix.Latitude, fix.Longitude)
		if moved < s.opts.MinDistance {
			return false
		}
	}

	s.last = fix

	return true
}
