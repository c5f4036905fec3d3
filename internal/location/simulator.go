package location

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// metersPerDegreeLat is the approximate length of one degree of latitude.
const metersPerDegreeLat = 111195.0

// Simulator produces fixes along a random walk around an origin point.
// It stands in for device location services when the worker runs matching
// sessions without real devices.
type Simulator struct {
	originLat  float64
	originLon  float64
	stepMeters float64
	interval   time.Duration
	rng        *rand.Rand
}

// NewSimulator creates a simulated provider that walks randomly around the
// given origin, moving up to stepMeters per emitted fix.
func NewSimulator(originLat, originLon, stepMeters float64, interval time.Duration) *Simulator {
	return &Simulator{
		originLat:  originLat,
		originLon:  originLon,
		stepMeters: stepMeters,
		interval:   interval,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RequestPermission always succeeds for the simulator.
func (s *Simulator) RequestPermission(_ context.Context) error {
	return nil
}

// Watch emits one fix per interval until the context is cancelled.
// The watch filters are ignored; throttling happens in the sampler.
func (s *Simulator) Watch(ctx context.Context, _ WatchOptions) (<-chan Fix, error) {
	fixes := make(chan Fix)

	go func() {
		defer close(fixes)

		lat, lon := s.originLat, s.originLon

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				lat, lon = s.step(lat, lon)

				select {
				case fixes <- Fix{Latitude: lat, Longitude: lon, Timestamp: time.Now()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return fixes, nil
}

// step moves the walk a random distance up to stepMeters in a random
// direction, clamping to valid coordinate ranges.
func (s *Simulator) step(lat, lon float64) (float64, float64) {
	heading := s.rng.Float64() * 2 * math.Pi
	distance := s.rng.Float64() * s.stepMeters

	dLat := distance * math.Cos(heading) / metersPerDegreeLat

	// Longitude degrees shrink with latitude
	metersPerDegreeLon := metersPerDegreeLat * math.Cos(lat*math.Pi/180)
	if metersPerDegreeLon < 1 {
		metersPerDegreeLon = 1
	}

	dLon := distance * math.Sin(heading) / metersPerDegreeLon

	lat = math.Max(-90, math.Min(90, lat+dLat))
	lon = math.Max(-180, math.Min(180, lon+dLon))

	return lat, lon
}
