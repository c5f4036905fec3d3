package matcher

import "sync/atomic"

// Code classifies the outcome of one pipeline stage or pass.
type Code int

const (
	// CodeOK means the pass completed; side effects may or may not have fired.
	CodeOK Code = iota
	// CodeSkipped means throttling or gating stopped the pass early.
	CodeSkipped
	// CodeRecoverable means an I/O failure aborted the pass; the session
	// continues on the next fix.
	CodeRecoverable
)

// Result is the structured outcome of processing one fix, surfaced so hosts
// can count or alert on recoverable failures instead of losing them to logs.
type Result struct {
	Code Code
	// Err carries the failure for recoverable results, nil otherwise.
	Err error
	// Dispatched is the number of match notifications committed this pass.
	Dispatched int
}

// Stats tracks per-session counters. All methods are safe for concurrent use.
type Stats struct {
	fixesProcessed    atomic.Int64
	fixesThrottled    atomic.Int64
	matchesDispatched atomic.Int64
	recoverableErrors atomic.Int64
}

// Snapshot is a point-in-time copy of session counters.
type Snapshot struct {
	FixesProcessed    int64
	FixesThrottled    int64
	MatchesDispatched int64
	RecoverableErrors int64
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		FixesProcessed:    s.fixesProcessed.Load(),
		FixesThrottled:    s.fixesThrottled.Load(),
		MatchesDispatched: s.matchesDispatched.Load(),
		RecoverableErrors: s.recoverableErrors.Load(),
	}
}

func (s *Stats) record(result Result) {
	if result.Code == CodeSkipped {
		s.fixesThrottled.Add(1)
		return
	}

	s.fixesProcessed.Add(1)
	s.matchesDispatched.Add(int64(result.Dispatched))

	if result.Code == CodeRecoverable {
		s.recoverableErrors.Add(1)
	}
}
