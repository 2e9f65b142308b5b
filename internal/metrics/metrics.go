package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type runStats struct {
	submitted int
	skipped   int
	lockHits  int
	errors    int
}

// Recorder captures lightweight, in-memory metrics about ESPN API calls and
// lineup submission outcomes. All methods are nil-safe so callers can skip
// wiring metrics entirely.
type Recorder struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats
	runs      runStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		endpoints: make(map[string]*endpointStats),
		otel:      otel,
	}
}

// RecordAPICall increments counters for one ESPN request and stores the last
// observed latency.
func (r *Recorder) RecordAPICall(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.endpoints[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.endpoints[endpoint] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAPICall(endpoint, duration, err)
	}
}

// RecordSubmission tracks one per-day submission outcome.
func (r *Recorder) RecordSubmission(outcome SubmissionOutcome) {
	if r == nil {
		return
	}

	r.mu.Lock()
	switch outcome {
	case OutcomeSubmitted:
		r.runs.submitted++
	case OutcomeSkipped:
		r.runs.skipped++
	case OutcomeLocked:
		r.runs.lockHits++
	case OutcomeError:
		r.runs.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSubmission(outcome)
	}
}

// SubmissionOutcome labels what happened to one day's lineup.
type SubmissionOutcome string

const (
	OutcomeSubmitted SubmissionOutcome = "submitted"
	OutcomeSkipped   SubmissionOutcome = "skipped"
	OutcomeLocked    SubmissionOutcome = "locked"
	OutcomeError     SubmissionOutcome = "error"
)

// APISnapshot is a copy of the stats for one endpoint.
type APISnapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

// RunSnapshot is a copy of the accumulated submission outcomes.
type RunSnapshot struct {
	Submitted int
	Skipped   int
	LockHits  int
	Errors    int
}

// APICalls returns the total calls recorded for an endpoint.
func (r *Recorder) APICalls(endpoint string) int {
	return r.APISnapshot(endpoint).Calls
}

// APIErrors returns the total failed calls recorded for an endpoint.
func (r *Recorder) APIErrors(endpoint string) int {
	return r.APISnapshot(endpoint).Errors
}

// APISnapshot returns a copy of the stats for one endpoint.
func (r *Recorder) APISnapshot(endpoint string) APISnapshot {
	if r == nil {
		return APISnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.endpoints[endpoint]
	if !ok {
		return APISnapshot{}
	}
	return APISnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RunSnapshot returns a copy of the accumulated submission outcomes.
func (r *Recorder) RunSnapshot() RunSnapshot {
	if r == nil {
		return RunSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		Submitted: r.runs.submitted,
		Skipped:   r.runs.skipped,
		LockHits:  r.runs.lockHits,
		Errors:    r.runs.errors,
	}
}
