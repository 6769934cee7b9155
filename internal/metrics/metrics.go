package metrics

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a copy of the request statistics of one invocation
type Snapshot struct {
	RequestsMade     int
	RequestsFailed   int
	TotalFetchTimeMs int64
	AvgFetchTimeMs   int64
}

// Tracker counts the requests a session issues to the router
type Tracker struct {
	mu               sync.Mutex
	data             Snapshot
	totalFetchTimeMs int64
	fetchCount       int
}

// NewTracker creates a new request tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// IncrementRequestsMade increments the issued requests counter
func (t *Tracker) IncrementRequestsMade() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.RequestsMade++
}

// IncrementRequestsFailed increments the failed requests counter
func (t *Tracker) IncrementRequestsFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.RequestsFailed++
}

// RecordFetchTime records a request round-trip duration
func (t *Tracker) RecordFetchTime(duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalFetchTimeMs += duration.Milliseconds()
	t.fetchCount++
}

// GetSnapshot returns a copy of current statistics
func (t *Tracker) GetSnapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.data
	snapshot.TotalFetchTimeMs = t.totalFetchTimeMs

	if t.fetchCount > 0 {
		snapshot.AvgFetchTimeMs = t.totalFetchTimeMs / int64(t.fetchCount)
	}

	return snapshot
}

// LogProgress renders the statistics as a single log line
func (t *Tracker) LogProgress() string {
	s := t.GetSnapshot()
	return fmt.Sprintf("Requests: %d made, %d failed | Fetch time: %dms total, %dms avg",
		s.RequestsMade,
		s.RequestsFailed,
		s.TotalFetchTimeMs,
		s.AvgFetchTimeMs,
	)
}
