package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/nsqlite/nsqlite-mcp/internal/util/syncutil"
)

const (
	retention       = 24 * time.Hour
	cleanupInterval = 10 * time.Second
)

// minuteData holds the counters of one minute.
type minuteData struct {
	calls    atomic.Int64
	reads    atomic.Int64
	writes   atomic.Int64
	queries  atomic.Int64
	failures atomic.Int64
}

// ToolStats counts tool calls per minute for the last 24 hours.
// A background cleanup removes older minutes at a fixed interval.
type ToolStats struct {
	startedAt  time.Time
	lastCallAt *syncutil.AtomicTime
	minutes    sync.Map

	stopOnce        sync.Once
	stopCleanupChan chan struct{}
}

// NewToolStats creates a ToolStats instance and starts a background cleanup.
func NewToolStats() *ToolStats {
	ts := &ToolStats{
		startedAt:       time.Now(),
		lastCallAt:      syncutil.NewAtomicTime(time.Time{}),
		stopCleanupChan: make(chan struct{}),
	}
	go ts.runCleanupWorker()
	return ts
}

// Close stops the background cleanup worker.
func (ts *ToolStats) Close() {
	ts.stopOnce.Do(func() {
		close(ts.stopCleanupChan)
	})
}

func (ts *ToolStats) runCleanupWorker() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ts.cleanupOldStats(time.Now())
		case <-ts.stopCleanupChan:
			return
		}
	}
}

// cleanupOldStats removes minutes older than the retention window.
func (ts *ToolStats) cleanupOldStats(now time.Time) {
	cutoff := now.UTC().Add(-retention)
	ts.minutes.Range(func(key, _ any) bool {
		parsed, err := time.Parse(time.RFC3339, key.(string))
		if err != nil || parsed.Before(cutoff) {
			ts.minutes.Delete(key)
		}
		return true
	})
}

// getTimeKey returns the minute of t in RFC3339 (UTC).
func getTimeKey(t time.Time) string {
	return t.UTC().Truncate(time.Minute).Format(time.RFC3339)
}

func (ts *ToolStats) current() *minuteData {
	now := time.Now()
	ts.lastCallAt.Store(now)
	key := getTimeKey(now)
	if md, ok := ts.minutes.Load(key); ok {
		return md.(*minuteData)
	}
	md, _ := ts.minutes.LoadOrStore(key, &minuteData{})
	return md.(*minuteData)
}

// IncReads counts a successful read-only tool call.
func (ts *ToolStats) IncReads() {
	md := ts.current()
	md.calls.Add(1)
	md.reads.Add(1)
}

// IncWrites counts a successful tool call that changed the database.
func (ts *ToolStats) IncWrites() {
	md := ts.current()
	md.calls.Add(1)
	md.writes.Add(1)
}

// IncQueries counts a successful raw statement, which may read or write.
func (ts *ToolStats) IncQueries() {
	md := ts.current()
	md.calls.Add(1)
	md.queries.Add(1)
}

// IncFailures counts a tool call that returned a failure envelope.
func (ts *ToolStats) IncFailures() {
	md := ts.current()
	md.calls.Add(1)
	md.failures.Add(1)
}
