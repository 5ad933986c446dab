package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolStatsCounters(t *testing.T) {
	ts := NewToolStats()
	defer ts.Close()

	assert.Empty(t, ts.LoadStats().LastCallAt)

	ts.IncReads()
	ts.IncReads()
	ts.IncWrites()
	ts.IncQueries()
	ts.IncFailures()

	loaded := ts.LoadStats()
	assert.Equal(t, Totals{Calls: 5, Reads: 2, Writes: 1, Queries: 1, Failures: 1}, loaded.Totals)
	require.NotEmpty(t, loaded.Stats)
	assert.NotEmpty(t, loaded.StartedAt)
	assert.NotEmpty(t, loaded.Uptime)
	assert.NotEmpty(t, loaded.LastCallAt)
}

func TestToolStatsConcurrent(t *testing.T) {
	ts := NewToolStats()
	defer ts.Close()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ts.IncReads()
			ts.IncWrites()
		}()
	}
	wg.Wait()

	totals := ts.LoadStats().Totals
	assert.Equal(t, int64(100), totals.Calls)
	assert.Equal(t, int64(50), totals.Reads)
	assert.Equal(t, int64(50), totals.Writes)
}

func TestToolStatsCleanupAndOrder(t *testing.T) {
	ts := NewToolStats()
	defer ts.Close()

	now := time.Now()
	old := &minuteData{}
	old.calls.Add(1)
	recent := &minuteData{}
	recent.calls.Add(2)

	ts.minutes.Store(getTimeKey(now.Add(-25*time.Hour)), old)
	ts.minutes.Store(getTimeKey(now.Add(-time.Hour)), recent)
	ts.minutes.Store("garbage", &minuteData{})
	ts.IncReads()

	ts.cleanupOldStats(now)

	loaded := ts.LoadStats()
	require.Len(t, loaded.Stats, 2)
	assert.Equal(t, int64(1), loaded.Stats[0].Reads)
	assert.Equal(t, getTimeKey(now.Add(-time.Hour)), loaded.Stats[1].Minute)
	assert.Equal(t, int64(3), loaded.Totals.Calls)
}

func TestToolStatsCloseTwice(t *testing.T) {
	ts := NewToolStats()
	ts.Close()
	assert.NotPanics(t, ts.Close)
}
