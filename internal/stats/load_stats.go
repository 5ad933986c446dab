package stats

import (
	"sort"
	"time"
)

type LoadedStats struct {
	StartedAt  string `json:"startedAt"`
	Uptime     string `json:"uptime"`
	LastCallAt string `json:"lastCallAt,omitempty"`
	Totals     Totals `json:"totals"`
	Stats      []Stat `json:"stats"`
}

type Totals struct {
	Calls    int64 `json:"calls"`
	Reads    int64 `json:"reads"`
	Writes   int64 `json:"writes"`
	Queries  int64 `json:"queries"`
	Failures int64 `json:"failures"`
}

type Stat struct {
	Minute   string `json:"minute"`
	Calls    int64  `json:"calls"`
	Reads    int64  `json:"reads"`
	Writes   int64  `json:"writes"`
	Failures int64  `json:"failures"`
}

// LoadStats loads all internal stats into a LoadedStats struct, newest
// minute first.
func (ts *ToolStats) LoadStats() LoadedStats {
	var (
		allStats = []Stat{}
		totals   Totals
	)

	ts.minutes.Range(func(key, value any) bool {
		md := value.(*minuteData)
		st := Stat{
			Minute:   key.(string),
			Calls:    md.calls.Load(),
			Reads:    md.reads.Load(),
			Writes:   md.writes.Load(),
			Queries:  md.queries.Load(),
			Failures: md.failures.Load(),
		}

		totals.Calls += st.Calls
		totals.Reads += st.Reads
		totals.Writes += st.Writes
		totals.Queries += st.Queries
		totals.Failures += st.Failures

		allStats = append(allStats, st)
		return true
	})

	sort.Slice(allStats, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, allStats[i].Minute)
		tj, _ := time.Parse(time.RFC3339, allStats[j].Minute)
		return tj.Before(ti)
	})

	lastCallAt := ""
	if last := ts.lastCallAt.Load(); !last.IsZero() {
		lastCallAt = last.Format(time.RFC3339)
	}

	return LoadedStats{
		StartedAt:  ts.startedAt.Format(time.RFC3339),
		Uptime:     time.Since(ts.startedAt).Round(time.Second).String(),
		LastCallAt: lastCallAt,
		Totals:     totals,
		Stats:      allStats,
	}
}
