package analysis

import "github.com/ademuri/streaming-stats/internal/history"

// GenerateReport runs the session segmenter, the aggregator and the trend
// computer over events and merges their results. The report depends only on
// events and opts.
func GenerateReport(events []history.PlayEvent, opts Options) *Report {
	opts = opts.withDefaults()
	sessions := Segment(events, opts.SessionGap)
	return &Report{
		Stats:  ComputeStats(events, sessions, opts),
		Trends: ComputeTrends(events, opts),
	}
}
