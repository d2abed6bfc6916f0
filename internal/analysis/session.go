package analysis

import (
	"sort"
	"time"

	"github.com/ademuri/streaming-stats/internal/history"
)

// Session is a maximal run of chronologically consecutive events with no gap
// larger than the session threshold.
type Session struct {
	Index    int
	Start    time.Time
	End      time.Time
	MsPlayed int64
	Tracks   int
}

// SortEvents returns a chronologically ordered copy of events. Events with
// equal timestamps keep their input order.
func SortEvents(events []history.PlayEvent) []history.PlayEvent {
	sorted := make([]history.PlayEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// Segment partitions events, in any order, into sessions numbered from 0. A
// new session starts whenever the time since the previous event strictly
// exceeds gap.
func Segment(events []history.PlayEvent, gap time.Duration) []Session {
	sorted := SortEvents(events)

	var sessions []Session
	for i, e := range sorted {
		if i == 0 || e.Timestamp.Sub(sorted[i-1].Timestamp) > gap {
			sessions = append(sessions, Session{
				Index: len(sessions),
				Start: e.Timestamp,
			})
		}
		current := &sessions[len(sessions)-1]
		current.End = e.Timestamp
		current.MsPlayed += e.MsPlayed
		current.Tracks++
	}
	return sessions
}

// SummarizeSessions averages session length and size. Averages are undefined
// when there are no sessions.
func SummarizeSessions(sessions []Session) SessionStats {
	stats := SessionStats{
		AverageSessionMinutes:   NaN(),
		AverageTracksPerSession: NaN(),
		TotalSessions:           len(sessions),
	}
	if len(sessions) == 0 {
		return stats
	}

	var totalMs float64
	var totalTracks float64
	for _, s := range sessions {
		totalMs += float64(s.MsPlayed)
		totalTracks += float64(s.Tracks)
	}
	n := float64(len(sessions))
	stats.AverageSessionMinutes = round2(totalMs / n / msPerMinute)
	stats.AverageTracksPerSession = round2(totalTracks / n)
	return stats
}
