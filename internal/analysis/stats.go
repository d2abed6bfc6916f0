package analysis

import (
	"sort"
	"strconv"
	"time"

	"github.com/ademuri/streaming-stats/internal/history"
)

// ComputeStats derives every summary statistic from events in a single pass.
// sessions is the output of Segment over the same events.
func ComputeStats(events []history.PlayEvent, sessions []Session, opts Options) Stats {
	opts = opts.withDefaults()

	var (
		totalMs                   int64
		skipped, offline, shuffle int
		hours                     [24]int
		months                    [13]int
		years                     = make(map[int]int)
		weekdays                  = newCounter()
		platforms                 = newCounter()
		artists                   = newCounter()
		tracks                    = newCounter()
		albums                    = newCounter()
	)

	for _, e := range events {
		totalMs += e.MsPlayed
		if e.Skipped {
			skipped++
		}
		if e.Offline {
			offline++
		}
		if e.Shuffle {
			shuffle++
		}

		hours[e.Timestamp.Hour()]++
		months[e.Timestamp.Month()]++
		years[e.Timestamp.Year()]++
		weekdays.add(e.Timestamp.Weekday().String())

		if e.Platform != nil {
			platforms.add(*e.Platform)
		}
		if e.ArtistName != nil {
			artists.add(*e.ArtistName)
		}
		if e.TrackName != nil {
			tracks.add(*e.TrackName)
		}
		if e.AlbumName != nil {
			albums.add(*e.AlbumName)
		}
	}

	n := float64(len(events))
	stats := Stats{
		TotalStats: TotalStats{
			TotalListeningHours:       round2(float64(totalMs) / msPerHour),
			TotalListeningMinutes:     round2(float64(totalMs) / msPerMinute),
			TotalTracksPlayed:         len(events),
			UniqueArtists:             artists.len(),
			UniqueAlbums:              albums.len(),
			UniqueTracks:              tracks.len(),
			AverageTrackLengthSeconds: round2(ratio(float64(totalMs), n) / msPerSecond),
		},
		BehaviorStats: BehaviorStats{
			SkipRate:    round2(100 * ratio(float64(skipped), n)),
			OfflineRate: round2(100 * ratio(float64(offline), n)),
			ShuffleRate: round2(100 * ratio(float64(shuffle), n)),
		},
		SessionStats:  SummarizeSessions(sessions),
		PlatformStats: platforms.ranked(),
		TopContent: TopContent{
			TopArtists: artists.top(opts.TopN),
			TopTracks:  tracks.top(opts.TopN),
			TopAlbums:  albums.top(opts.TopN),
		},
	}

	lp := ListeningPatterns{
		HourlyDistribution:  make(Counts, 0, len(hours)),
		DailyDistribution:   weekdays.ranked(),
		MonthlyDistribution: make(Counts, 0, 12),
		YearlyDistribution:  make(Counts, 0, len(years)),
	}

	peakHour, peakCount := -1, 0
	for hour, count := range hours {
		if count == 0 {
			continue
		}
		lp.HourlyDistribution = append(lp.HourlyDistribution, Count{Key: strconv.Itoa(hour), Count: count})
		if count > peakCount {
			peakHour, peakCount = hour, count
		}
	}
	if peakHour >= 0 {
		lp.PeakHour = &peakHour
	}

	// Ranked order puts the most frequent weekday first, ties in first-seen
	// order.
	if len(lp.DailyDistribution) > 0 {
		peakDay := lp.DailyDistribution[0].Key
		lp.PeakDay = &peakDay
	}

	for month := time.January; month <= time.December; month++ {
		if months[month] > 0 {
			lp.MonthlyDistribution = append(lp.MonthlyDistribution, Count{Key: strconv.Itoa(int(month)), Count: months[month]})
		}
	}

	yearKeys := make([]int, 0, len(years))
	for year := range years {
		yearKeys = append(yearKeys, year)
	}
	sort.Ints(yearKeys)
	for _, year := range yearKeys {
		lp.YearlyDistribution = append(lp.YearlyDistribution, Count{Key: strconv.Itoa(year), Count: years[year]})
	}

	stats.ListeningPatterns = lp
	return stats
}
