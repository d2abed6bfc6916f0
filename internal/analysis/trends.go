package analysis

import (
	"sort"

	"github.com/ademuri/streaming-stats/internal/history"
)

const dateLayout = "2006-01-02"

// DailyBucket aggregates the events of one calendar date. Rates are fractions
// of the day's events.
type DailyBucket struct {
	Date        string
	MsPlayed    int64
	Tracks      int
	SkipRate    float64
	OfflineRate float64
	ShuffleRate float64
}

// HoursPlayed converts the bucket's play time to hours.
func (b DailyBucket) HoursPlayed() float64 {
	return float64(b.MsPlayed) / msPerHour
}

// DailyBuckets groups events by the date component of their timestamp. Only
// dates with at least one event get a bucket; buckets are in ascending date
// order.
func DailyBuckets(events []history.PlayEvent) []DailyBucket {
	type tally struct {
		ms                        int64
		n                         int
		skipped, offline, shuffle int
	}
	byDate := make(map[string]*tally)
	for _, e := range events {
		date := e.Timestamp.Format(dateLayout)
		t, ok := byDate[date]
		if !ok {
			t = &tally{}
			byDate[date] = t
		}
		t.ms += e.MsPlayed
		t.n++
		if e.Skipped {
			t.skipped++
		}
		if e.Offline {
			t.offline++
		}
		if e.Shuffle {
			t.shuffle++
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	buckets := make([]DailyBucket, 0, len(dates))
	for _, date := range dates {
		t := byDate[date]
		n := float64(t.n)
		buckets = append(buckets, DailyBucket{
			Date:        date,
			MsPlayed:    t.ms,
			Tracks:      t.n,
			SkipRate:    float64(t.skipped) / n,
			OfflineRate: float64(t.offline) / n,
			ShuffleRate: float64(t.shuffle) / n,
		})
	}
	return buckets
}

// ComputeTrends builds the daily series and their trailing rolling averages.
func ComputeTrends(events []history.PlayEvent, opts Options) Trends {
	opts = opts.withDefaults()
	buckets := DailyBuckets(events)

	dates := make([]string, len(buckets))
	hours := make([]float64, len(buckets))
	tracks := make([]float64, len(buckets))
	skip := make([]float64, len(buckets))
	offline := make([]float64, len(buckets))
	shuffle := make([]float64, len(buckets))
	for i, b := range buckets {
		dates[i] = b.Date
		hours[i] = b.HoursPlayed()
		tracks[i] = float64(b.Tracks)
		skip[i] = b.SkipRate
		offline[i] = b.OfflineRate
		shuffle[i] = b.ShuffleRate
	}

	rollingDates := make([]string, len(dates))
	copy(rollingDates, dates)

	return Trends{
		DailyStats: Series{
			Dates:        dates,
			HoursPlayed:  numbers(hours),
			TracksPlayed: numbers(tracks),
			SkipRate:     numbers(skip),
			OfflineRate:  numbers(offline),
			ShuffleRate:  numbers(shuffle),
		},
		RollingAverages: Series{
			Dates:        rollingDates,
			HoursPlayed:  Rolling(hours, opts.RollingWindow),
			TracksPlayed: Rolling(tracks, opts.RollingWindow),
			SkipRate:     Rolling(skip, opts.RollingWindow),
			OfflineRate:  Rolling(offline, opts.RollingWindow),
			ShuffleRate:  Rolling(shuffle, opts.RollingWindow),
		},
	}
}

// Rolling computes a trailing simple moving average over window positions.
// The first window-1 entries are undefined.
func Rolling(values []float64, window int) []Number {
	out := make([]Number, len(values))
	for i := range values {
		if window <= 0 || i < window-1 {
			out[i] = NaN()
			continue
		}
		var sum float64
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}
		out[i] = Number(sum / float64(window))
	}
	return out
}

func numbers(values []float64) []Number {
	out := make([]Number, len(values))
	for i, v := range values {
		out[i] = Number(v)
	}
	return out
}
