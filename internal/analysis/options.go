package analysis

import "time"

const (
	DefaultSessionGap    = 30 * time.Minute
	DefaultTopN          = 10
	DefaultRollingWindow = 7
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// Options tunes the analysis. Zero values fall back to the defaults.
type Options struct {
	// Gap of inactivity after which a new listening session starts.
	SessionGap time.Duration

	// Number of entries kept in each top content ranking.
	TopN int

	// Number of daily buckets averaged by the rolling series.
	RollingWindow int
}

func (o Options) withDefaults() Options {
	if o.SessionGap <= 0 {
		o.SessionGap = DefaultSessionGap
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.RollingWindow <= 0 {
		o.RollingWindow = DefaultRollingWindow
	}
	return o
}
