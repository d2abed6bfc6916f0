package analysis

// Report is the top-level document: summary statistics plus daily trends.
type Report struct {
	Stats  Stats  `json:"stats" yaml:"stats"`
	Trends Trends `json:"trends" yaml:"trends"`
}

type Stats struct {
	TotalStats        TotalStats        `json:"total_stats" yaml:"total_stats"`
	ListeningPatterns ListeningPatterns `json:"listening_patterns" yaml:"listening_patterns"`
	BehaviorStats     BehaviorStats     `json:"behavior_stats" yaml:"behavior_stats"`
	SessionStats      SessionStats      `json:"session_stats" yaml:"session_stats"`
	PlatformStats     Counts            `json:"platform_stats" yaml:"platform_stats"`
	TopContent        TopContent        `json:"top_content" yaml:"top_content"`
}

type TotalStats struct {
	TotalListeningHours       Number `json:"total_listening_hours" yaml:"total_listening_hours"`
	TotalListeningMinutes     Number `json:"total_listening_minutes" yaml:"total_listening_minutes"`
	TotalTracksPlayed         int    `json:"total_tracks_played" yaml:"total_tracks_played"`
	UniqueArtists             int    `json:"unique_artists" yaml:"unique_artists"`
	UniqueAlbums              int    `json:"unique_albums" yaml:"unique_albums"`
	UniqueTracks              int    `json:"unique_tracks" yaml:"unique_tracks"`
	AverageTrackLengthSeconds Number `json:"average_track_length_seconds" yaml:"average_track_length_seconds"`
}

// ListeningPatterns holds the temporal distributions. Hourly, monthly and
// yearly distributions are keyed in ascending order; the daily one is ordered
// by descending count.
type ListeningPatterns struct {
	PeakHour            *int    `json:"peak_hour" yaml:"peak_hour"`
	PeakDay             *string `json:"peak_day" yaml:"peak_day"`
	HourlyDistribution  Counts  `json:"hourly_distribution" yaml:"hourly_distribution"`
	DailyDistribution   Counts  `json:"daily_distribution" yaml:"daily_distribution"`
	MonthlyDistribution Counts  `json:"monthly_distribution" yaml:"monthly_distribution"`
	YearlyDistribution  Counts  `json:"yearly_distribution" yaml:"yearly_distribution"`
}

// BehaviorStats are percentages of events with the respective flag set.
type BehaviorStats struct {
	SkipRate    Number `json:"skip_rate" yaml:"skip_rate"`
	OfflineRate Number `json:"offline_rate" yaml:"offline_rate"`
	ShuffleRate Number `json:"shuffle_rate" yaml:"shuffle_rate"`
}

type SessionStats struct {
	AverageSessionMinutes   Number `json:"average_session_minutes" yaml:"average_session_minutes"`
	AverageTracksPerSession Number `json:"average_tracks_per_session" yaml:"average_tracks_per_session"`
	TotalSessions           int    `json:"total_sessions" yaml:"total_sessions"`
}

type TopContent struct {
	TopArtists Counts `json:"top_artists" yaml:"top_artists"`
	TopTracks  Counts `json:"top_tracks" yaml:"top_tracks"`
	TopAlbums  Counts `json:"top_albums" yaml:"top_albums"`
}

type Trends struct {
	DailyStats      Series `json:"daily_stats" yaml:"daily_stats"`
	RollingAverages Series `json:"rolling_averages" yaml:"rolling_averages"`
}

// Series is a set of parallel arrays indexed by bucket position. Rates are
// fractions in [0, 1], not percentages.
type Series struct {
	Dates        []string `json:"dates" yaml:"dates"`
	HoursPlayed  []Number `json:"hours_played" yaml:"hours_played"`
	TracksPlayed []Number `json:"tracks_played" yaml:"tracks_played"`
	SkipRate     []Number `json:"skip_rate" yaml:"skip_rate"`
	OfflineRate  []Number `json:"offline_rate" yaml:"offline_rate"`
	ShuffleRate  []Number `json:"shuffle_rate" yaml:"shuffle_rate"`
}
