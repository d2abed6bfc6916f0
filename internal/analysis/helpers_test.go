package analysis

import (
	"time"

	"github.com/ademuri/streaming-stats/internal/history"
)

var base = time.Date(2023, 3, 6, 9, 0, 0, 0, time.UTC) // a Monday

func str(s string) *string {
	return &s
}

func play(at time.Time, ms int64, artist, track, album string) history.PlayEvent {
	e := history.PlayEvent{Timestamp: at, MsPlayed: ms, Platform: str("android")}
	if artist != "" {
		e.ArtistName = str(artist)
	}
	if track != "" {
		e.TrackName = str(track)
	}
	if album != "" {
		e.AlbumName = str(album)
	}
	return e
}
