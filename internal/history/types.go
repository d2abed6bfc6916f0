package history

import (
	"encoding/json"
	"time"
)

// PlayEvent is a single normalized listening record. Name and platform fields
// are nil when the export has no value for them, which happens for podcast
// episodes and ads.
type PlayEvent struct {
	Timestamp  time.Time
	MsPlayed   int64
	TrackName  *string
	ArtistName *string
	AlbumName  *string
	Platform   *string
	Skipped    bool
	Offline    bool
	Shuffle    bool
}

// Options controls how raw records are normalized.
type Options struct {
	// Location, if set, converts every timestamp into this zone. Otherwise
	// the offset present in the input is kept.
	Location *time.Location
}

// rawRecord mirrors one entry of a streaming history export.
type rawRecord struct {
	Timestamp  *string      `json:"ts"`
	MsPlayed   *json.Number `json:"ms_played"`
	TrackName  *string      `json:"master_metadata_track_name"`
	ArtistName *string      `json:"master_metadata_album_artist_name"`
	AlbumName  *string      `json:"master_metadata_album_album_name"`
	Platform   *string      `json:"platform"`
	Skipped    *bool        `json:"skipped"`
	Offline    *bool        `json:"offline"`
	Shuffle    *bool        `json:"shuffle"`
}
