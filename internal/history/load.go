package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Layouts tried in order when parsing a record's timestamp. Values without a
// zone offset are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Load reads a streaming history export and normalizes every record in it.
func Load(path string, opts Options) ([]PlayEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}
	return Parse(data, opts)
}

// Parse decodes a JSON array of raw records and normalizes them.
func Parse(data []byte, opts Options) ([]PlayEvent, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedRecordError{Index: -1, Err: fmt.Errorf("expected a list of records: %w", err)}
	}
	// A null document decodes without error but is not a list.
	if raw == nil {
		return nil, &MalformedRecordError{Index: -1, Err: errors.New("expected a list of records, got null")}
	}
	return Normalize(raw, opts)
}

// Normalize converts raw records into play events, keeping input order. The
// first record that cannot be converted fails the whole batch.
func Normalize(raw []json.RawMessage, opts Options) ([]PlayEvent, error) {
	events := make([]PlayEvent, 0, len(raw))
	for i, r := range raw {
		event, err := normalizeRecord(r, opts)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Index = i
				return nil, malformed
			}
			return nil, &MalformedRecordError{Index: i, Err: err}
		}
		events = append(events, event)
	}
	return events, nil
}

func normalizeRecord(data json.RawMessage, opts Options) (PlayEvent, error) {
	var rec rawRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return PlayEvent{}, &MalformedRecordError{Field: typeErr.Field, Err: err}
		}
		return PlayEvent{}, err
	}

	if rec.Timestamp == nil {
		return PlayEvent{}, &MalformedRecordError{Field: "ts", Err: errors.New("missing timestamp")}
	}
	ts, err := parseTimestamp(*rec.Timestamp)
	if err != nil {
		return PlayEvent{}, &MalformedRecordError{Field: "ts", Err: err}
	}
	if opts.Location != nil {
		ts = ts.In(opts.Location)
	}

	msPlayed, err := parseMsPlayed(rec.MsPlayed)
	if err != nil {
		return PlayEvent{}, &MalformedRecordError{Field: "ms_played", Err: err}
	}

	event := PlayEvent{
		Timestamp:  ts,
		MsPlayed:   msPlayed,
		TrackName:  rec.TrackName,
		ArtistName: rec.ArtistName,
		AlbumName:  rec.AlbumName,
		Platform:   rec.Platform,
		Skipped:    rec.Skipped != nil && *rec.Skipped,
		Offline:    rec.Offline != nil && *rec.Offline,
		Shuffle:    rec.Shuffle != nil && *rec.Shuffle,
	}
	return event, nil
}

// parseTimestamp handles ISO8601 variants as well as Unix seconds given as a
// string.
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return time.Unix(seconds, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("parsing timestamp %q: unrecognized format", value)
}

func parseMsPlayed(n *json.Number) (int64, error) {
	if n == nil || *n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", n.String(), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parsing %q: not a finite number", n.String())
	}
	return int64(f), nil
}
