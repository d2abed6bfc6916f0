/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ademuri/streaming-stats/internal/history"
	"gopkg.in/yaml.v3"
)

const testHistory = `[
  {"ts": "2023-03-06T09:00:00Z", "ms_played": 180000, "platform": "android",
   "master_metadata_track_name": "Song 1", "master_metadata_album_artist_name": "Artist A",
   "master_metadata_album_album_name": "Album A", "skipped": true, "offline": false, "shuffle": false},
  {"ts": "2023-03-06T09:04:00Z", "ms_played": 120000, "platform": "android",
   "master_metadata_track_name": "Song 2", "master_metadata_album_artist_name": "Artist A",
   "master_metadata_album_album_name": "Album A", "skipped": false, "offline": false, "shuffle": true},
  {"ts": "2023-04-07T21:30:00Z", "ms_played": 60000, "platform": "ios",
   "master_metadata_track_name": null, "master_metadata_album_artist_name": null,
   "master_metadata_album_album_name": null, "skipped": null, "offline": true, "shuffle": false}
]`

func createTestHistory(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func defaultTestConfig() StatsConfig {
	return StatsConfig{
		Format:     "json",
		SessionGap: 30 * time.Minute,
		TopN:       10,
		Window:     7,
	}
}

func TestRunStatsJSON(t *testing.T) {
	path := createTestHistory(t, testHistory)

	var out bytes.Buffer
	if err := runStats(&out, path, defaultTestConfig()); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}

	var doc struct {
		Stats struct {
			TotalStats struct {
				TotalTracksPlayed int `json:"total_tracks_played"`
				UniqueArtists     int `json:"unique_artists"`
			} `json:"total_stats"`
			SessionStats struct {
				TotalSessions int `json:"total_sessions"`
			} `json:"session_stats"`
			PlatformStats map[string]int `json:"platform_stats"`
		} `json:"stats"`
		Trends struct {
			DailyStats struct {
				Dates []string `json:"dates"`
			} `json:"daily_stats"`
			RollingAverages struct {
				HoursPlayed []*float64 `json:"hours_played"`
			} `json:"rolling_averages"`
		} `json:"trends"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}

	if doc.Stats.TotalStats.TotalTracksPlayed != 3 {
		t.Errorf("total_tracks_played = %d, want 3", doc.Stats.TotalStats.TotalTracksPlayed)
	}
	if doc.Stats.TotalStats.UniqueArtists != 1 {
		t.Errorf("unique_artists = %d, want 1", doc.Stats.TotalStats.UniqueArtists)
	}
	if doc.Stats.SessionStats.TotalSessions != 2 {
		t.Errorf("total_sessions = %d, want 2", doc.Stats.SessionStats.TotalSessions)
	}
	if doc.Stats.PlatformStats["android"] != 2 || doc.Stats.PlatformStats["ios"] != 1 {
		t.Errorf("platform_stats = %v", doc.Stats.PlatformStats)
	}
	if strings.Join(doc.Trends.DailyStats.Dates, ",") != "2023-03-06,2023-04-07" {
		t.Errorf("dates = %v", doc.Trends.DailyStats.Dates)
	}
	for i, v := range doc.Trends.RollingAverages.HoursPlayed {
		if v != nil {
			t.Errorf("rolling hours_played[%d] = %v, want null", i, *v)
		}
	}
}

func TestRunStatsIsRepeatable(t *testing.T) {
	path := createTestHistory(t, testHistory)

	var first, second bytes.Buffer
	if err := runStats(&first, path, defaultTestConfig()); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}
	if err := runStats(&second, path, defaultTestConfig()); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("output differs between runs:\n%s\n%s", first.String(), second.String())
	}
}

func TestRunStatsYAML(t *testing.T) {
	path := createTestHistory(t, testHistory)
	config := defaultTestConfig()
	config.Format = "yaml"

	var out bytes.Buffer
	if err := runStats(&out, path, config); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if _, ok := doc["stats"]; !ok {
		t.Errorf("stats missing from YAML output:\n%s", out.String())
	}
	if _, ok := doc["trends"]; !ok {
		t.Errorf("trends missing from YAML output:\n%s", out.String())
	}
}

func TestRunStatsTable(t *testing.T) {
	path := createTestHistory(t, testHistory)
	config := defaultTestConfig()
	config.Format = "table"

	var out bytes.Buffer
	if err := runStats(&out, path, config); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}

	for _, want := range []string{"## Totals", "## Top artists", "Artist A", "Peak day: Monday", "2023-04-07"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunStatsOutputFile(t *testing.T) {
	path := createTestHistory(t, testHistory)
	config := defaultTestConfig()
	config.Output = filepath.Join(t.TempDir(), "report.json")

	var out bytes.Buffer
	if err := runStats(&out, path, config); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", out.String())
	}
	data, err := os.ReadFile(config.Output)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("report file is not valid JSON: %s", data)
	}
}

func TestRunStatsOutputFileNotLeftOnError(t *testing.T) {
	path := createTestHistory(t, testHistory)
	dir := t.TempDir()
	config := defaultTestConfig()
	config.Format = "xml"
	config.Output = filepath.Join(dir, "report.json")

	if err := runStats(&bytes.Buffer{}, path, config); err == nil {
		t.Fatal("Expected error for unknown format, got nil")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	if len(entries) != 0 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected no files after a failed write, found %v", names)
	}
}

func TestRunStatsPeriod(t *testing.T) {
	path := createTestHistory(t, testHistory)
	config := defaultTestConfig()
	config.Period = "2023-04"

	var out bytes.Buffer
	if err := runStats(&out, path, config); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}
	if !strings.Contains(out.String(), `"total_tracks_played":1`) {
		t.Errorf("expected only the April event:\n%s", out.String())
	}
}

func TestRunStatsTimezone(t *testing.T) {
	path := createTestHistory(t, testHistory)
	config := defaultTestConfig()
	config.Timezone = "Asia/Tokyo"

	var out bytes.Buffer
	if err := runStats(&out, path, config); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}
	// 21:30 UTC on April 7th is the morning of April 8th in Tokyo.
	if !strings.Contains(out.String(), `"2023-04-08"`) {
		t.Errorf("expected dates in Tokyo time:\n%s", out.String())
	}

	config.Timezone = "Not/AZone"
	if err := runStats(&out, path, config); err == nil {
		t.Errorf("expected error for unknown time zone")
	}
}

func TestRunStatsMissingFile(t *testing.T) {
	err := runStats(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.json"), defaultTestConfig())
	var notFound *history.InputNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected InputNotFoundError, got %v", err)
	}
}

func TestRunStatsMalformed(t *testing.T) {
	path := createTestHistory(t, `[{"ts": "2023-03-06T09:00:00Z"}, {"ts": "not a time"}]`)

	var out bytes.Buffer
	err := runStats(&out, path, defaultTestConfig())
	var malformed *history.MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
	if malformed.Index != 1 {
		t.Errorf("Index = %d, want 1", malformed.Index)
	}
	if out.Len() != 0 {
		t.Errorf("expected no partial output, got %q", out.String())
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestHistory(t, `[]`)

	var out bytes.Buffer
	if err := runStats(&out, path, defaultTestConfig()); err != nil {
		t.Fatalf("runStats() error: %v", err)
	}
	for _, want := range []string{`"skip_rate":null`, `"peak_hour":null`, `"top_artists":{}`, `"total_sessions":0`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %s:\n%s", want, out.String())
		}
	}
}
