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
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/streaming-stats/internal/analysis"
)

// Table is one section of the human-readable report. The first row of
// results is the header.
type Table struct {
	title   string
	results [][]string
	summary string
}

func (a Table) String() string {
	out := new(bytes.Buffer)
	fmt.Fprintf(out, "## %s\n", a.title)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	fmt.Fprintln(out)
	return out.String()
}

func reportTables(report *analysis.Report) []Table {
	s := report.Stats
	totals := s.TotalStats
	patterns := s.ListeningPatterns

	peakHour, peakDay := "-", "-"
	if patterns.PeakHour != nil {
		peakHour = strconv.Itoa(*patterns.PeakHour)
	}
	if patterns.PeakDay != nil {
		peakDay = *patterns.PeakDay
	}

	tables := []Table{
		{
			title: "Totals",
			results: [][]string{
				{"Metric", "Value"},
				{"Listening hours", formatNumber(totals.TotalListeningHours)},
				{"Listening minutes", formatNumber(totals.TotalListeningMinutes)},
				{"Tracks played", strconv.Itoa(totals.TotalTracksPlayed)},
				{"Unique artists", strconv.Itoa(totals.UniqueArtists)},
				{"Unique albums", strconv.Itoa(totals.UniqueAlbums)},
				{"Unique tracks", strconv.Itoa(totals.UniqueTracks)},
				{"Average track length (s)", formatNumber(totals.AverageTrackLengthSeconds)},
			},
		},
		{
			title: "Behavior",
			results: [][]string{
				{"Metric", "Value"},
				{"Skip rate (%)", formatNumber(s.BehaviorStats.SkipRate)},
				{"Offline rate (%)", formatNumber(s.BehaviorStats.OfflineRate)},
				{"Shuffle rate (%)", formatNumber(s.BehaviorStats.ShuffleRate)},
				{"Sessions", strconv.Itoa(s.SessionStats.TotalSessions)},
				{"Average session (min)", formatNumber(s.SessionStats.AverageSessionMinutes)},
				{"Average tracks per session", formatNumber(s.SessionStats.AverageTracksPerSession)},
			},
		},
		countsTable("Listening by hour", "Hour", patterns.HourlyDistribution, fmt.Sprintf("Peak hour: %s", peakHour)),
		countsTable("Listening by weekday", "Day", patterns.DailyDistribution, fmt.Sprintf("Peak day: %s", peakDay)),
		countsTable("Listening by month", "Month", patterns.MonthlyDistribution, ""),
		countsTable("Listening by year", "Year", patterns.YearlyDistribution, ""),
		countsTable("Platforms", "Platform", s.PlatformStats, ""),
		countsTable("Top artists", "Artist", s.TopContent.TopArtists, ""),
		countsTable("Top tracks", "Track", s.TopContent.TopTracks, ""),
		countsTable("Top albums", "Album", s.TopContent.TopAlbums, ""),
	}

	daily := report.Trends.DailyStats
	rolling := report.Trends.RollingAverages
	trend := Table{
		title:   "Daily trends",
		results: [][]string{{"Date", "Hours", "Tracks", "Skip rate", "Rolling hours", "Rolling tracks"}},
		summary: fmt.Sprintf("%d active days", len(daily.Dates)),
	}
	for i, date := range daily.Dates {
		trend.results = append(trend.results, []string{
			date,
			formatNumber(daily.HoursPlayed[i]),
			formatNumber(daily.TracksPlayed[i]),
			formatNumber(daily.SkipRate[i]),
			formatNumber(rolling.HoursPlayed[i]),
			formatNumber(rolling.TracksPlayed[i]),
		})
	}
	return append(tables, trend)
}

func countsTable(title, keyHeader string, counts analysis.Counts, summary string) Table {
	t := Table{
		title:   title,
		results: [][]string{{keyHeader, "Plays"}},
		summary: summary,
	}
	for _, c := range counts {
		t.results = append(t.results, []string{c.Key, strconv.Itoa(c.Count)})
	}
	return t
}

func formatNumber(n analysis.Number) string {
	if !n.Defined() {
		return "-"
	}
	return strconv.FormatFloat(float64(n), 'f', 2, 64)
}
