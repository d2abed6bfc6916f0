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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/history"
)

type StatsConfig struct {
	Format     string
	Output     string
	SessionGap time.Duration
	TopN       int
	Window     int
	Timezone   string
	Period     string
	Verbose    bool
}

func runStats(out io.Writer, path string, config StatsConfig) error {
	logf := func(format string, args ...interface{}) {
		if config.Verbose {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	var loc *time.Location
	if config.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(config.Timezone)
		if err != nil {
			return fmt.Errorf("--timezone: %w", err)
		}
	}

	events, err := history.Load(path, history.Options{Location: loc})
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	logf("Loaded %d play events from %s", len(events), path)

	if config.Period != "" {
		period, err := history.ParsePeriod(config.Period, loc)
		if err != nil {
			return fmt.Errorf("--period: %w", err)
		}
		events = period.Filter(events)
		logf("%d play events between %s and %s", len(events),
			period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))
	}

	report := analysis.GenerateReport(events, analysis.Options{
		SessionGap:    config.SessionGap,
		TopN:          config.TopN,
		RollingWindow: config.Window,
	})
	logf("Found %d listening sessions over %d active days",
		report.Stats.SessionStats.TotalSessions, len(report.Trends.DailyStats.Dates))

	if config.Output != "" {
		if err := writeReportFile(config.Output, report, config.Format); err != nil {
			return err
		}
		logf("Wrote report to %s", config.Output)
		return nil
	}

	return writeReport(out, report, config.Format)
}

// writeReportFile writes to a temporary file next to path and renames it into
// place, so a failed write never leaves a partial report behind.
func writeReportFile(path string, report *analysis.Report, format string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = writeReport(f, report, format); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("renaming output: %w", err)
	}
	return nil
}
