package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"gopkg.in/yaml.v3"
)

func writeReport(out io.Writer, report *analysis.Report, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}

	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}

	case "table":
		for _, t := range reportTables(report) {
			if _, err := io.WriteString(out, t.String()); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}

	default:
		return fmt.Errorf("unknown format %q: expected json, yaml or table", format)
	}
	return nil
}
