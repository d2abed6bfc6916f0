package history

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Period is a half-open time range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Filter returns the events that fall inside the period, in input order.
func (p Period) Filter(events []PlayEvent) []PlayEvent {
	filtered := make([]PlayEvent, 0, len(events))
	for _, e := range events {
		if p.Contains(e.Timestamp) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

type parsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParsePeriod parses "START" or "START,END", where each bound is YYYY,
// YYYY-MM or YYYY-MM-DD. A single bound covers that whole year, month or day.
// Bounds are interpreted in loc, or UTC when loc is nil.
func ParsePeriod(s string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		return implicitPeriod(strings.TrimSpace(parts[0]), loc)
	case 2:
		return explicitPeriod(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), loc)
	default:
		return Period{}, fmt.Errorf("Expected one or two dates, got %q", s)
	}
}

func implicitPeriod(ds string, loc *time.Location) (Period, error) {
	date, err := parseDatestring(ds, loc)
	if err != nil {
		return Period{}, err
	}

	p := Period{Start: date.Date}
	switch {
	case date.Year:
		p.End = p.Start.AddDate(1, 0, 0)
	case date.Month:
		p.End = p.Start.AddDate(0, 1, 0)
	default:
		p.End = p.Start.AddDate(0, 0, 1)
	}
	return p, nil
}

func explicitPeriod(startString, endString string, loc *time.Location) (Period, error) {
	start, err := parseDatestring(startString, loc)
	if err != nil {
		return Period{}, err
	}
	end, err := parseDatestring(endString, loc)
	if err != nil {
		return Period{}, err
	}
	if !end.Date.After(start.Date) {
		return Period{}, fmt.Errorf("End %q is not after start %q", endString, startString)
	}
	return Period{Start: start.Date, End: end.Date}, nil
}

func parseDatestring(ds string, loc *time.Location) (date parsedDate, err error) {
	switch {
	case yearPattern.MatchString(ds):
		date.Date, err = time.ParseInLocation("2006", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true

	case monthPattern.MatchString(ds):
		date.Date, err = time.ParseInLocation("2006-01", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true

	case dayPattern.MatchString(ds):
		date.Date, err = time.ParseInLocation("2006-01-02", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}
	return
}
