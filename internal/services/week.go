package services

import "time"

// DateLayout formats calendar dates (week bounds, chart buckets).
const DateLayout = "2006-01-02"

// WeekWindow is the Monday–Sunday calendar week containing some instant.
// Start and End are midnights in the window's location; EndExclusive is the
// following Monday's midnight and bounds range queries as [Start, EndExclusive).
type WeekWindow struct {
	Start        time.Time
	End          time.Time
	EndExclusive time.Time
}

// WeekOf returns the week containing now, evaluated in loc (UTC when nil).
func WeekOf(now time.Time, loc *time.Location) WeekWindow {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	start := time.Date(local.Year(), local.Month(), local.Day()-daysSinceMonday, 0, 0, 0, 0, loc)
	return WeekWindow{
		Start:        start,
		End:          start.AddDate(0, 0, 6),
		EndExclusive: start.AddDate(0, 0, 7),
	}
}

func (w WeekWindow) StartDate() string { return w.Start.Format(DateLayout) }
func (w WeekWindow) EndDate() string   { return w.End.Format(DateLayout) }

// Contains reports whether t falls in [Start, EndExclusive).
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.EndExclusive)
}

// LastInstant is the final millisecond of the week, used in the weekly prompt.
func (w WeekWindow) LastInstant() time.Time {
	return w.EndExclusive.Add(-time.Millisecond)
}

// formatInstant renders t in UTC with millisecond precision.
func formatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
