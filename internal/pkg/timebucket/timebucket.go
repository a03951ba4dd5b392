package timebucket

import (
	"fmt"
	"time"
)

// Granularity enum for time-series grouping
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity maps a query-string value to a Granularity.
// An empty value defaults to day grouping.
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "", "day":
		return GranularityDay, true
	case "week":
		return GranularityWeek, true
	case "month":
		return GranularityMonth, true
	case "year":
		return GranularityYear, true
	}
	return "", false
}

// Bucket is one time-series slot. Key is unique per granularity,
// Label is what charts display, SortKey orders buckets chronologically.
type Bucket struct {
	Key     string
	Label   string
	SortKey time.Time
}

// DateOnly strips the time-of-day component. All engine date math
// works on UTC midnight values.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Key maps a calendar date to its bucket at the given granularity.
// Weeks follow ISO-8601 numbering with the Monday as SortKey.
func Key(date time.Time, g Granularity) Bucket {
	d := DateOnly(date)

	switch g {
	case GranularityWeek:
		year, week := d.ISOWeek()
		monday := d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
		key := fmt.Sprintf("%d-W%02d", year, week)
		return Bucket{Key: key, Label: key, SortKey: monday}
	case GranularityMonth:
		key := d.Format("2006-01")
		return Bucket{
			Key:     key,
			Label:   d.Format("Jan 2006"),
			SortKey: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
		}
	case GranularityYear:
		key := d.Format("2006")
		return Bucket{
			Key:     key,
			Label:   key,
			SortKey: time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
		}
	default:
		key := d.Format("2006-01-02")
		return Bucket{Key: key, Label: key, SortKey: d}
	}
}

// NormalizeRange swaps an unordered from/to pair and strips time-of-day.
func NormalizeRange(from, to time.Time) (time.Time, time.Time) {
	from, to = DateOnly(from), DateOnly(to)
	if from.After(to) {
		from, to = to, from
	}
	return from, to
}

// DayCount returns the inclusive number of days in [from, to].
func DayCount(from, to time.Time) int {
	from, to = NormalizeRange(from, to)
	return int(to.Sub(from).Hours()/24) + 1
}

// PreviousPeriod returns the window of identical day-count that
// immediately precedes [from, to]: adjacent and non-overlapping.
func PreviousPeriod(from, to time.Time) (prevFrom, prevTo time.Time) {
	from, to = NormalizeRange(from, to)
	n := DayCount(from, to)
	prevTo = from.AddDate(0, 0, -1)
	prevFrom = prevTo.AddDate(0, 0, -(n - 1))
	return prevFrom, prevTo
}
