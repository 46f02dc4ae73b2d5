package timeopt

import "fmt"

// DayStart and DayEnd are the catalog endpoints used for full-day windows.
const (
	DayStart = "12:00 AM"
	DayEnd   = "11:59 PM"
)

// Catalog is the fixed ordered list of selectable clock labels. Schedule
// boundaries are always chosen from this list; only NextMinute may produce a
// label outside of it.
var Catalog = []string{
	"12:00 AM",
	"12:01 AM",
	"12:30 AM",
	"1:00 AM",
	"1:30 AM",
	"2:00 AM",
	"2:30 AM",
	"3:00 AM",
	"3:30 AM",
	"4:00 AM",
	"4:30 AM",
	"5:00 AM",
	"5:30 AM",
	"6:00 AM",
	"6:30 AM",
	"7:00 AM",
	"7:30 AM",
	"8:00 AM",
	"8:01 AM",
	"8:30 AM",
	"9:00 AM",
	"9:30 AM",
	"10:00 AM",
	"10:30 AM",
	"11:00 AM",
	"11:30 AM",
	"12:00 PM",
	"12:01 PM",
	"12:30 PM",
	"1:00 PM",
	"1:30 PM",
	"2:00 PM",
	"2:30 PM",
	"3:00 PM",
	"3:30 PM",
	"4:00 PM",
	"4:30 PM",
	"5:00 PM",
	"5:01 PM",
	"5:30 PM",
	"6:00 PM",
	"6:30 PM",
	"7:00 PM",
	"7:30 PM",
	"8:00 PM",
	"8:01 PM",
	"8:30 PM",
	"9:00 PM",
	"9:01 PM",
	"9:30 PM",
	"10:00 PM",
	"10:30 PM",
	"11:00 PM",
	"11:30 PM",
	"11:59 PM",
}

var catalogIndex = buildIndex()

func buildIndex() map[string]int {
	idx := make(map[string]int, len(Catalog))
	for i, label := range Catalog {
		idx[label] = i
	}
	return idx
}

// Minutes converts a 12-hour clock label into minutes since midnight.
// Unparseable input yields 0, matching the defensive behaviour expected by
// the schedule engine (bad values are clamped upstream).
func Minutes(label string) int {
	var hour, minute int
	var period string
	if _, err := fmt.Sscanf(label, "%d:%d %s", &hour, &minute, &period); err != nil {
		return 0
	}
	if period == "PM" && hour < 12 {
		hour += 12
	}
	if period == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute
}

// Before reports whether a strictly precedes b within the day.
func Before(a, b string) bool {
	return Minutes(a) < Minutes(b)
}

// Index returns the catalog position of label, or -1 when the label is not a
// catalog entry.
func Index(label string) int {
	if i, ok := catalogIndex[label]; ok {
		return i
	}
	return -1
}

// EntryBefore returns the catalog entry immediately preceding label. The
// second return value is false when label is absent from the catalog or is
// its first entry; callers pick their own fallback in that case.
func EntryBefore(label string) (string, bool) {
	i := Index(label)
	if i <= 0 {
		return "", false
	}
	return Catalog[i-1], true
}

// EntryBeforeOrFirst behaves like EntryBefore but falls back to the first
// catalog entry instead of reporting failure.
func EntryBeforeOrFirst(label string) string {
	if prev, ok := EntryBefore(label); ok {
		return prev
	}
	return Catalog[0]
}

// NextMinute returns the label one minute after the given one, wrapping at
// midnight. The result is used as a slot start boundary and does not need to
// be a catalog entry.
func NextMinute(label string) string {
	total := (Minutes(label) + 1) % (24 * 60)
	hour := total / 60
	minute := total % 60

	period := "AM"
	display := hour
	if hour >= 12 {
		period = "PM"
		if hour > 12 {
			display = hour - 12
		}
	}
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}
