package task

import (
	"strings"
	"time"
)

type layout struct {
	parse   string
	display string
	hasTime bool
}

// Accepted input layouts, tried in order. Anything else is kept as free text.
var layouts = []layout{
	{parse: "02/01/2006 1504", display: "Jan 02 2006, 3:04 PM", hasTime: true},
	{parse: "2006-01-02 15:04", display: "Jan 02 2006, 3:04 PM", hasTime: true},
	{parse: "02/01/2006", display: "Jan 02 2006"},
	{parse: "2006-01-02", display: "Jan 02 2006"},
}

// ParseTime parses a task time written in one of the supported formats
// (dd/mm/yyyy HHMM, yyyy-mm-dd HH:MM, or either date alone). hasClock reports
// whether the input carried a time of day. ok is false for free text.
func ParseTime(s string) (t time.Time, hasClock bool, ok bool) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		parsed, err := time.ParseInLocation(l.parse, s, time.Local)
		if err == nil {
			return parsed, l.hasTime, true
		}
	}
	return time.Time{}, false, false
}

// FormatTime returns the display form of a raw task time.
func FormatTime(s string) string {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		parsed, err := time.ParseInLocation(l.parse, s, time.Local)
		if err == nil {
			return parsed.Format(l.display)
		}
	}
	return s
}
