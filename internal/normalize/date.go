package normalize

import (
	"strings"
	"time"
)

// DateLayouts is the ordered list of layouts tried when parsing a date.
// Ambiguous strings resolve to the first layout that parses, so the order is
// a policy decision: day-first formats win over month-first. Layouts use
// unpadded reference fields so both "05/06/2023" and "5/6/2023" parse.
var DateLayouts = []string{
	"2006-1-2",   // ISO YYYY-MM-DD
	"2/1/2006",   // DD/MM/YYYY
	"1/2/2006",   // MM/DD/YYYY
	"2006/1/2",   // YYYY/MM/DD
	"2-1-2006",   // DD-MM-YYYY
	"2-Jan-2006", // DD-Mon-YYYY
}

// Date parses a textual date against layouts in order and returns the first
// successful parse, truncated to a date (midnight UTC). Blank input returns
// ErrAbsent; a present value no layout accepts returns ErrUnparseable.
func Date(s string, layouts []string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, ErrAbsent
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrUnparseable
}
