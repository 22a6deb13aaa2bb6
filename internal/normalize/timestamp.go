package normalize

import (
	"fmt"
	"time"
)

// FormatTimestamp renders t as "5th March 2024 - 10:15 AM UTC".
// The wall clock of t is printed as is; t is not converted to UTC first.
func FormatTimestamp(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%d%s %s UTC", day, daySuffix(day), t.Format("January 2006 - 03:04 PM"))
}

func daySuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
