package model

import (
	"strings"
	"time"
)

// DisplayLayout is the zh-CN numeric date-time form used throughout the UI.
const DisplayLayout = "2006/01/02 15:04:05"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// FormatDateTime renders an ISO-8601 timestamp in local time.
// Input that cannot be parsed is returned unchanged.
func FormatDateTime(iso string) string {
	return FormatDateTimeIn(iso, time.Local)
}

// FormatDateTimeIn is FormatDateTime with an explicit location.
// Zone-less date-time input is interpreted in loc.
func FormatDateTimeIn(iso string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(iso)
	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc).Format(DisplayLayout)
		}
	}
	// A bare date is midnight UTC.
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.In(loc).Format(DisplayLayout)
	}
	return iso
}
