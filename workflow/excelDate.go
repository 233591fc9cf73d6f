package workflow

import (
	"strconv"
	"strings"
	"time"
)

// Excel stores dates as day counts since 1900-01-01, but counts a fictitious
// 1900-02-29, so the usable epoch is 1899-12-30.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ConvertExcelDate normalizes one spreadsheet date cell to dd/mm/yyyy text.
// Dash-delimited strings are rewritten to slashes verbatim, serial day
// numbers are resolved against the Excel epoch, and anything else is
// returned unchanged. It never fails: unrecognized input degrades to the
// original value.
func ConvertExcelDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		// Serial values outside a sane day range are identifiers, not dates.
		if serial <= 1 || serial > 100000 {
			return value
		}
		date := excelEpoch.AddDate(0, 0, int(serial))
		return date.Format("02/01/2006")
	}

	if strings.ContainsAny(trimmed, "/-") {
		return strings.ReplaceAll(trimmed, "-", "/")
	}

	return value
}

// ParseBookingDate resolves a booking's scheduled date for calendar
// comparison. Accepts serial day numbers, dd/mm/yyyy or dd-mm-yyyy text,
// and a few free-form layouts. The boolean reports whether parsing
// succeeded; callers treat failure as "unscheduled", not as an error.
func ParseBookingDate(value string, location *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if serial <= 1 || serial > 100000 {
			return time.Time{}, false
		}
		date := excelEpoch.AddDate(0, 0, int(serial))
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, location), true
	}

	normalized := strings.ReplaceAll(trimmed, "-", "/")
	for _, layout := range []string{"02/01/2006", "2/1/2006", "2006/01/02", "02/01/06"} {
		if parsed, err := time.ParseInLocation(layout, normalized, location); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
