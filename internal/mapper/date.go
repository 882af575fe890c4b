package mapper

import (
	"strings"
	"time"
)

// SentinelDate is returned whenever an upload date cannot be parsed. The
// fallback is deliberate: a bad date must never abort mapping, and callers
// compare against this value when they need to detect "unknown".
var SentinelDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

const uploadDateLayout = "20060102"

// ParseDate parses an 8-digit YYYYMMDD upload date, falling back to
// SentinelDate for empty, malformed, or wrong-length input.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) != len(uploadDateLayout) {
		return SentinelDate
	}
	parsed, err := time.Parse(uploadDateLayout, raw)
	if err != nil {
		return SentinelDate
	}
	return parsed
}
