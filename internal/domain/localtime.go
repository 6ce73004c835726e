package domain

import (
	"strings"
	"time"
)

// Output formats for localized timestamps.
const (
	utcFormat        = "2006-01-02 15:04 UTC"
	localFormat      = "2006-01-02 15:04 MST"
	localShortFormat = "01/02 15:04"
)

// Accepted input patterns, tried after the Unix-epoch interpretation.
const (
	isoNoZoneFormat   = "2006-01-02T15:04:05"
	fallbackUTCFormat = "2006-01-02 15:04:05"
)

// LocalizeTime converts a timestamp of unspecified encoding into UTC
// and local renderings. Interpretations are attempted in order: Unix
// epoch seconds (number or numeric string), ISO-8601 (any value
// containing "T", with or without a zone; zoneless is read as UTC),
// then the legacy "YYYY-MM-DD HH:MM:SS" pattern as UTC. A value that
// exhausts all three passes through unchanged in every string slot —
// best-effort degradation, not an error.
func LocalizeTime(raw Scalar, loc *time.Location) *LocalTimes {
	if !raw.Present() {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	parsed, ok := parseTimestamp(raw)
	if !ok {
		s := raw.Text()
		return &LocalTimes{UTC: s, Local: s, LocalShort: s}
	}

	utc := parsed.UTC()
	local := parsed.In(loc)
	return &LocalTimes{
		UTC:        utc.Format(utcFormat),
		Local:      local.Format(localFormat),
		LocalShort: local.Format(localShortFormat),
		ISO:        local.Format(time.RFC3339),
		Parsed:     utc,
	}
}

func parseTimestamp(raw Scalar) (time.Time, bool) {
	// Epoch seconds. Fractional seconds are truncated; the feed's
	// observation times carry whole-second precision.
	if v, ok := raw.Float(); ok {
		return time.Unix(int64(v), 0), true
	}

	s := strings.TrimSpace(raw.Text())
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		if t, err := time.Parse(isoNoZoneFormat, s); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	if t, err := time.Parse(fallbackUTCFormat, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
