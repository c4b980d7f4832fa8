package model

import (
	"fmt"
	"time"
)

// TimestampKind describes the column type fetched_at was read from.
type TimestampKind int

const (
	// TimestampNaive is a timestamp without time zone.
	TimestampNaive TimestampKind = iota
	// TimestampZoned is a timestamptz, already converted to the session time zone.
	TimestampZoned
	// TimestampText is a textual column used verbatim.
	TimestampText
)

// FetchedJSON is one stored HTTP response from the fetched_json table.
type FetchedJSON struct {
	URL           string        `json:"url"        db:"url"`
	FetchedAt     time.Time     `json:"fetched_at" db:"fetched_at"`
	FetchedAtKind TimestampKind `json:"-"          db:"-"`
	// FetchedAtText holds the raw value for TimestampText.
	FetchedAtText string `json:"-"    db:"-"`
	Body          string `json:"body" db:"body"`
}

// FetchedAtString renders fetched_at the way the sample directory has always
// been keyed: "YYYY-MM-DD HH:MM:SS", then ".ffffff" only when the microsecond
// part is non-zero, then "+HH:MM" for zoned values.
func (f *FetchedJSON) FetchedAtString() string {
	switch f.FetchedAtKind {
	case TimestampText:
		return f.FetchedAtText
	case TimestampZoned:
		return FormatSampleTimestamp(f.FetchedAt, true)
	default:
		return FormatSampleTimestamp(f.FetchedAt, false)
	}
}

// FormatSampleTimestamp formats t with microsecond precision and an optional UTC offset.
func FormatSampleTimestamp(t time.Time, zoned bool) string {
	out := t.Format("2006-01-02 15:04:05")
	if usec := t.Nanosecond() / int(time.Microsecond); usec != 0 {
		out += fmt.Sprintf(".%06d", usec)
	}
	if zoned {
		_, offset := t.Zone()
		out += formatOffset(offset)
	}
	return out
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

// ExportResult summarises a completed or aborted export run.
type ExportResult struct {
	RunID string `json:"run_id"`
	// Rows is the number of files written, including overwrites.
	Rows int `json:"rows"`
	// Bytes is the total body size written.
	Bytes int64 `json:"bytes"`
	// Overwrites counts rows whose file name was already written earlier in the run.
	Overwrites int           `json:"overwrites"`
	Duration   time.Duration `json:"duration"`
}
