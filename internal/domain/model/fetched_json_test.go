package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSampleTimestamp(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	kolkata := time.FixedZone("IST", 5*3600+30*60)
	newYork := time.FixedZone("EST", -5*3600)
	lmt := time.FixedZone("LMT", 53*60+28)

	tests := []struct {
		name  string
		t     time.Time
		zoned bool
		want  string
	}{
		{
			name: "naive whole second",
			t:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2020-01-01 00:00:00",
		},
		{
			name: "naive with microseconds",
			t:    time.Date(2023, 7, 9, 13, 4, 5, 123456000, time.UTC),
			want: "2023-07-09 13:04:05.123456",
		},
		{
			name: "sub-microsecond digits are dropped",
			t:    time.Date(2023, 7, 9, 13, 4, 5, 999, time.UTC),
			want: "2023-07-09 13:04:05",
		},
		{
			name: "leading zero microseconds",
			t:    time.Date(2023, 7, 9, 13, 4, 5, 5000, time.UTC),
			want: "2023-07-09 13:04:05.000005",
		},
		{
			name:  "zoned utc",
			t:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			zoned: true,
			want:  "2020-01-01 00:00:00+00:00",
		},
		{
			name:  "zoned positive offset",
			t:     time.Date(2023, 1, 2, 3, 4, 5, 600000000, berlin),
			zoned: true,
			want:  "2023-01-02 03:04:05.600000+01:00",
		},
		{
			name:  "zoned half hour offset",
			t:     time.Date(2023, 1, 2, 3, 4, 5, 0, kolkata),
			zoned: true,
			want:  "2023-01-02 03:04:05+05:30",
		},
		{
			name:  "zoned negative offset",
			t:     time.Date(2023, 1, 2, 3, 4, 5, 0, newYork),
			zoned: true,
			want:  "2023-01-02 03:04:05-05:00",
		},
		{
			name:  "zoned offset with seconds",
			t:     time.Date(1890, 1, 2, 3, 4, 5, 0, lmt),
			zoned: true,
			want:  "1890-01-02 03:04:05+00:53:28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSampleTimestamp(tt.t, tt.zoned))
		})
	}
}

func TestFetchedJSON_FetchedAtString(t *testing.T) {
	row := FetchedJSON{
		URL:       "https://v6.vbb.transport.rest/trips",
		FetchedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2020-01-01 00:00:00", row.FetchedAtString())

	row.FetchedAtKind = TimestampZoned
	assert.Equal(t, "2020-01-01 00:00:00+00:00", row.FetchedAtString())

	row.FetchedAtKind = TimestampText
	row.FetchedAtText = "2020-01-01T00:00:00Z"
	assert.Equal(t, "2020-01-01T00:00:00Z", row.FetchedAtString())

	row.FetchedAtText = ""
	assert.Empty(t, row.FetchedAtString(), "empty text is used verbatim")
}
