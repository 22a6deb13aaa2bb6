package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaySuffix(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 24: "24th",
		30: "30th", 31: "31st",
	}
	for day, want := range cases {
		ts := time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
		got := FormatTimestamp(ts)
		assert.Equal(t, want+" January 2024 - 12:00 AM UTC", got, "day %d", day)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 10, 15, 0, 0, time.UTC)
	assert.Equal(t, "5th March 2024 - 10:15 AM UTC", FormatTimestamp(ts))

	ts = time.Date(2023, time.December, 22, 21, 7, 0, 0, time.UTC)
	assert.Equal(t, "22nd December 2023 - 09:07 PM UTC", FormatTimestamp(ts))
}

func TestFormatTimestamp_KeepsWallClock(t *testing.T) {
	loc := time.FixedZone("", -5*60*60)
	ts := time.Date(2024, time.March, 5, 23, 30, 0, 0, loc)

	// Still the 5th at 11:30 PM; the offset is not applied.
	assert.Equal(t, "5th March 2024 - 11:30 PM UTC", FormatTimestamp(ts))
}
