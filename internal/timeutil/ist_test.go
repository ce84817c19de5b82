package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-15")
	require.NoError(t, err)

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	_, offset := got.Zone()
	assert.Equal(t, 5*3600+30*60, offset)

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	// 20:00 UTC is already the next day in IST
	utc := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)

	start := StartOfDay(utc)
	assert.Equal(t, 16, start.Day())
	assert.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	assert.Equal(t, 16, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(start))
}

func TestToIST(t *testing.T) {
	utc := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	ist := ToIST(utc)

	assert.Equal(t, 17, ist.Hour())
	assert.Equal(t, 30, ist.Minute())
	assert.True(t, utc.Equal(ist), "conversion keeps the instant")
}
