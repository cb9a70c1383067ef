package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	// UTC 23:30 已是上海的次日
	utc := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
	got := DayStart(utc, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), got)

	noon := time.Date(2026, 3, 10, 12, 30, 45, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), DayStart(noon, loc))
}

func TestDaysBetween(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	a := time.Date(2026, 3, 9, 23, 59, 0, 0, loc)
	b := time.Date(2026, 3, 10, 0, 1, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(a, b, loc))

	assert.Equal(t, 0, DaysBetween(b, b, loc))
	assert.Equal(t, 3, DaysBetween(a, a.AddDate(0, 0, 3), loc))
	assert.Equal(t, -1, DaysBetween(b, a, loc))
}
