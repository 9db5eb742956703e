package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBeginningOfUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 02:30 on Jan 2 in UTC+7 is still Jan 1 in UTC.
	got := BeginningOfUTCDay(time.Date(2024, 1, 2, 2, 30, 0, 0, loc))
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestSameUTCDay(t *testing.T) {
	a := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	b := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, SameUTCDay(a, b))
	require.False(t, SameUTCDay(a, b.AddDate(0, 0, 1)))

	// Same wall-clock date in UTC+7 but a different UTC date.
	loc := time.FixedZone("UTC+7", 7*3600)
	require.False(t, SameUTCDay(
		time.Date(2024, 1, 2, 1, 0, 0, 0, loc),
		time.Date(2024, 1, 2, 23, 0, 0, 0, loc),
	))
}
