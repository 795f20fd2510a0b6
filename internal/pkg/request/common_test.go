package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-02-09")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2026/02/09", "09-02-2026", "2026-2-9", "2026-02-09T10:00:00Z", "not-a-date"} {
		_, err := ParseDate(bad)
		require.Error(t, err, bad)
		require.EqualError(t, err, "Invalid date format. Use YYYY-MM-DD")
	}
}
