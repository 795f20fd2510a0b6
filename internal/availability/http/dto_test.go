package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/courtable/club-booking-backend/internal/availability"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

func TestCourtAvailabilityResponseJSON(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	ca := &availability.CourtAvailability{
		CourtID:   "c1",
		CourtName: "Court 1",
		Date:      day,
		Hours:     schedule.BusinessHours{OpenHour: 9, CloseHour: 22},
		Slots: []availability.Slot{{
			Start:  day.Add(9 * time.Hour),
			End:    day.Add(10 * time.Hour),
			Status: availability.StatusAvailable,
		}},
	}

	raw, err := json.Marshal(NewCourtAvailabilityResponse(ca))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	require.Contains(t, m, "business_hours")
	hours, ok := m["business_hours"].(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 9, hours["open_hour"])
	require.EqualValues(t, 22, hours["close_hour"])

	slots, ok := m["slots"].([]any)
	require.True(t, ok)
	require.Len(t, slots, 1)
	slot := slots[0].(map[string]any)
	require.Equal(t, "2026-02-09T09:00:00Z", slot["start"])
	require.Equal(t, "2026-02-09T10:00:00Z", slot["end"])
	require.Equal(t, "available", slot["status"])
	require.NotContains(t, slot, "blocked_reason")
}

func TestCourtAvailabilityResponseBlockedReason(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	ca := &availability.CourtAvailability{
		CourtID: "c1",
		Date:    day,
		Hours:   schedule.BusinessHours{OpenHour: 9, CloseHour: 10},
		Slots: []availability.Slot{{
			Start:       day.Add(9 * time.Hour),
			End:         day.Add(10 * time.Hour),
			Status:      availability.StatusAvailable,
			Blocked:     true,
			BlockReason: availability.BlockPastDay,
		}},
	}

	resp := NewCourtAvailabilityResponse(ca)
	require.True(t, resp.Slots[0].Blocked)
	require.NotNil(t, resp.Slots[0].BlockedReason)
	require.Equal(t, "past_day", *resp.Slots[0].BlockedReason)
}
