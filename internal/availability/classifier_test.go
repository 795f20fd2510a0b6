package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

func slotStarting(t *testing.T, slots []Slot, start time.Time) Slot {
	t.Helper()
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s
		}
	}
	t.Fatalf("no slot starting at %s", start)
	return Slot{}
}

func TestClassifyStatuses(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	hours := schedule.BusinessHours{OpenHour: 9, CloseHour: 13}
	now := day.AddDate(0, 0, -1) // the day is still in the future, nothing blocked

	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	tests := []struct {
		name     string
		bookings []Interval
		want     map[int]SlotStatus // startHour -> status
	}{
		{
			name:     "no bookings",
			bookings: nil,
			want:     map[int]SlotStatus{9: StatusAvailable, 10: StatusAvailable, 11: StatusAvailable, 12: StatusAvailable},
		},
		{
			name:     "exact hour booking",
			bookings: []Interval{{Start: at(10, 0), End: at(11, 0)}},
			want:     map[int]SlotStatus{9: StatusAvailable, 10: StatusBooked, 11: StatusAvailable},
		},
		{
			name:     "half hour booking straddling two slots",
			bookings: []Interval{{Start: at(10, 30), End: at(11, 30)}},
			want:     map[int]SlotStatus{9: StatusAvailable, 10: StatusPartial, 11: StatusPartial, 12: StatusAvailable},
		},
		{
			name:     "long booking covers middle slots fully",
			bookings: []Interval{{Start: at(9, 30), End: at(12, 0)}},
			want:     map[int]SlotStatus{9: StatusPartial, 10: StatusBooked, 11: StatusBooked, 12: StatusAvailable},
		},
		{
			// No single booking contains the slot, so tiling it end to
			// end with two bookings still reads partial.
			name: "two bookings tiling a slot stay partial",
			bookings: []Interval{
				{Start: at(10, 0), End: at(10, 30)},
				{Start: at(10, 30), End: at(11, 0)},
			},
			want: map[int]SlotStatus{10: StatusPartial},
		},
		{
			name: "partial overlap before a containing booking",
			bookings: []Interval{
				{Start: at(9, 0), End: at(10, 15)},
				{Start: at(9, 30), End: at(11, 30)},
			},
			want: map[int]SlotStatus{10: StatusBooked},
		},
		{
			name: "disjoint bookings in one slot stay partial",
			bookings: []Interval{
				{Start: at(10, 0), End: at(10, 15)},
				{Start: at(10, 45), End: at(11, 0)},
			},
			want: map[int]SlotStatus{10: StatusPartial},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Classify(hours, day, tt.bookings, now, time.Hour)
			require.Len(t, slots, 4)
			for startHour, status := range tt.want {
				got := slotStarting(t, slots, at(startHour, 0))
				require.Equal(t, status, got.Status, "slot %d", startHour)
				require.Equal(t, at(startHour+1, 0), got.End)
			}
		})
	}
}

func TestClassifyGranularity(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	hours := schedule.BusinessHours{OpenHour: 9, CloseHour: 13}
	now := day.AddDate(0, 0, -1)

	slots := Classify(hours, day, nil, now, 90*time.Minute)
	require.Len(t, slots, 3)
	require.Equal(t, day.Add(9*time.Hour), slots[0].Start)
	require.Equal(t, day.Add(10*time.Hour+30*time.Minute), slots[0].End)
	require.Equal(t, day.Add(12*time.Hour), slots[2].Start)
	// The trailing slot is clipped at closing time.
	require.Equal(t, day.Add(13*time.Hour), slots[2].End)

	// A non-positive granularity falls back to hourly slots.
	require.Len(t, Classify(hours, day, nil, now, 0), 4)
}

func TestClassifyClosedDay(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	require.Nil(t, Classify(schedule.BusinessHours{Closed: true}, day, nil, day, time.Hour))
	require.Nil(t, Classify(schedule.BusinessHours{OpenHour: 10, CloseHour: 10}, day, nil, day, time.Hour))
}

func TestClassifyBlocking(t *testing.T) {
	day := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	hours := schedule.BusinessHours{OpenHour: 9, CloseHour: 22}

	t.Run("past day blocks every slot", func(t *testing.T) {
		now := time.Date(2025, 12, 3, 8, 0, 0, 0, time.UTC)
		slots := Classify(hours, day, nil, now, time.Hour)
		for _, s := range slots {
			require.True(t, s.Blocked)
			require.Equal(t, BlockPastDay, s.BlockReason)
		}
	})

	t.Run("future day blocks nothing", func(t *testing.T) {
		now := time.Date(2025, 12, 1, 23, 59, 0, 0, time.UTC)
		slots := Classify(hours, day, nil, now, time.Hour)
		for _, s := range slots {
			require.False(t, s.Blocked)
		}
	})

	t.Run("same day blocks elapsed slots only", func(t *testing.T) {
		now := time.Date(2025, 12, 2, 20, 5, 0, 0, time.UTC)
		slots := Classify(hours, day, nil, now, time.Hour)

		for _, s := range slots {
			if !s.End.After(now) {
				require.True(t, s.Blocked, "slot %s", s.Start)
				require.Equal(t, BlockPastHour, s.BlockReason)
			} else {
				// The 20:00 slot is in progress and stays open.
				require.False(t, s.Blocked, "slot %s", s.Start)
			}
		}
		require.False(t, slotStarting(t, slots, day.Add(20*time.Hour)).Blocked)
	})

	t.Run("slot ending exactly now is blocked", func(t *testing.T) {
		now := time.Date(2025, 12, 2, 20, 0, 0, 0, time.UTC)
		slots := Classify(hours, day, nil, now, time.Hour)

		require.True(t, slotStarting(t, slots, day.Add(19*time.Hour)).Blocked)
		require.False(t, slotStarting(t, slots, day.Add(20*time.Hour)).Blocked)
	})

	t.Run("blocking is independent of status", func(t *testing.T) {
		now := time.Date(2025, 12, 3, 8, 0, 0, 0, time.UTC)
		booked := []Interval{{
			Start: day.Add(10 * time.Hour),
			End:   day.Add(11 * time.Hour),
		}}
		slots := Classify(hours, day, booked, now, time.Hour)

		s := slotStarting(t, slots, day.Add(10*time.Hour))
		require.Equal(t, StatusBooked, s.Status)
		require.True(t, s.Blocked)
		require.Equal(t, BlockPastDay, s.BlockReason)
	})
}

func TestSortIntervalsPreservesInput(t *testing.T) {
	base := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	in := []Interval{
		{Start: at(12), End: at(13)},
		{Start: at(9), End: at(10)},
	}

	got := sortIntervals(in)
	require.Equal(t, at(9), got[0].Start)
	require.Equal(t, at(12), got[1].Start)
	// Input order is preserved.
	require.Equal(t, at(12), in[0].Start)
}
