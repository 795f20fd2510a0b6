package availability

import (
	"sort"
	"time"

	"github.com/courtable/club-booking-backend/internal/schedule"
)

// DefaultGranularity is the slot size used when none is configured.
const DefaultGranularity = time.Hour

// Classify splits the business-hour window of day (midnight, club-local)
// into granularity-sized slots and derives each slot's status from the
// booked intervals, then applies time blocking relative to now.
//
// Status and blocking are computed independently: a fully covered slot is
// "booked" even when it also lies in the past.
func Classify(hours schedule.BusinessHours, day time.Time, bookings []Interval, now time.Time, granularity time.Duration) []Slot {
	if !hours.Bookable() {
		return nil
	}
	if granularity <= 0 {
		granularity = DefaultGranularity
	}

	sorted := sortIntervals(bookings)

	open := day.Add(time.Duration(hours.OpenHour) * time.Hour)
	closing := day.Add(time.Duration(hours.CloseHour) * time.Hour)

	slots := make([]Slot, 0, closing.Sub(open)/granularity+1)
	for start := open; start.Before(closing); start = start.Add(granularity) {
		end := start.Add(granularity)
		if end.After(closing) {
			// Trailing slot clipped to the closing time.
			end = closing
		}

		slot := Slot{
			Start:  start,
			End:    end,
			Status: classifySlot(start, end, sorted),
		}
		applyBlocking(&slot, day, now)
		slots = append(slots, slot)
	}
	return slots
}

// classifySlot checks the slot [start, end) against the individual booked
// intervals, sorted by start. A single booking covering the whole slot
// makes it booked; any other overlap leaves it partial, even when several
// bookings tile the slot end to end.
func classifySlot(start, end time.Time, sorted []Interval) SlotStatus {
	status := StatusAvailable
	for _, iv := range sorted {
		if !iv.Start.Before(end) {
			break
		}
		if !iv.End.After(start) {
			continue
		}
		if !iv.Start.After(start) && !iv.End.Before(end) {
			return StatusBooked
		}
		status = StatusPartial
	}
	return status
}

// applyBlocking marks slots that lie in the past. A slot already in
// progress (start <= now < end) stays unblocked so walk-ins can still book
// the remainder of it.
func applyBlocking(slot *Slot, day, now time.Time) {
	today := schedule.DateOnly(now, day.Location())
	switch {
	case day.Before(today):
		slot.Blocked = true
		slot.BlockReason = BlockPastDay
	case day.After(today):
		// Future day, nothing to block.
	case !slot.End.After(now):
		slot.Blocked = true
		slot.BlockReason = BlockPastHour
	}
}

// sortIntervals copies and orders intervals by start so classification can
// stop scanning once an interval begins past the slot.
func sortIntervals(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}
