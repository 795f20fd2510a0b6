package availability

import (
	"errors"
	"time"

	"github.com/courtable/club-booking-backend/internal/schedule"
)

var ErrCourtNotFound = errors.New("court not found")

// SlotStatus describes the booking state of one slot.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
	StatusPartial   SlotStatus = "partial"
)

// Block reasons for slots that lie in the past. Blocking is independent of
// the booking status: a slot can be booked and blocked at the same time.
const (
	BlockPastDay  = "past_day"
	BlockPastHour = "past_hour"
)

// Slot is one granularity-sized interval of a court's day.
type Slot struct {
	Start       time.Time
	End         time.Time
	Status      SlotStatus
	Blocked     bool
	BlockReason string // empty when not blocked
}

// Interval is a half-open booked time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// CourtAvailability is the classified day for one court.
type CourtAvailability struct {
	CourtID   string
	CourtName string
	Date      time.Time // midnight, club-local
	Hours     schedule.BusinessHours
	Closed    bool
	Slots     []Slot
}
