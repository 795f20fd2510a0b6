package schedule

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrSpecialDateNotFound = apperror.New(http.StatusNotFound, "special date not found")
	ErrSpecialDateExists   = apperror.New(http.StatusConflict, "special date already exists for this club and date")
	ErrInvalidHours        = apperror.New(http.StatusBadRequest, "open hour must be before close hour")
	ErrInvalidDayOfWeek    = apperror.New(http.StatusBadRequest, "day of week must be between 0 (Sunday) and 6 (Saturday)")
)

// DayHours is one weekly-schedule entry. A nil hour means the club did not
// configure that side of the window for the day; the resolver substitutes the
// platform default.
type DayHours struct {
	OpenHour  *int
	CloseHour *int
}

// WeeklySchedule holds one DayHours per day of week, indexed 0=Sunday..6=Saturday.
type WeeklySchedule struct {
	ClubID string
	Days   [7]DayHours
}

// SpecialDate is a per-date exception to the weekly schedule. When present for
// a date it fully supersedes the weekly hours; the two are never merged.
type SpecialDate struct {
	ID        string
	ClubID    string
	Date      time.Time // date-only, club-local calendar
	OpenHour  int
	CloseHour int
	IsClosed  bool
	Reason    *string
	CreatedAt time.Time
}

// CourtHours is a per-court narrowing of the club window. Nil sides fall back
// to the club-level hour.
type CourtHours struct {
	OpenHour  *int
	CloseHour *int
}

// BusinessHours is the resolved booking window for one club (and optionally
// one court) on one date. Closed marks a day with no bookable slots at all.
type BusinessHours struct {
	OpenHour  int
	CloseHour int
	Closed    bool
}

// Bookable reports whether the window can hold any slot.
func (h BusinessHours) Bookable() bool {
	return !h.Closed && h.OpenHour < h.CloseHour
}

// Defaults is the platform fallback window, injected so tests can override it
// without touching globals.
type Defaults struct {
	OpenHour  int
	CloseHour int
}
