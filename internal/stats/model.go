package stats

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrClubNotFound  = apperror.New(http.StatusNotFound, "club not found")
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, "from must not be after to")
	ErrRangeTooLarge = apperror.New(http.StatusBadRequest, "date range too large")
)

// maxRangeDays caps a single statistics query to one year of days.
const maxRangeDays = 366

// DailyStatistic aggregates the bookings of one club on one club-local date.
type DailyStatistic struct {
	ClubID        string    `json:"club_id"`
	Date          string    `json:"date"` // YYYY-MM-DD, club-local
	BookingCount  int       `json:"booking_count"`
	BookedHours   float64   `json:"booked_hours"`
	OpenHours     float64   `json:"open_hours"` // club window length times court count
	OccupancyRate float64   `json:"occupancy_rate"`
	UpdatedAt     time.Time `json:"updated_at"`
}
