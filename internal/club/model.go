package club

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "club not found")
	ErrOrgNotFound     = apperror.New(http.StatusNotFound, "organization not found")
	ErrOrgIDRequired   = apperror.New(http.StatusBadRequest, "organization_id is required")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidTimezone = apperror.New(http.StatusBadRequest, "timezone must be a valid IANA zone name")
	ErrInvalidGeo      = apperror.New(http.StatusBadRequest, "coordinates are out of range")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
)

// Club represents a sports venue under an organization. All date handling
// for a club (schedules, availability, statistics) happens in the club's
// own timezone.
type Club struct {
	ID               string
	OrganizationID   string
	OrganizationName string
	Name             string
	Timezone         string // IANA zone name, e.g. "Europe/Berlin"
	Address          string
	Description      string
	Rules            string
	Facilities       string
	Capacity         int64
	IsOpen           bool // Accepting bookings at all
	PhotoID          *string
	Longitude        float64
	Latitude         float64
	CreatedAt        time.Time
}

// Location returns the club's timezone as a *time.Location.
func (c *Club) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ClubFilter defines parameters for listing clubs.
type ClubFilter struct {
	OrganizationID string
	Name           string
	IsOpen         *bool
	CapacityMin    *int64
	CapacityMax    *int64
	CreatedAtFrom  time.Time
	CreatedAtTo    time.Time

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
