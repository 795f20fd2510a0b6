package booking

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrCourtNotFound    = apperror.New(http.StatusNotFound, "court not found")
	ErrOutsideHours     = apperror.New(http.StatusBadRequest, "booking falls outside business hours")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidInput     = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID               string
	CourtID          string
	CourtName        string
	UserID           string
	UserName         string
	ClubID           string
	ClubName         string
	OrganizationID   string
	OrganizationName string
	StartTime        time.Time
	EndTime          time.Time
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Filter struct {
	UserID         string
	CourtID        string
	ClubID         string
	OrganizationID string
	Status         string
	StartTime      *time.Time // Filter bookings starting after this time
	EndTime        *time.Time // Filter bookings ending before this time
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
