package sport

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "sport not found")
	ErrOrgIDRequired = apperror.New(http.StatusBadRequest, "organization_id is required")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
)

// Sport represents a category of courts (e.g., Tennis, Padel).
type Sport struct {
	ID               string
	OrganizationID   string
	OrganizationName string
	Name             string
	Description      string
	CreatedAt        time.Time
}

// Filter defines parameters for listing sports.
type Filter struct {
	OrganizationID string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
