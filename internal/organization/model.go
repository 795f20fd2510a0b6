package organization

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrOrgNotFound       = apperror.New(http.StatusNotFound, "organization not found")
	ErrNameRequired      = apperror.New(http.StatusBadRequest, "organization name is required")
	ErrUserNotMember     = apperror.New(http.StatusNotFound, "user is not a member of this organization")
	ErrUserAlreadyMember = apperror.New(http.StatusConflict, "user is already a member of this organization")
	ErrUserNotFound      = apperror.New(http.StatusNotFound, "user not found")
)

// Organization represents a tenant owning clubs.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	IsActive  bool
}

// OrganizationFilter defines filter options for listing organizations.
type OrganizationFilter struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Roles matching the database enum. Owners control the whole organization,
// managers administer clubs, members are plain users attached to the tenant.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Member represents a user with a specific role within an organization.
// It joins data from organization_permissions and users tables.
type Member struct {
	UserID      string
	Email       string
	DisplayName *string
	Role        string
}

// ManagerFilter defines filter options for listing members or managers.
type ManagerFilter struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
