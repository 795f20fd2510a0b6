package organization

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
	"github.com/courtable/club-booking-backend/internal/user"
)

// UpdateOrganizationRequest defines the fields that can be updated.
type UpdateOrganizationRequest struct {
	Name     *string
	IsActive *bool
	OwnerID  *string
}

// Service defines business logic for organizations.
type Service interface {
	// Organization methods
	Create(ctx context.Context, name string, ownerID string) (*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	List(ctx context.Context, filter OrganizationFilter) ([]*Organization, int, error)
	Update(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error)
	Delete(ctx context.Context, id string) error

	// Member methods
	GetMember(ctx context.Context, orgID string, userID string) (*Member, error)
	ListMembers(ctx context.Context, orgID string, filter ManagerFilter) ([]*Member, int, error)
	ListOrganizationManagers(ctx context.Context, orgID string, filter ManagerFilter) ([]*Member, int, error)
	AddMember(ctx context.Context, orgID string, email string) error
	RemoveMember(ctx context.Context, orgID string, userID string) error
	AddOrganizationManager(ctx context.Context, orgID string, userID string) error
	RemoveOrganizationManager(ctx context.Context, orgID string, userID string) error

	// Permission methods
	IsManagerOrAbove(ctx context.Context, orgID string, userID string) (bool, error)
	IsOwnerOrAbove(ctx context.Context, orgID string, userID string) (bool, error)
	CheckClubPermission(ctx context.Context, orgID string, clubID string, userID string) (bool, error)

	// Club manager assignment
	GetOrgIDByClubID(ctx context.Context, clubID string) (string, error)
	AddClubManager(ctx context.Context, clubID string, userID string) error
	RemoveClubManager(ctx context.Context, clubID string, userID string) error
	ListClubManagers(ctx context.Context, clubID string) ([]string, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

// NewService creates a new organization service.
func NewService(repo Repository, userService user.Service) Service {
	return &service{repo: repo, userService: userService}
}

// ------------------------
//   Organization methods
// ------------------------

func (s *service) Create(ctx context.Context, name string, ownerID string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	// The owner must be an existing user.
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	org := &Organization{
		Name:     name,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	if err := s.repo.AddMember(ctx, org.ID, ownerID, RoleOwner); err != nil {
		return nil, err
	}

	return org, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Organization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter OrganizationFilter) ([]*Organization, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, ErrNameRequired
		}
		org.Name = newName
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}

	// Ownership transfer is modeled as a role change on the membership table.
	if req.OwnerID != nil {
		if err := s.repo.UpdateMemberRole(ctx, id, *req.OwnerID, RoleOwner); err != nil {
			return nil, err
		}
	}

	return org, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ------------------------
//     Member methods
// ------------------------

func (s *service) GetMember(ctx context.Context, orgID string, userID string) (*Member, error) {
	return s.repo.GetMember(ctx, orgID, userID)
}

func (s *service) ListMembers(ctx context.Context, orgID string, filter ManagerFilter) ([]*Member, int, error) {
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMembers(ctx, orgID, "", filter)
}

func (s *service) ListOrganizationManagers(ctx context.Context, orgID string, filter ManagerFilter) ([]*Member, int, error) {
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMembers(ctx, orgID, RoleManager, filter)
}

func (s *service) AddMember(ctx context.Context, orgID string, email string) error {
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return err
	}

	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.repo.AddMember(ctx, orgID, u.ID, RoleMember)
}

func (s *service) RemoveMember(ctx context.Context, orgID string, userID string) error {
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, orgID, userID)
}

func (s *service) AddOrganizationManager(ctx context.Context, orgID string, userID string) error {
	// Verify organization exists
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return err
	}

	// Verify user exists
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Mutual Exclusion Check: User cannot be both Org Manager/Owner and Club Manager
	isClubMgr, err := s.repo.IsClubManagerInOrg(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if isClubMgr {
		return apperror.New(http.StatusConflict, "user is already a club manager in this organization; remove club manager privileges first")
	}

	// Promote an existing member, or add a fresh membership with the role.
	if _, err := s.repo.GetMember(ctx, orgID, userID); err == nil {
		return s.repo.UpdateMemberRole(ctx, orgID, userID, RoleManager)
	} else if !errors.Is(err, ErrUserNotMember) {
		return err
	}

	return s.repo.AddMember(ctx, orgID, userID, RoleManager)
}

func (s *service) RemoveOrganizationManager(ctx context.Context, orgID string, userID string) error {
	member, err := s.repo.GetMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if member.Role != RoleManager {
		return apperror.New(http.StatusBadRequest, "user is not an organization manager")
	}
	return s.repo.RemoveMember(ctx, orgID, userID)
}

// ------------------------
//     Permission methods
// ------------------------

// IsManagerOrAbove verifies if the user is an Owner or Manager of the
// organization. System admins always pass.
func (s *service) IsManagerOrAbove(ctx context.Context, orgID string, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u.IsSystemAdmin {
		return true, nil
	}

	member, err := s.repo.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotMember) {
			return false, nil
		}
		return false, err
	}

	return member.Role == RoleOwner || member.Role == RoleManager, nil
}

// IsOwnerOrAbove verifies if the user is an Owner of the organization.
// System admins always pass.
func (s *service) IsOwnerOrAbove(ctx context.Context, orgID string, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u.IsSystemAdmin {
		return true, nil
	}

	member, err := s.repo.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotMember) {
			return false, nil
		}
		return false, err
	}

	return member.Role == RoleOwner, nil
}

// CheckClubPermission verifies if the user may administer a specific club.
// Owners and organization managers have access to all clubs; club managers
// only to clubs they are assigned to.
func (s *service) CheckClubPermission(ctx context.Context, orgID string, clubID string, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	isOrgStaff, err := s.IsManagerOrAbove(ctx, orgID, userID)
	if err != nil {
		return false, err
	}
	if isOrgStaff {
		return true, nil
	}

	if clubID == "" {
		return false, nil
	}
	return s.repo.IsClubManager(ctx, clubID, userID)
}

// ------------------------
//   Club manager methods
// ------------------------

// GetOrgIDByClubID resolves the organization a club belongs to.
func (s *service) GetOrgIDByClubID(ctx context.Context, clubID string) (string, error) {
	return s.repo.GetOrgIDByClubID(ctx, clubID)
}

// AddClubManager assigns a manager to a club.
func (s *service) AddClubManager(ctx context.Context, clubID string, userID string) error {
	// Get Org ID to check for conflicts
	orgID, err := s.repo.GetOrgIDByClubID(ctx, clubID)
	if err != nil {
		return err
	}

	// Mutual Exclusion Check: User cannot be Org Manager/Owner and Club Manager
	isOrgStaff, err := s.IsManagerOrAbove(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if isOrgStaff {
		return apperror.New(http.StatusConflict, "user is already an organization manager or owner; cannot add as club manager")
	}

	return s.repo.AddClubManager(ctx, clubID, userID)
}

// RemoveClubManager removes a manager from a club.
func (s *service) RemoveClubManager(ctx context.Context, clubID string, userID string) error {
	return s.repo.RemoveClubManager(ctx, clubID, userID)
}

// ListClubManagers lists users who are managers of a club.
func (s *service) ListClubManagers(ctx context.Context, clubID string) ([]string, error) {
	return s.repo.ListClubManagers(ctx, clubID)
}
