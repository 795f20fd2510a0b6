package booking

import (
	"context"
	"errors"
	"time"

	"github.com/courtable/club-booking-backend/internal/availability"
	"github.com/courtable/club-booking-backend/internal/club"
	"github.com/courtable/club-booking-backend/internal/court"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/metrics"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

type CreateRequest struct {
	UserID    string
	CourtID   string
	StartTime time.Time
	EndTime   time.Time
}

type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

// StatsNotifier is told about every booking mutation so daily statistics
// can be recomputed in the background. Implementations must never block.
type StatsNotifier interface {
	BookingsChanged(clubID string, at ...time.Time)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isSysAdmin bool) (*Booking, error)
	Delete(ctx context.Context, id string, deleterUserID string, isSysAdmin bool) error

	// BookedIntervals implements availability.BookingLookup.
	BookedIntervals(ctx context.Context, courtID string, from, to time.Time) ([]availability.Interval, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	clubService  club.Service
	orgService   organization.Service
	resolver     *schedule.Resolver
	stats        StatsNotifier
}

// NewService creates a booking service. stats may be nil when no reactive
// statistics are wired.
func NewService(repo Repository, courtService court.Service, clubService club.Service, orgService organization.Service, resolver *schedule.Resolver, stats StatsNotifier) Service {
	return &service{
		repo:         repo,
		courtService: courtService,
		clubService:  clubService,
		orgService:   orgService,
		resolver:     resolver,
		stats:        stats,
	}
}

// isClubStaff checks if the user may administer the club that owns the court.
func (s *service) isClubStaff(ctx context.Context, courtID string, userID string) (bool, error) {
	ct, err := s.courtService.GetByID(ctx, courtID)
	if err != nil {
		return false, err
	}
	cl, err := s.clubService.GetByID(ctx, ct.ClubID)
	if err != nil {
		return false, err
	}
	return s.orgService.CheckClubPermission(ctx, cl.OrganizationID, cl.ID, userID)
}

func (s *service) notifyStats(clubID string, at ...time.Time) {
	if s.stats != nil {
		s.stats.BookingsChanged(clubID, at...)
	}
}

// spanTimes samples [start, end) so that every calendar date the range
// touches is represented, whatever timezone the dates are resolved in.
// Samples sit at most 24h apart, which is never longer than a civil day.
func spanTimes(start, end time.Time) []time.Time {
	if !end.After(start) {
		return []time.Time{start}
	}
	var out []time.Time
	for t := start; t.Before(end); t = t.Add(24 * time.Hour) {
		out = append(out, t)
	}
	return append(out, end.Add(-time.Second))
}

// withinBusinessHours verifies [start, end) falls inside the court's
// effective window on the start's club-local date.
func (s *service) withinBusinessHours(ctx context.Context, ct *court.Court, start, end time.Time) error {
	loc, err := s.clubService.Timezone(ctx, ct.ClubID)
	if err != nil {
		return err
	}

	day := schedule.DateOnly(start, loc)
	hours, err := s.resolver.Resolve(ctx, ct.ClubID, day, ct.ID)
	if err != nil {
		return err
	}
	if hours.Closed {
		return ErrOutsideHours
	}

	open := day.Add(time.Duration(hours.OpenHour) * time.Hour)
	closeT := day.Add(time.Duration(hours.CloseHour) * time.Hour)
	if start.Before(open) || end.After(closeT) {
		return ErrOutsideHours
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate Time Range
	if req.EndTime.Before(req.StartTime) || req.EndTime.Equal(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	// Strict check: StartTime cannot be in the past
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate Court Exists
	ct, err := s.courtService.GetByID(ctx, req.CourtID)
	if err != nil {
		switch {
		case errors.Is(err, court.ErrNotFound):
			return nil, ErrCourtNotFound
		default:
			return nil, err
		}
	}

	// 3. Validate against business hours for the date
	if err := s.withinBusinessHours(ctx, ct, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	// 4. Check for Overlaps
	hasOverlap, err := s.repo.HasOverlap(ctx, req.CourtID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 5. Create Booking
	booking := &Booking{
		CourtID:   req.CourtID,
		UserID:    req.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    StatusPending, // Default status
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	metrics.RecordBooking("create")
	s.notifyStats(ct.ClubID, spanTimes(booking.StartTime, booking.EndTime)...)

	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isSysAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Permission Check Logic:
	// 1. System Admin -> Allowed
	// 2. Owner of Booking -> Allowed (with restrictions on Status)
	// 3. Club staff -> Allowed

	isBookingOwner := b.UserID == updaterUserID
	isStaff := false

	if !isSysAdmin && !isBookingOwner {
		// Lazy check: only query DB if not already authorized
		var err error
		isStaff, err = s.isClubStaff(ctx, b.CourtID, updaterUserID)
		if err != nil {
			return nil, err // Internal error (e.g. DB down)
		}
	}

	if !isSysAdmin && !isBookingOwner && !isStaff {
		return nil, ErrPermissionDenied
	}

	oldStart := b.StartTime
	oldEnd := b.EndTime

	// Prepare new values
	newStart := b.StartTime
	newEnd := b.EndTime
	timeChanged := false

	if req.StartTime != nil {
		newStart = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if newEnd.Before(newStart) || newEnd.Equal(newStart) {
			return nil, ErrInvalidTimeRange
		}

		// Check past time for updates
		if req.StartTime != nil && req.StartTime.Before(time.Now().UTC()) {
			return nil, ErrStartTimePast
		}

		ct, err := s.courtService.GetByID(ctx, b.CourtID)
		if err != nil {
			return nil, err
		}
		if err := s.withinBusinessHours(ctx, ct, newStart, newEnd); err != nil {
			return nil, err
		}

		// Check Overlap excluding current booking
		hasOverlap, err := s.repo.HasOverlap(ctx, b.CourtID, newStart, newEnd, b.ID)
		if err != nil {
			return nil, err
		}
		if hasOverlap {
			return nil, ErrTimeConflict
		}
		b.StartTime = newStart
		b.EndTime = newEnd
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if st != StatusPending && st != StatusConfirmed && st != StatusCancelled {
			return nil, ErrInvalidStatus
		}

		// Business Logic: Normal User (Booking Owner) can ONLY Cancel
		// SysAdmin or club staff can do anything
		if isBookingOwner && !isSysAdmin && !isStaff {
			if st != StatusCancelled {
				return nil, ErrPermissionDenied
			}
		}
		b.Status = st
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	metrics.RecordBooking("update")
	// Every date the booking used to cover and every date it covers now
	// may need a recount when it moved.
	s.notifyStats(b.ClubID, append(spanTimes(oldStart, oldEnd), spanTimes(b.StartTime, b.EndTime)...)...)

	return b, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string, isSysAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Permission Check
	isBookingOwner := b.UserID == deleterUserID
	isStaff := false

	if !isSysAdmin && !isBookingOwner {
		var err error
		isStaff, err = s.isClubStaff(ctx, b.CourtID, deleterUserID)
		if err != nil {
			return err
		}
	}

	if !isSysAdmin && !isBookingOwner && !isStaff {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.RecordBooking("delete")
	s.notifyStats(b.ClubID, spanTimes(b.StartTime, b.EndTime)...)

	return nil
}

// BookedIntervals lists non-cancelled booking ranges of the court that
// intersect [from, to). Pending bookings hold their slot, so they count.
func (s *service) BookedIntervals(ctx context.Context, courtID string, from, to time.Time) ([]availability.Interval, error) {
	return s.repo.ListIntervals(ctx, courtID, from, to)
}
