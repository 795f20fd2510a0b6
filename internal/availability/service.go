package availability

import (
	"context"
	"errors"
	"time"

	"github.com/courtable/club-booking-backend/internal/court"
	"github.com/courtable/club-booking-backend/internal/pkg/metrics"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

// BookingLookup lists the confirmed booked intervals of one court inside
// [from, to). Cancelled bookings must not be included.
type BookingLookup interface {
	BookedIntervals(ctx context.Context, courtID string, from, to time.Time) ([]Interval, error)
}

type Service interface {
	// ForCourt classifies one court's day. The date is interpreted in the
	// club's timezone.
	ForCourt(ctx context.Context, courtID string, date time.Time) (*CourtAvailability, error)
	// ForClub classifies every court of the club for the given date.
	ForClub(ctx context.Context, clubID string, date time.Time) ([]*CourtAvailability, error)
}

type service struct {
	courts      court.Service
	clubs       schedule.ClubLookup
	resolver    *schedule.Resolver
	bookings    BookingLookup
	granularity time.Duration

	now func() time.Time
}

func NewService(courts court.Service, clubs schedule.ClubLookup, resolver *schedule.Resolver, bookings BookingLookup, granularity time.Duration) Service {
	return &service{
		courts:      courts,
		clubs:       clubs,
		resolver:    resolver,
		bookings:    bookings,
		granularity: granularity,
		now:         time.Now,
	}
}

func (s *service) ForCourt(ctx context.Context, courtID string, date time.Time) (*CourtAvailability, error) {
	ct, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	metrics.RecordAvailabilityQuery("court")
	return s.classifyCourt(ctx, ct, date)
}

func (s *service) ForClub(ctx context.Context, clubID string, date time.Time) ([]*CourtAvailability, error) {
	courts, _, err := s.courts.List(ctx, court.Filter{ClubID: clubID, PageSize: 500})
	if err != nil {
		return nil, err
	}

	metrics.RecordAvailabilityQuery("club")

	result := make([]*CourtAvailability, 0, len(courts))
	for _, ct := range courts {
		ca, err := s.classifyCourt(ctx, ct, date)
		if err != nil {
			return nil, err
		}
		result = append(result, ca)
	}
	return result, nil
}

func (s *service) classifyCourt(ctx context.Context, ct *court.Court, date time.Time) (*CourtAvailability, error) {
	loc, err := s.clubs.Timezone(ctx, ct.ClubID)
	if err != nil {
		if errors.Is(err, schedule.ErrClubNotFound) {
			loc = time.UTC
		} else {
			return nil, err
		}
	}
	day := schedule.DateOnly(date, loc)

	hours, err := s.resolver.Resolve(ctx, ct.ClubID, day, ct.ID)
	if err != nil {
		return nil, err
	}

	ca := &CourtAvailability{
		CourtID:   ct.ID,
		CourtName: ct.Name,
		Date:      day,
		Hours:     hours,
		Closed:    hours.Closed,
	}
	if hours.Closed {
		return ca, nil
	}

	booked, err := s.bookings.BookedIntervals(ctx, ct.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	ca.Slots = Classify(hours, day, booked, s.now(), s.granularity)
	return ca, nil
}
