package booking

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/courtable/club-booking-backend/internal/availability"
	"github.com/courtable/club-booking-backend/internal/club"
	"github.com/courtable/club-booking-backend/internal/court"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

type fakeRepo struct {
	Repository
	byID    map[string]*Booking
	overlap bool
	created *Booking
	updated *Booking
	deleted string
}

func (f *fakeRepo) Create(_ context.Context, b *Booking) error {
	b.ID = "bk-new"
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, b *Booking) error {
	f.updated = b
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.deleted = id
	return nil
}

func (f *fakeRepo) HasOverlap(context.Context, string, time.Time, time.Time, string) (bool, error) {
	return f.overlap, nil
}

func (f *fakeRepo) ListIntervals(context.Context, string, time.Time, time.Time) ([]availability.Interval, error) {
	return nil, nil
}

type fakeCourtService struct {
	court.Service
	courts map[string]*court.Court
}

func (f *fakeCourtService) GetByID(_ context.Context, id string) (*court.Court, error) {
	ct, ok := f.courts[id]
	if !ok {
		return nil, court.ErrNotFound
	}
	return ct, nil
}

func (f *fakeCourtService) HoursOverride(_ context.Context, id string) (*schedule.CourtHours, error) {
	if _, ok := f.courts[id]; !ok {
		return nil, schedule.ErrCourtNotFound
	}
	return nil, nil
}

type fakeClubService struct {
	club.Service
	clubs map[string]*club.Club
}

func (f *fakeClubService) GetByID(_ context.Context, id string) (*club.Club, error) {
	cl, ok := f.clubs[id]
	if !ok {
		return nil, club.ErrNotFound
	}
	return cl, nil
}

func (f *fakeClubService) Timezone(_ context.Context, id string) (*time.Location, error) {
	if _, ok := f.clubs[id]; !ok {
		return nil, schedule.ErrClubNotFound
	}
	return time.UTC, nil
}

type fakeOrgService struct {
	organization.Service
	staff map[string]bool // userID -> is staff
}

func (f *fakeOrgService) CheckClubPermission(_ context.Context, _, _, userID string) (bool, error) {
	return f.staff[userID], nil
}

type scheduleStore struct {
	schedule.Repository
	special map[string]*schedule.SpecialDate // YYYY-MM-DD
}

func (s *scheduleStore) GetWeekly(context.Context, string) (*schedule.WeeklySchedule, error) {
	return nil, nil
}

func (s *scheduleStore) GetSpecialDate(_ context.Context, _ string, date time.Time) (*schedule.SpecialDate, error) {
	sd, ok := s.special[date.Format("2006-01-02")]
	if !ok {
		return nil, schedule.ErrSpecialDateNotFound
	}
	return sd, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls map[string]struct{} // clubID + "|" + YYYY-MM-DD
}

func (n *recordingNotifier) BookingsChanged(clubID string, at ...time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.calls == nil {
		n.calls = map[string]struct{}{}
	}
	for _, t := range at {
		n.calls[clubID+"|"+t.UTC().Format("2006-01-02")] = struct{}{}
	}
}

// recorded returns the distinct club/date pairs notified so far, sorted.
func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.calls))
	for k := range n.calls {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type fixture struct {
	repo     *fakeRepo
	notifier *recordingNotifier
	svc      Service
}

func newFixture(t *testing.T, special map[string]*schedule.SpecialDate) *fixture {
	t.Helper()

	courts := &fakeCourtService{courts: map[string]*court.Court{
		"court-1": {ID: "court-1", ClubID: "club-1", SportID: "sport-1", Name: "Court A"},
	}}
	clubs := &fakeClubService{clubs: map[string]*club.Club{
		"club-1": {ID: "club-1", OrganizationID: "org-1", Name: "Riverside", Timezone: "UTC"},
	}}
	orgs := &fakeOrgService{staff: map[string]bool{"staff-1": true}}

	resolver := schedule.NewResolver(
		&scheduleStore{special: special},
		clubs,
		courts,
		schedule.Defaults{OpenHour: 9, CloseHour: 22},
	)

	repo := &fakeRepo{byID: map[string]*Booking{}}
	notifier := &recordingNotifier{}
	svc := NewService(repo, courts, clubs, orgs, resolver, notifier)

	return &fixture{repo: repo, notifier: notifier, svc: svc}
}

// futureDay returns midnight UTC of a stable day far enough ahead.
func futureDay() time.Time {
	d := time.Now().UTC().AddDate(0, 2, 0)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestCreateBooking(t *testing.T) {
	day := futureDay()

	tests := []struct {
		name    string
		req     CreateRequest
		overlap bool
		special map[string]*schedule.SpecialDate
		wantErr error
	}{
		{
			name: "within default hours",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
			},
		},
		{
			name: "before opening",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: day.Add(6 * time.Hour), EndTime: day.Add(7 * time.Hour),
			},
			wantErr: ErrOutsideHours,
		},
		{
			name: "runs past closing",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: day.Add(21 * time.Hour), EndTime: day.Add(23 * time.Hour),
			},
			wantErr: ErrOutsideHours,
		},
		{
			name: "closed special date",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
			},
			special: map[string]*schedule.SpecialDate{
				day.Format("2006-01-02"): {ClubID: "club-1", Date: day, IsClosed: true},
			},
			wantErr: ErrOutsideHours,
		},
		{
			name: "conflicting booking",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
			},
			overlap: true,
			wantErr: ErrTimeConflict,
		},
		{
			name: "unknown court",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-x",
				StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
			},
			wantErr: ErrCourtNotFound,
		},
		{
			name: "inverted range",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: day.Add(11 * time.Hour), EndTime: day.Add(10 * time.Hour),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "start in the past",
			req: CreateRequest{
				UserID: "user-1", CourtID: "court-1",
				StartTime: time.Now().UTC().Add(-2 * time.Hour), EndTime: time.Now().UTC().Add(-time.Hour),
			},
			wantErr: ErrStartTimePast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.special)
			f.repo.overlap = tt.overlap

			b, err := f.svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, f.notifier.recorded())
				return
			}

			require.NoError(t, err)
			require.Equal(t, StatusPending, b.Status)
			require.Equal(t, "bk-new", b.ID)
			require.Equal(t, []string{"club-1|" + day.Format("2006-01-02")}, f.notifier.recorded())
		})
	}
}

func TestUpdateBookingPermissions(t *testing.T) {
	day := futureDay()
	existing := &Booking{
		ID: "bk-1", CourtID: "court-1", UserID: "owner-1",
		ClubID: "club-1", OrganizationID: "org-1",
		StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
		Status: StatusPending,
	}

	confirmed := string(StatusConfirmed)
	cancelled := string(StatusCancelled)

	tests := []struct {
		name       string
		userID     string
		isSysAdmin bool
		req        UpdateRequest
		wantErr    error
		wantStatus Status
	}{
		{
			name:   "owner can cancel",
			userID: "owner-1",
			req:    UpdateRequest{Status: &cancelled},
			wantStatus: StatusCancelled,
		},
		{
			name:    "owner cannot confirm",
			userID:  "owner-1",
			req:     UpdateRequest{Status: &confirmed},
			wantErr: ErrPermissionDenied,
		},
		{
			name:   "club staff can confirm",
			userID: "staff-1",
			req:    UpdateRequest{Status: &confirmed},
			wantStatus: StatusConfirmed,
		},
		{
			name:       "sysadmin can confirm",
			userID:     "somebody",
			isSysAdmin: true,
			req:        UpdateRequest{Status: &confirmed},
			wantStatus: StatusConfirmed,
		},
		{
			name:    "stranger denied",
			userID:  "stranger",
			req:     UpdateRequest{Status: &cancelled},
			wantErr: ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.repo.byID["bk-1"] = existing

			b, err := f.svc.Update(context.Background(), "bk-1", tt.req, tt.userID, tt.isSysAdmin)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, b.Status)
		})
	}
}

func TestUpdateBookingMoveNotifiesBothDates(t *testing.T) {
	day := futureDay()
	nextDay := day.AddDate(0, 0, 1)

	f := newFixture(t, nil)
	f.repo.byID["bk-1"] = &Booking{
		ID: "bk-1", CourtID: "court-1", UserID: "owner-1",
		ClubID: "club-1", OrganizationID: "org-1",
		StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
		Status: StatusPending,
	}

	newStart := nextDay.Add(15 * time.Hour)
	newEnd := nextDay.Add(16 * time.Hour)
	b, err := f.svc.Update(context.Background(), "bk-1", UpdateRequest{
		StartTime: &newStart, EndTime: &newEnd,
	}, "owner-1", false)
	require.NoError(t, err)
	require.Equal(t, newStart, b.StartTime)

	require.Equal(t, []string{
		"club-1|" + day.Format("2006-01-02"),
		"club-1|" + nextDay.Format("2006-01-02"),
	}, f.notifier.recorded())
}

func TestUpdateBookingMoveOutsideHours(t *testing.T) {
	day := futureDay()

	f := newFixture(t, nil)
	f.repo.byID["bk-1"] = &Booking{
		ID: "bk-1", CourtID: "court-1", UserID: "owner-1",
		ClubID: "club-1", OrganizationID: "org-1",
		StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
		Status: StatusPending,
	}

	newStart := day.Add(23 * time.Hour)
	newEnd := day.Add(24 * time.Hour)
	_, err := f.svc.Update(context.Background(), "bk-1", UpdateRequest{
		StartTime: &newStart, EndTime: &newEnd,
	}, "owner-1", false)
	require.ErrorIs(t, err, ErrOutsideHours)
	require.Empty(t, f.notifier.recorded())
}

func TestDeleteBooking(t *testing.T) {
	day := futureDay()
	existing := &Booking{
		ID: "bk-1", CourtID: "court-1", UserID: "owner-1",
		ClubID: "club-1", OrganizationID: "org-1",
		StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour),
		Status: StatusPending,
	}

	t.Run("owner deletes and stats notified", func(t *testing.T) {
		f := newFixture(t, nil)
		f.repo.byID["bk-1"] = existing

		require.NoError(t, f.svc.Delete(context.Background(), "bk-1", "owner-1", false))
		require.Equal(t, "bk-1", f.repo.deleted)
		require.Equal(t, []string{"club-1|" + day.Format("2006-01-02")}, f.notifier.recorded())
	})

	t.Run("stranger denied", func(t *testing.T) {
		f := newFixture(t, nil)
		f.repo.byID["bk-1"] = existing

		err := f.svc.Delete(context.Background(), "bk-1", "stranger", false)
		require.ErrorIs(t, err, ErrPermissionDenied)
		require.Empty(t, f.repo.deleted)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t, nil)
		err := f.svc.Delete(context.Background(), "bk-x", "owner-1", false)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteMultiDayBookingNotifiesEveryDate(t *testing.T) {
	day := futureDay()

	f := newFixture(t, nil)
	f.repo.byID["bk-1"] = &Booking{
		ID: "bk-1", CourtID: "court-1", ClubID: "club-1", UserID: "owner-1",
		StartTime: day.Add(22 * time.Hour),
		EndTime:   day.Add(50 * time.Hour), // crosses two midnights
		Status:    StatusConfirmed,
	}

	require.NoError(t, f.svc.Delete(context.Background(), "bk-1", "admin", true))
	require.Equal(t, []string{
		"club-1|" + day.Format("2006-01-02"),
		"club-1|" + day.AddDate(0, 0, 1).Format("2006-01-02"),
		"club-1|" + day.AddDate(0, 0, 2).Format("2006-01-02"),
	}, f.notifier.recorded())
}

func TestSpanTimes(t *testing.T) {
	start := time.Date(2030, 1, 15, 22, 0, 0, 0, time.UTC)
	end := time.Date(2030, 1, 17, 2, 0, 0, 0, time.UTC)

	dates := map[string]struct{}{}
	for _, ts := range spanTimes(start, end) {
		dates[ts.UTC().Format("2006-01-02")] = struct{}{}
	}
	require.Len(t, dates, 3)
	require.Contains(t, dates, "2030-01-15")
	require.Contains(t, dates, "2030-01-16")
	require.Contains(t, dates, "2030-01-17")

	// Degenerate range still yields the start instant.
	require.Equal(t, []time.Time{start}, spanTimes(start, start))

	// The range is half-open: a booking ending exactly at midnight does
	// not touch the following day.
	midnight := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)
	for _, ts := range spanTimes(start, midnight) {
		require.Equal(t, "2030-01-15", ts.UTC().Format("2006-01-02"))
	}
}
