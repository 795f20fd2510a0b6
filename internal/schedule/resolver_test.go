package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	Repository
	weekly  map[string]*WeeklySchedule
	special map[string]*SpecialDate // clubID + "|" + YYYY-MM-DD
}

func (f *fakeRepo) GetWeekly(_ context.Context, clubID string) (*WeeklySchedule, error) {
	return f.weekly[clubID], nil
}

func (f *fakeRepo) GetSpecialDate(_ context.Context, clubID string, date time.Time) (*SpecialDate, error) {
	sd, ok := f.special[clubID+"|"+date.Format("2006-01-02")]
	if !ok {
		return nil, ErrSpecialDateNotFound
	}
	return sd, nil
}

type fakeClubs struct {
	zones map[string]*time.Location
}

func (f *fakeClubs) Timezone(_ context.Context, clubID string) (*time.Location, error) {
	loc, ok := f.zones[clubID]
	if !ok {
		return nil, ErrClubNotFound
	}
	return loc, nil
}

type fakeCourts struct {
	overrides map[string]*CourtHours
}

func (f *fakeCourts) HoursOverride(_ context.Context, courtID string) (*CourtHours, error) {
	o, ok := f.overrides[courtID]
	if !ok {
		return nil, ErrCourtNotFound
	}
	return o, nil
}

func intPtr(v int) *int { return &v }

func TestResolvePrecedence(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	const clubID = "club-1"

	// Weekly: Mondays 10-20, Tuesdays only open side set.
	weekly := &WeeklySchedule{ClubID: clubID}
	weekly.Days[int(time.Monday)] = DayHours{OpenHour: intPtr(10), CloseHour: intPtr(20)}
	weekly.Days[int(time.Tuesday)] = DayHours{OpenHour: intPtr(11)}

	monday := time.Date(2026, 2, 9, 0, 0, 0, 0, taipei)  // Monday
	tuesday := time.Date(2026, 2, 10, 0, 0, 0, 0, taipei) // Tuesday
	friday := time.Date(2026, 2, 13, 0, 0, 0, 0, taipei)  // Friday, no weekly entry

	special := map[string]*SpecialDate{
		clubID + "|2026-02-09": {ClubID: clubID, Date: monday, OpenHour: 14, CloseHour: 18},
		clubID + "|2026-02-13": {ClubID: clubID, Date: friday, IsClosed: true},
	}

	repo := &fakeRepo{
		weekly:  map[string]*WeeklySchedule{clubID: weekly},
		special: special,
	}
	clubs := &fakeClubs{zones: map[string]*time.Location{clubID: taipei}}
	courts := &fakeCourts{overrides: map[string]*CourtHours{
		"court-narrow":   {OpenHour: intPtr(12), CloseHour: intPtr(16)},
		"court-widen":    {OpenHour: intPtr(6), CloseHour: intPtr(23)},
		"court-inverted": {OpenHour: intPtr(21), CloseHour: intPtr(8)},
		"court-open-only": {OpenHour: intPtr(13)},
	}}

	r := NewResolver(repo, clubs, courts, Defaults{OpenHour: 9, CloseHour: 22})
	ctx := context.Background()

	tests := []struct {
		name    string
		clubID  string
		date    time.Time
		courtID string
		want    BusinessHours
	}{
		{
			name:   "special date overrides weekly",
			clubID: clubID,
			date:   monday,
			want:   BusinessHours{OpenHour: 14, CloseHour: 18},
		},
		{
			name:   "weekly entry with default close side",
			clubID: clubID,
			date:   tuesday,
			want:   BusinessHours{OpenHour: 11, CloseHour: 22},
		},
		{
			name:   "closed special date",
			clubID: clubID,
			date:   friday,
			want:   BusinessHours{Closed: true},
		},
		{
			name:    "closed day ignores court override",
			clubID:  clubID,
			date:    friday,
			courtID: "court-narrow",
			want:    BusinessHours{Closed: true},
		},
		{
			name:   "unknown club falls back to platform default",
			clubID: "nope",
			date:   monday,
			want:   BusinessHours{OpenHour: 9, CloseHour: 22},
		},
		{
			name:    "court narrows special window",
			clubID:  clubID,
			date:    monday,
			courtID: "court-narrow",
			want:    BusinessHours{OpenHour: 14, CloseHour: 16},
		},
		{
			name:    "court cannot widen club window",
			clubID:  clubID,
			date:    tuesday,
			courtID: "court-widen",
			want:    BusinessHours{OpenHour: 11, CloseHour: 22},
		},
		{
			name:    "inverted intersection discards the override",
			clubID:  clubID,
			date:    tuesday,
			courtID: "court-inverted",
			want:    BusinessHours{OpenHour: 11, CloseHour: 22},
		},
		{
			name:    "one sided override narrows only that side",
			clubID:  clubID,
			date:    tuesday,
			courtID: "court-open-only",
			want:    BusinessHours{OpenHour: 13, CloseHour: 22},
		},
		{
			name:    "unknown court behaves as no override",
			clubID:  clubID,
			date:    tuesday,
			courtID: "court-missing",
			want:    BusinessHours{OpenHour: 11, CloseHour: 22},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(ctx, tt.clubID, tt.date, tt.courtID)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNormalizesToClubCalendar(t *testing.T) {
	auckland, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)

	const clubID = "club-nz"
	weekly := &WeeklySchedule{ClubID: clubID}
	weekly.Days[int(time.Monday)] = DayHours{OpenHour: intPtr(8), CloseHour: intPtr(12)}

	repo := &fakeRepo{
		weekly:  map[string]*WeeklySchedule{clubID: weekly},
		special: map[string]*SpecialDate{},
	}
	clubs := &fakeClubs{zones: map[string]*time.Location{clubID: auckland}}
	courts := &fakeCourts{}

	r := NewResolver(repo, clubs, courts, Defaults{OpenHour: 9, CloseHour: 22})

	// Sunday 20:00 UTC is already Monday in Auckland.
	utcSunday := time.Date(2026, 2, 8, 20, 0, 0, 0, time.UTC)
	got, err := r.Resolve(context.Background(), clubID, utcSunday, "")
	require.NoError(t, err)
	require.Equal(t, BusinessHours{OpenHour: 8, CloseHour: 12}, got)
}

func TestResolveMisconfiguredWeeklyFallsBack(t *testing.T) {
	const clubID = "club-bad"
	weekly := &WeeklySchedule{ClubID: clubID}
	weekly.Days[int(time.Wednesday)] = DayHours{OpenHour: intPtr(18), CloseHour: intPtr(10)}

	repo := &fakeRepo{
		weekly:  map[string]*WeeklySchedule{clubID: weekly},
		special: map[string]*SpecialDate{},
	}
	clubs := &fakeClubs{zones: map[string]*time.Location{clubID: time.UTC}}

	r := NewResolver(repo, clubs, &fakeCourts{}, Defaults{OpenHour: 9, CloseHour: 22})

	wednesday := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	got, err := r.Resolve(context.Background(), clubID, wednesday, "")
	require.NoError(t, err)
	require.Equal(t, BusinessHours{OpenHour: 9, CloseHour: 22}, got)
}

func TestResolveIsIdempotent(t *testing.T) {
	const clubID = "club-same"
	weekly := &WeeklySchedule{ClubID: clubID}
	weekly.Days[int(time.Friday)] = DayHours{OpenHour: intPtr(11), CloseHour: intPtr(20)}

	repo := &fakeRepo{
		weekly:  map[string]*WeeklySchedule{clubID: weekly},
		special: map[string]*SpecialDate{},
	}
	clubs := &fakeClubs{zones: map[string]*time.Location{clubID: time.UTC}}

	r := NewResolver(repo, clubs, &fakeCourts{}, Defaults{OpenHour: 9, CloseHour: 22})

	friday := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	first, err := r.Resolve(context.Background(), clubID, friday, "")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), clubID, friday, "")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, BusinessHours{OpenHour: 11, CloseHour: 20}, first)
}

func TestDateOnly(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	// 2026-02-08 23:30 UTC is 2026-02-09 07:30 in Taipei.
	ts := time.Date(2026, 2, 8, 23, 30, 0, 0, time.UTC)
	got := DateOnly(ts, taipei)
	require.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, taipei), got)
}
