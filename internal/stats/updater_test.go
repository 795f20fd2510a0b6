package stats

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

type recordingRepo struct {
	mu         sync.Mutex
	calls      []string // clubID + "|" + date
	lastWindow float64
	failDate   string
}

func (r *recordingRepo) Recompute(_ context.Context, clubID string, day time.Time, windowHours float64) (*DailyStatistic, error) {
	date := day.Format("2006-01-02")

	r.mu.Lock()
	r.calls = append(r.calls, clubID+"|"+date)
	r.lastWindow = windowHours
	r.mu.Unlock()

	if date == r.failDate {
		return nil, errors.New("boom")
	}
	return &DailyStatistic{ClubID: clubID, Date: date}, nil
}

func (r *recordingRepo) ListRange(context.Context, string, string, string) ([]*DailyStatistic, error) {
	return nil, nil
}

func (r *recordingRepo) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.calls...)
	sort.Strings(out)
	return out
}

type staticZones struct {
	zones map[string]*time.Location
}

func (s *staticZones) Timezone(_ context.Context, clubID string) (*time.Location, error) {
	loc, ok := s.zones[clubID]
	if !ok {
		return nil, schedule.ErrClubNotFound
	}
	return loc, nil
}

type staticHours struct {
	hours schedule.BusinessHours
}

func (s *staticHours) Resolve(context.Context, string, time.Time, string) (schedule.BusinessHours, error) {
	return s.hours, nil
}

func newTestUpdater(repo Repository, zones map[string]*time.Location) *Updater {
	hours := &staticHours{hours: schedule.BusinessHours{OpenHour: 9, CloseHour: 22}}
	return NewUpdater(repo, &staticZones{zones: zones}, hours, nil, zerolog.Nop())
}

func TestBookingsChangedDistinctDates(t *testing.T) {
	repo := &recordingRepo{}
	u := newTestUpdater(repo, map[string]*time.Location{"club-1": time.UTC})

	u.BookingsChanged("club-1",
		time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC), // same day, deduplicated
		time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC),
	)
	u.Wait()

	require.Equal(t, []string{
		"club-1|2026-01-15",
		"club-1|2026-01-16",
		"club-1|2026-01-18",
	}, repo.recorded())
}

func TestBookingsChangedUsesClubLocalDates(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	repo := &recordingRepo{}
	u := newTestUpdater(repo, map[string]*time.Location{"club-tw": taipei})

	// Both timestamps are Jan 15 in UTC but 23:00Z is already Jan 16 in Taipei.
	u.BookingsChanged("club-tw",
		time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC),
	)
	u.Wait()

	require.Equal(t, []string{
		"club-tw|2026-01-15",
		"club-tw|2026-01-16",
	}, repo.recorded())
}

func TestBookingsChangedUnknownClubFallsBackToUTC(t *testing.T) {
	repo := &recordingRepo{}
	u := newTestUpdater(repo, nil)

	u.BookingsChanged("ghost", time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	u.Wait()

	require.Equal(t, []string{"ghost|2026-01-15"}, repo.recorded())
}

func TestBookingsChangedFailureIsolation(t *testing.T) {
	repo := &recordingRepo{failDate: "2026-01-16"}
	u := newTestUpdater(repo, map[string]*time.Location{"club-1": time.UTC})

	u.BookingsChanged("club-1",
		time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 17, 10, 0, 0, 0, time.UTC),
	)
	u.Wait()

	// The failing date was attempted and the other two still completed.
	require.Equal(t, []string{
		"club-1|2026-01-15",
		"club-1|2026-01-16",
		"club-1|2026-01-17",
	}, repo.recorded())
}

func TestBookingsChangedPassesClubWindow(t *testing.T) {
	repo := &recordingRepo{}
	u := newTestUpdater(repo, map[string]*time.Location{"club-1": time.UTC})

	u.BookingsChanged("club-1", time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	u.Wait()

	// 9 to 22 resolved for the date.
	require.Equal(t, 13.0, repo.lastWindow)
}

func TestBookingsChangedNoTimestamps(t *testing.T) {
	repo := &recordingRepo{}
	u := newTestUpdater(repo, map[string]*time.Location{"club-1": time.UTC})

	u.BookingsChanged("club-1")
	u.Wait()

	require.Empty(t, repo.recorded())
}
