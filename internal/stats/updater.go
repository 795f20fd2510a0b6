package stats

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/courtable/club-booking-backend/internal/pkg/cache"
	"github.com/courtable/club-booking-backend/internal/pkg/metrics"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

// recomputeTimeout bounds a single background recomputation.
const recomputeTimeout = 10 * time.Second

// HoursResolver yields the effective club window used to size occupancy.
// Satisfied by schedule.Resolver.
type HoursResolver interface {
	Resolve(ctx context.Context, clubID string, date time.Time, courtID string) (schedule.BusinessHours, error)
}

// Updater recomputes daily statistics in the background whenever a
// booking changes. It satisfies the notifier interface the booking
// service expects.
type Updater struct {
	repo  Repository
	clubs schedule.ClubLookup
	hours HoursResolver
	cache *cache.Cache
	log   zerolog.Logger
	wg    sync.WaitGroup
}

// NewUpdater creates the background statistics updater. cache may be nil.
func NewUpdater(repo Repository, clubs schedule.ClubLookup, hours HoursResolver, c *cache.Cache, log zerolog.Logger) *Updater {
	return &Updater{
		repo:  repo,
		clubs: clubs,
		hours: hours,
		cache: c,
		log:   log.With().Str("component", "stats-updater").Logger(),
	}
}

// BookingsChanged recomputes the statistic of every distinct club-local
// date the given timestamps fall on. It returns immediately; the work
// runs on background goroutines and a failed date never affects the
// others.
func (u *Updater) BookingsChanged(clubID string, at ...time.Time) {
	if len(at) == 0 {
		return
	}

	loc, err := u.clubs.Timezone(context.Background(), clubID)
	if err != nil {
		// Unknown or broken timezone still gets its stats recomputed,
		// keyed by UTC dates.
		u.log.Warn().Err(err).Str("club_id", clubID).Msg("timezone lookup failed, using UTC")
		loc = time.UTC
	}

	seen := make(map[string]time.Time, len(at))
	for _, t := range at {
		day := schedule.DateOnly(t, loc)
		seen[day.Format("2006-01-02")] = day
	}

	for _, day := range seen {
		u.wg.Add(1)
		go u.recompute(clubID, day)
	}
}

func (u *Updater) recompute(clubID string, day time.Time) {
	defer u.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
	defer cancel()

	var window float64
	bh, err := u.hours.Resolve(ctx, clubID, day, "")
	if err != nil {
		u.log.Warn().Err(err).Str("club_id", clubID).Msg("hours lookup failed, occupancy unavailable")
	} else if !bh.Closed {
		window = float64(bh.CloseHour - bh.OpenHour)
	}

	stat, err := u.repo.Recompute(ctx, clubID, day, window)
	if err != nil {
		metrics.RecordStatsRecompute("error")
		u.log.Error().Err(err).
			Str("club_id", clubID).
			Str("date", day.Format("2006-01-02")).
			Msg("daily stats recompute failed")
		return
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey(clubID, stat.Date), stat); err != nil {
			u.log.Warn().Err(err).Str("club_id", clubID).Msg("stats cache write failed")
		}
	}

	metrics.RecordStatsRecompute("ok")
	u.log.Debug().
		Str("club_id", clubID).
		Str("date", stat.Date).
		Int("booking_count", stat.BookingCount).
		Msg("daily stats recomputed")
}

// Wait blocks until all in-flight recomputations finish. Intended for
// shutdown and tests.
func (u *Updater) Wait() {
	u.wg.Wait()
}
