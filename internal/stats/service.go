package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/courtable/club-booking-backend/internal/club"
	"github.com/courtable/club-booking-backend/internal/pkg/cache"
	"github.com/courtable/club-booking-backend/internal/pkg/metrics"
)

type Service interface {
	// GetRange returns one statistic per date in [from, to], both
	// inclusive. Dates with no bookings yield zero-valued entries.
	GetRange(ctx context.Context, clubID string, from, to time.Time) ([]*DailyStatistic, error)
}

type service struct {
	repo        Repository
	clubService club.Service
	cache       *cache.Cache
	log         zerolog.Logger
}

// NewService creates the statistics read service. cache may be nil, in
// which case every query goes to the database.
func NewService(repo Repository, clubService club.Service, c *cache.Cache, log zerolog.Logger) Service {
	return &service{
		repo:        repo,
		clubService: clubService,
		cache:       c,
		log:         log.With().Str("component", "stats").Logger(),
	}
}

func cacheKey(clubID, date string) string {
	return fmt.Sprintf("stats:%s:%s", clubID, date)
}

func (s *service) GetRange(ctx context.Context, clubID string, from, to time.Time) ([]*DailyStatistic, error) {
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days > maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	if _, err := s.clubService.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, club.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	out := make([]*DailyStatistic, days)
	var missing []string

	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		if s.cache != nil {
			var cached DailyStatistic
			err := s.cache.GetJSON(ctx, cacheKey(clubID, date), &cached)
			if err == nil {
				metrics.RecordStatsCacheLookup("hit")
				out[i] = &cached
				continue
			}
			if !errors.Is(err, cache.ErrMiss) {
				s.log.Warn().Err(err).Str("club_id", clubID).Msg("stats cache read failed")
			}
			metrics.RecordStatsCacheLookup("miss")
		}
		missing = append(missing, date)
		out[i] = nil
	}

	if len(missing) == 0 {
		return out, nil
	}

	stored, err := s.repo.ListRange(ctx, clubID, missing[0], missing[len(missing)-1])
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*DailyStatistic, len(stored))
	for _, st := range stored {
		byDate[st.Date] = st
	}

	for i := 0; i < days; i++ {
		if out[i] != nil {
			continue
		}
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		st, ok := byDate[date]
		if !ok {
			st = &DailyStatistic{ClubID: clubID, Date: date}
		}
		out[i] = st

		if s.cache != nil {
			if err := s.cache.SetJSON(ctx, cacheKey(clubID, date), st); err != nil {
				s.log.Warn().Err(err).Str("club_id", clubID).Msg("stats cache write failed")
			}
		}
	}

	return out, nil
}
