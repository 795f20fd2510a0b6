package stats

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/courtable/club-booking-backend/internal/club"
)

type rangeRepo struct {
	Repository
	rows []*DailyStatistic
}

func (r *rangeRepo) ListRange(context.Context, string, string, string) ([]*DailyStatistic, error) {
	return r.rows, nil
}

type oneClub struct {
	club.Service
	id string
}

func (o *oneClub) GetByID(_ context.Context, id string) (*club.Club, error) {
	if id != o.id {
		return nil, club.ErrNotFound
	}
	return &club.Club{ID: id}, nil
}

func TestGetRangeFillsMissingDays(t *testing.T) {
	repo := &rangeRepo{rows: []*DailyStatistic{
		{ClubID: "club-1", Date: "2026-01-16", BookingCount: 3, BookedHours: 4.5},
	}}
	svc := NewService(repo, &oneClub{id: "club-1"}, nil, zerolog.Nop())

	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)

	out, err := svc.GetRange(context.Background(), "club-1", from, to)
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.Equal(t, "2026-01-15", out[0].Date)
	require.Zero(t, out[0].BookingCount)

	require.Equal(t, "2026-01-16", out[1].Date)
	require.Equal(t, 3, out[1].BookingCount)
	require.Equal(t, 4.5, out[1].BookedHours)

	require.Equal(t, "2026-01-17", out[2].Date)
	require.Zero(t, out[2].BookingCount)
}

func TestGetRangeValidation(t *testing.T) {
	svc := NewService(&rangeRepo{}, &oneClub{id: "club-1"}, nil, zerolog.Nop())
	ctx := context.Background()

	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetRange(ctx, "club-1", from, from.AddDate(0, 0, -1))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.GetRange(ctx, "club-1", from, from.AddDate(2, 0, 0))
	require.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = svc.GetRange(ctx, "ghost", from, from)
	require.ErrorIs(t, err, ErrClubNotFound)
}
