package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Recompute rebuilds the statistic for one club-local date from the
	// bookings table and upserts the row. day must be midnight in the
	// club's timezone. windowHours is the length of the club's effective
	// window on that date, zero when closed.
	Recompute(ctx context.Context, clubID string, day time.Time, windowHours float64) (*DailyStatistic, error)

	// ListRange returns the stored statistics for [from, to], both
	// inclusive YYYY-MM-DD dates. Dates without a row are absent.
	ListRange(ctx context.Context, clubID string, from, to string) ([]*DailyStatistic, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Recompute(ctx context.Context, clubID string, day time.Time, windowHours float64) (*DailyStatistic, error) {
	dayEnd := day.AddDate(0, 0, 1)

	// Hours are clipped to the day so a booking crossing midnight only
	// contributes its overlap.
	const aggregate = `
		SELECT count(*),
		       coalesce(sum(extract(epoch FROM (least(b.end_time, $3) - greatest(b.start_time, $2)))) / 3600, 0),
		       (SELECT count(*) FROM public.courts WHERE club_id = $1)
		FROM public.bookings b
		JOIN public.courts ct ON b.court_id = ct.id
		WHERE ct.club_id = $1
		  AND b.status != 'cancelled'
		  AND b.start_time < $3
		  AND b.end_time > $2`

	stat := &DailyStatistic{
		ClubID: clubID,
		Date:   day.Format("2006-01-02"),
	}

	var courtCount int
	if err := r.pool.QueryRow(ctx, aggregate, clubID, day, dayEnd).
		Scan(&stat.BookingCount, &stat.BookedHours, &courtCount); err != nil {
		return nil, fmt.Errorf("aggregate daily stats failed: %w", err)
	}

	stat.OpenHours = windowHours * float64(courtCount)
	if stat.OpenHours > 0 {
		stat.OccupancyRate = stat.BookedHours / stat.OpenHours
	}

	const upsert = `
		INSERT INTO public.club_daily_stats (club_id, stat_date, booking_count, booked_hours, open_hours, occupancy_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (club_id, stat_date)
		DO UPDATE SET booking_count  = EXCLUDED.booking_count,
		              booked_hours   = EXCLUDED.booked_hours,
		              open_hours     = EXCLUDED.open_hours,
		              occupancy_rate = EXCLUDED.occupancy_rate,
		              updated_at     = now()
		RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, upsert, clubID, stat.Date, stat.BookingCount, stat.BookedHours, stat.OpenHours, stat.OccupancyRate).
		Scan(&stat.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert daily stats failed: %w", err)
	}

	return stat, nil
}

func (r *pgxRepository) ListRange(ctx context.Context, clubID string, from, to string) ([]*DailyStatistic, error) {
	const query = `
		SELECT club_id, to_char(stat_date, 'YYYY-MM-DD'), booking_count, booked_hours, open_hours, occupancy_rate, updated_at
		FROM public.club_daily_stats
		WHERE club_id = $1 AND stat_date >= $2 AND stat_date <= $3
		ORDER BY stat_date ASC`

	rows, err := r.pool.Query(ctx, query, clubID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily stats failed: %w", err)
	}
	defer rows.Close()

	var out []*DailyStatistic
	for rows.Next() {
		var s DailyStatistic
		if err := rows.Scan(&s.ClubID, &s.Date, &s.BookingCount, &s.BookedHours, &s.OpenHours, &s.OccupancyRate, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily stats failed: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
