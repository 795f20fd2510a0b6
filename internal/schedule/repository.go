package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// GetWeekly returns the club's weekly schedule, or nil when the club has
	// no configured rows at all.
	GetWeekly(ctx context.Context, clubID string) (*WeeklySchedule, error)
	// SetWeeklyDay upserts one day-of-week entry for the club.
	SetWeeklyDay(ctx context.Context, clubID string, weekday int, hours DayHours) error

	GetSpecialDate(ctx context.Context, clubID string, date time.Time) (*SpecialDate, error)
	ListSpecialDates(ctx context.Context, clubID string, from, to time.Time) ([]*SpecialDate, error)
	CreateSpecialDate(ctx context.Context, sd *SpecialDate) error
	UpdateSpecialDate(ctx context.Context, sd *SpecialDate) error
	DeleteSpecialDate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetWeekly(ctx context.Context, clubID string) (*WeeklySchedule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("day_of_week", "open_hour", "close_hour").
		From("public.club_weekly_hours").
		Where(squirrel.Eq{"club_id": clubID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get weekly schedule query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get weekly schedule failed: %w", err)
	}
	defer rows.Close()

	ws := &WeeklySchedule{ClubID: clubID}
	found := false
	for rows.Next() {
		var weekday int
		var day DayHours
		if err := rows.Scan(&weekday, &day.OpenHour, &day.CloseHour); err != nil {
			return nil, fmt.Errorf("scan weekly schedule row failed: %w", err)
		}
		if weekday < 0 || weekday > 6 {
			continue
		}
		ws.Days[weekday] = day
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly schedule rows failed: %w", err)
	}

	if !found {
		return nil, nil
	}
	return ws, nil
}

func (r *pgxRepository) SetWeeklyDay(ctx context.Context, clubID string, weekday int, hours DayHours) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.club_weekly_hours").
		Columns("club_id", "day_of_week", "open_hour", "close_hour").
		Values(clubID, weekday, hours.OpenHour, hours.CloseHour).
		Suffix(`ON CONFLICT (club_id, day_of_week)
			DO UPDATE SET open_hour = EXCLUDED.open_hour, close_hour = EXCLUDED.close_hour`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set weekly day query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set weekly day failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetSpecialDate(ctx context.Context, clubID string, date time.Time) (*SpecialDate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "club_id", "date", "open_hour", "close_hour", "is_closed", "reason", "created_at").
		From("public.club_special_dates").
		Where(squirrel.Eq{"club_id": clubID, "date": date.Format("2006-01-02")}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get special date query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var sd SpecialDate
	if err := row.Scan(&sd.ID, &sd.ClubID, &sd.Date, &sd.OpenHour, &sd.CloseHour, &sd.IsClosed, &sd.Reason, &sd.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpecialDateNotFound
		}
		return nil, fmt.Errorf("get special date failed: %w", err)
	}
	return &sd, nil
}

func (r *pgxRepository) ListSpecialDates(ctx context.Context, clubID string, from, to time.Time) ([]*SpecialDate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "club_id", "date", "open_hour", "close_hour", "is_closed", "reason", "created_at").
		From("public.club_special_dates").
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("date ASC")

	if !from.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date": from.Format("2006-01-02")})
	}
	if !to.IsZero() {
		query = query.Where(squirrel.LtOrEq{"date": to.Format("2006-01-02")})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list special dates query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list special dates failed: %w", err)
	}
	defer rows.Close()

	var result []*SpecialDate
	for rows.Next() {
		var sd SpecialDate
		if err := rows.Scan(&sd.ID, &sd.ClubID, &sd.Date, &sd.OpenHour, &sd.CloseHour, &sd.IsClosed, &sd.Reason, &sd.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan special date failed: %w", err)
		}
		result = append(result, &sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate special dates failed: %w", err)
	}
	return result, nil
}

func (r *pgxRepository) CreateSpecialDate(ctx context.Context, sd *SpecialDate) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.club_special_dates").
		Columns("club_id", "date", "open_hour", "close_hour", "is_closed", "reason").
		Values(sd.ClubID, sd.Date.Format("2006-01-02"), sd.OpenHour, sd.CloseHour, sd.IsClosed, sd.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create special date query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sd.ID, &sd.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSpecialDateExists
		}
		return fmt.Errorf("create special date failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateSpecialDate(ctx context.Context, sd *SpecialDate) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.club_special_dates").
		Set("open_hour", sd.OpenHour).
		Set("close_hour", sd.CloseHour).
		Set("is_closed", sd.IsClosed).
		Set("reason", sd.Reason).
		Where(squirrel.Eq{"id": sd.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update special date query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update special date failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSpecialDateNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteSpecialDate(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.club_special_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete special date query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete special date failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSpecialDateNotFound
	}
	return nil
}
