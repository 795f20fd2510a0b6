package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, ct *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, ct *Court) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, ct *Court) error {
	const query = `
		INSERT INTO public.courts (club_id, sport_id, name, open_hour, close_hour)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, ct.ClubID, ct.SportID, ct.Name, ct.OpenHour, ct.CloseHour).
		Scan(&ct.ID, &ct.CreatedAt)
	if err != nil {
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	const query = `
		SELECT id, club_id, sport_id, name, open_hour, close_hour, created_at
		FROM public.courts
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var ct Court
	if err := row.Scan(&ct.ID, &ct.ClubID, &ct.SportID, &ct.Name, &ct.OpenHour, &ct.CloseHour, &ct.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return &ct, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	var args []interface{}
	queryBase := `
		SELECT id, club_id, sport_id, name, open_hour, close_hour, created_at, count(*) OVER() as total_count
		FROM public.courts
		WHERE 1=1
	`
	paramIndex := 1

	if filter.ClubID != "" {
		queryBase += fmt.Sprintf(" AND club_id = $%d", paramIndex)
		args = append(args, filter.ClubID)
		paramIndex++
	}
	if filter.SportID != "" {
		queryBase += fmt.Sprintf(" AND sport_id = $%d", paramIndex)
		args = append(args, filter.SportID)
		paramIndex++
	}

	queryBase += " ORDER BY created_at DESC"

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var result []*Court
	var total int

	for rows.Next() {
		var ct Court
		if err := rows.Scan(
			&ct.ID, &ct.ClubID, &ct.SportID, &ct.Name, &ct.OpenHour, &ct.CloseHour, &ct.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		result = append(result, &ct)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, ct *Court) error {
	const query = `
		UPDATE public.courts
		SET name = $1, sport_id = $2, open_hour = $3, close_hour = $4
		WHERE id = $5
	`
	tag, err := r.pool.Exec(ctx, query, ct.Name, ct.SportID, ct.OpenHour, ct.CloseHour, ct.ID)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.courts WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete court failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
