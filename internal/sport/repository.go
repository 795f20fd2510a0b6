package sport

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, sp *Sport) error
	GetByID(ctx context.Context, id string) (*Sport, error)
	List(ctx context.Context, filter Filter) ([]*Sport, int, error)
	Update(ctx context.Context, sp *Sport) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, sp *Sport) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sports").
		Columns("organization_id", "name", "description").
		Values(sp.OrganizationID, sp.Name, sp.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create sport query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&sp.ID, &sp.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sport failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Sport, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"sp.id", "sp.organization_id", "o.name", "sp.name", "sp.description", "sp.created_at",
	).
		From("public.sports sp").
		Join("public.organizations o ON sp.organization_id = o.id").
		Where(squirrel.Eq{"sp.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get sport query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var sp Sport
	if err := row.Scan(&sp.ID, &sp.OrganizationID, &sp.OrganizationName, &sp.Name, &sp.Description, &sp.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sport failed: %w", err)
	}
	return &sp, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Sport, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"sp.id", "sp.organization_id", "o.name", "sp.name", "sp.description", "sp.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.sports sp").
		Join("public.organizations o ON sp.organization_id = o.id")

	if filter.OrganizationID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"sp.organization_id": filter.OrganizationID})
	}

	// Sorting
	orderBy := "created_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	queryBuilder = queryBuilder.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sports query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sports failed: %w", err)
	}
	defer rows.Close()

	var result []*Sport
	var total int

	for rows.Next() {
		var sp Sport
		if err := rows.Scan(
			&sp.ID, &sp.OrganizationID, &sp.OrganizationName, &sp.Name, &sp.Description, &sp.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sport failed: %w", err)
		}
		result = append(result, &sp)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, sp *Sport) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sports").
		Set("name", sp.Name).
		Set("description", sp.Description).
		Where(squirrel.Eq{"id": sp.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update sport query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update sport failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.sports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete sport query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete sport failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
