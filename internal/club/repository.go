package club

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for clubs.
type Repository interface {
	Create(ctx context.Context, c *Club) error
	GetByID(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context, filter ClubFilter) ([]*Club, int, error)
	Update(ctx context.Context, c *Club) error
	Delete(ctx context.Context, id string) error
	SetPhotoID(ctx context.Context, id string, fileID *string) error
	GetTimezone(ctx context.Context, id string) (string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Club) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clubs").
		Columns(
			"organization_id", "name", "timezone", "address", "description",
			"rules", "facilities", "capacity", "is_open", "longitude", "latitude",
		).
		Values(
			c.OrganizationID, c.Name, c.Timezone, c.Address, c.Description,
			c.Rules, c.Facilities, c.Capacity, c.IsOpen, c.Longitude, c.Latitude,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create club query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create club failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Club, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"c.id", "c.organization_id", "o.name", "c.name", "c.timezone",
		"c.address", "c.description", "c.rules", "c.facilities", "c.capacity",
		"c.is_open", "c.photo_id", "c.longitude", "c.latitude", "c.created_at",
	).
		From("public.clubs c").
		Join("public.organizations o ON c.organization_id = o.id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get club query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var c Club
	err = row.Scan(
		&c.ID, &c.OrganizationID, &c.OrganizationName, &c.Name, &c.Timezone,
		&c.Address, &c.Description, &c.Rules, &c.Facilities, &c.Capacity,
		&c.IsOpen, &c.PhotoID, &c.Longitude, &c.Latitude, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get club failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter ClubFilter) ([]*Club, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"c.id", "c.organization_id", "o.name", "c.name", "c.timezone",
		"c.address", "c.description", "c.rules", "c.facilities", "c.capacity",
		"c.is_open", "c.photo_id", "c.longitude", "c.latitude", "c.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.clubs c").
		Join("public.organizations o ON c.organization_id = o.id")

	// Dynamic Filtering
	if filter.OrganizationID != "" {
		query = query.Where(squirrel.Eq{"c.organization_id": filter.OrganizationID})
	}
	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"c.name": "%" + filter.Name + "%"})
	}
	if filter.IsOpen != nil {
		query = query.Where(squirrel.Eq{"c.is_open": filter.IsOpen})
	}
	if filter.CapacityMin != nil {
		query = query.Where(squirrel.GtOrEq{"c.capacity": filter.CapacityMin})
	}
	if filter.CapacityMax != nil {
		query = query.Where(squirrel.LtOrEq{"c.capacity": filter.CapacityMax})
	}
	if !filter.CreatedAtFrom.IsZero() {
		query = query.Where(squirrel.GtOrEq{"c.created_at": filter.CreatedAtFrom})
	}
	if !filter.CreatedAtTo.IsZero() {
		query = query.Where(squirrel.LtOrEq{"c.created_at": filter.CreatedAtTo})
	}

	orderBy := "c.created_at"
	if filter.SortBy != "" {
		// Safe to prepend c. as we only allow specific fields in the handler validation
		orderBy = "c." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clubs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clubs failed: %w", err)
	}
	defer rows.Close()

	var clubs []*Club
	var total int

	for rows.Next() {
		var c Club
		if err := rows.Scan(
			&c.ID, &c.OrganizationID, &c.OrganizationName, &c.Name, &c.Timezone,
			&c.Address, &c.Description, &c.Rules, &c.Facilities, &c.Capacity,
			&c.IsOpen, &c.PhotoID, &c.Longitude, &c.Latitude, &c.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan club failed: %w", err)
		}
		clubs = append(clubs, &c)
	}

	return clubs, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Club) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clubs").
		Set("name", c.Name).
		Set("timezone", c.Timezone).
		Set("address", c.Address).
		Set("description", c.Description).
		Set("rules", c.Rules).
		Set("facilities", c.Facilities).
		Set("capacity", c.Capacity).
		Set("is_open", c.IsOpen).
		Set("longitude", c.Longitude).
		Set("latitude", c.Latitude).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update club query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update club failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.clubs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete club query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete club failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetPhotoID(ctx context.Context, id string, fileID *string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clubs").
		Set("photo_id", fileID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set club photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set club photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetTimezone(ctx context.Context, id string) (string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("timezone").
		From("public.clubs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build get club timezone query failed: %w", err)
	}

	var tz string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&tz); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get club timezone failed: %w", err)
	}
	return tz, nil
}
