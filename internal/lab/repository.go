package lab

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, l *Lab) error
	GetByNickname(ctx context.Context, nickname string) (*Lab, error)
	List(ctx context.Context, filter Filter) ([]*Lab, int, error)
	Update(ctx context.Context, l *Lab) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Lab) error {
	const query = `
		INSERT INTO public.labs (nickname, name, capacity, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, l.Nickname, l.Name, l.Capacity, l.Description, l.IsActive).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNicknameTaken
		}
		return fmt.Errorf("create lab failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByNickname(ctx context.Context, nickname string) (*Lab, error) {
	const query = `
		SELECT id, nickname, name, capacity, description, photo_file_id, is_active, created_at
		FROM public.labs
		WHERE nickname = $1
	`
	row := r.pool.QueryRow(ctx, query, nickname)

	var l Lab
	if err := row.Scan(&l.ID, &l.Nickname, &l.Name, &l.Capacity, &l.Description,
		&l.PhotoFileID, &l.IsActive, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lab failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Lab, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "nickname", "name", "capacity", "description", "photo_file_id",
		"is_active", "created_at", "count(*) OVER() as total_count",
	).From("public.labs")

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"nickname": like},
		})
	}
	if filter.Active != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.Active})
	}

	query = query.OrderBy("nickname ASC")

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
		return nil, 0, fmt.Errorf("build list labs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list labs failed: %w", err)
	}
	defer rows.Close()

	var labs []*Lab
	var total int

	for rows.Next() {
		var l Lab
		if err := rows.Scan(&l.ID, &l.Nickname, &l.Name, &l.Capacity, &l.Description,
			&l.PhotoFileID, &l.IsActive, &l.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan lab failed: %w", err)
		}
		labs = append(labs, &l)
	}

	return labs, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Lab) error {
	const query = `
		UPDATE public.labs
		SET name = $1, capacity = $2, description = $3, photo_file_id = $4, is_active = $5
		WHERE id = $6
	`
	ct, err := r.pool.Exec(ctx, query, l.Name, l.Capacity, l.Description, l.PhotoFileID, l.IsActive, l.ID)
	if err != nil {
		return fmt.Errorf("update lab failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	// Soft delete: keep historical reservations resolvable.
	const query = `
		UPDATE public.labs
		SET is_active = false
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lab failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
