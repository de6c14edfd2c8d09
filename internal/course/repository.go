package course

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
	Create(ctx context.Context, c *Course) error
	GetByCode(ctx context.Context, code string) (*Course, error)
	List(ctx context.Context, filter Filter) ([]*Course, int, error)
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Course) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courses").
		Columns("name", "nickname", "course_code", "period", "capacity", "description").
		Values(c.Name, c.Nickname, c.CourseCode, c.Period, c.Capacity, c.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create course query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrCodeTaken
		}
		return fmt.Errorf("create course failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByCode(ctx context.Context, code string) (*Course, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "nickname", "course_code", "period", "capacity",
		"description", "created_at", "updated_at",
	).
		From("public.courses").
		Where(squirrel.Eq{"course_code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get course query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var c Course
	if err := row.Scan(&c.ID, &c.Name, &c.Nickname, &c.CourseCode, &c.Period,
		&c.Capacity, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Course, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "nickname", "course_code", "period", "capacity",
		"description", "created_at", "updated_at", "count(*) OVER() as total_count",
	).From("public.courses")

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"course_code": like},
		})
	}
	if filter.Period != "" {
		query = query.Where(squirrel.Eq{"period": filter.Period})
	}

	query = query.OrderBy("course_code ASC")

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
		return nil, 0, fmt.Errorf("build list courses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses failed: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	var total int

	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Nickname, &c.CourseCode, &c.Period,
			&c.Capacity, &c.Description, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan course failed: %w", err)
		}
		courses = append(courses, &c)
	}

	return courses, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Course) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courses").
		Set("name", c.Name).
		Set("nickname", c.Nickname).
		Set("period", c.Period).
		Set("capacity", c.Capacity).
		Set("description", c.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update course query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update course failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete course query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete course failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
