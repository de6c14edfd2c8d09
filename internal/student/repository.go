package student

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Student) error
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetByRegistration(ctx context.Context, number string) (*Student, error)
	List(ctx context.Context, filter Filter) ([]*Student, int, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const studentColumns = "id, name, email, phone, registration_number, course_code, created_at, updated_at"

func scanStudent(row pgx.Row) (*Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.RegistrationNumber,
		&s.CourseCode, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan student failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Student) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.students").
		Columns("name", "email", "phone", "registration_number", "course_code").
		Values(s.Name, s.Email, s.Phone, s.RegistrationNumber, s.CourseCode).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create student query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			// Both email and registration_number carry unique indexes.
			if strings.Contains(e.ConstraintName, "registration") {
				return ErrRegistrationTaken
			}
			return ErrEmailTaken
		}
		return fmt.Errorf("create student failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Student, error) {
	query := fmt.Sprintf("SELECT %s FROM public.students WHERE id = $1", studentColumns)
	return scanStudent(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Student, error) {
	query := fmt.Sprintf("SELECT %s FROM public.students WHERE email = $1", studentColumns)
	return scanStudent(r.pool.QueryRow(ctx, query, email))
}

func (r *pgxRepository) GetByRegistration(ctx context.Context, number string) (*Student, error) {
	query := fmt.Sprintf("SELECT %s FROM public.students WHERE registration_number = $1", studentColumns)
	return scanStudent(r.pool.QueryRow(ctx, query, number))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Student, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "email", "phone", "registration_number", "course_code",
		"created_at", "updated_at", "count(*) OVER() as total_count",
	).From("public.students")

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"email": like},
			squirrel.ILike{"registration_number": like},
		})
	}
	if filter.CourseCode != "" {
		query = query.Where(squirrel.Eq{"course_code": filter.CourseCode})
	}

	query = query.OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("build list students query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list students failed: %w", err)
	}
	defer rows.Close()

	var students []*Student
	var total int

	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.RegistrationNumber,
			&s.CourseCode, &s.CreatedAt, &s.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan student failed: %w", err)
		}
		students = append(students, &s)
	}

	return students, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Student) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.students").
		Set("name", s.Name).
		Set("email", s.Email).
		Set("phone", s.Phone).
		Set("registration_number", s.RegistrationNumber).
		Set("course_code", s.CourseCode).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update student query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			if strings.Contains(e.ConstraintName, "registration") {
				return ErrRegistrationTaken
			}
			return ErrEmailTaken
		}
		return fmt.Errorf("update student failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete student query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete student failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
