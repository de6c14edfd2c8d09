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

// pgxStore is the production Store backed by PostgreSQL.
//
// Disjointness is enforced in the schema: a trigger on public.reservations
// rejects any insert whose (lab_nickname, date) shares a time label with a
// live (non-cancelled) row, raising unique_violation. That makes Create the
// authoritative guard when two sessions commit concurrently.
type pgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func (r *pgxStore) FetchForDay(ctx context.Context, labNickname string, date time.Time) ([]*Reservation, error) {
	const query = `
		SELECT id, lab_nickname, date, times, user_id, user_name,
		       course_code, annotation, repeat_type, status, created_at, updated_at
		FROM public.reservations
		WHERE lab_nickname = $1 AND date = $2 AND status <> 'cancelled'
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, labNickname, date)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *pgxStore) Create(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("lab_nickname", "date", "times", "user_id", "user_name",
			"course_code", "annotation", "repeat_type", "status").
		Values(res.LabNickname, res.Date, res.Times, res.UserID, res.UserName,
			res.CourseCode, res.Annotation, string(res.RepeatType), string(res.Status)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxStore) GetByID(ctx context.Context, id string) (*Reservation, error) {
	const query = `
		SELECT id, lab_nickname, date, times, user_id, user_name,
		       course_code, annotation, repeat_type, status, created_at, updated_at
		FROM public.reservations
		WHERE id = $1
	`
	res, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *pgxStore) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "lab_nickname", "date", "times", "user_id", "user_name",
		"course_code", "annotation", "repeat_type", "status", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.reservations")

	if filter.LabNickname != "" {
		query = query.Where(squirrel.Eq{"lab_nickname": filter.LabNickname})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CourseCode != "" {
		query = query.Where(squirrel.Eq{"course_code": filter.CourseCode})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"date": filter.DateTo})
	}

	orderBy := "date"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		var repeatType, status string
		if err := rows.Scan(
			&res.ID, &res.LabNickname, &res.Date, &res.Times, &res.UserID, &res.UserName,
			&res.CourseCode, &res.Annotation, &repeatType, &status,
			&res.CreatedAt, &res.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		res.RepeatType = RepeatType(repeatType)
		res.Status = Status(status)
		reservations = append(reservations, &res)
	}

	return reservations, total, nil
}

func (r *pgxStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	var repeatType, status string
	if err := row.Scan(
		&res.ID, &res.LabNickname, &res.Date, &res.Times, &res.UserID, &res.UserName,
		&res.CourseCode, &res.Annotation, &repeatType, &status,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan reservation failed: %w", err)
	}
	res.RepeatType = RepeatType(repeatType)
	res.Status = Status(status)
	return &res, nil
}
