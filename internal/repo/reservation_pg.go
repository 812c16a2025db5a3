package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/webtilians/backA/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so Reserve works the same way inside a test transaction.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgReservationRepo is the Postgres implementation of ReservationRepo.
type pgReservationRepo struct {
	db db
}

// NewPGReservationRepo constructs a ReservationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

// List returns all reservations in insertion order.
func (r *pgReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	const q = `
		SELECT id, guest_name, room_type, stay_date, email, phone, guests, created_at
		FROM reservations
		ORDER BY seq`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: %w: %v", domain.ErrStoreRead, err)
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.List: scan: %w: %v", domain.ErrStoreRead, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: rows: %w: %v", domain.ErrStoreRead, err)
	}
	return reservations, nil
}

// Count returns the number of reservations for the (room type, date) pair.
func (r *pgReservationRepo) Count(ctx context.Context, roomType, date string) (int, error) {
	n, err := countReservations(ctx, r.db, roomType, date)
	if err != nil {
		return 0, fmt.Errorf("repo.ReservationRepo.Count: %w: %v", domain.ErrStoreRead, err)
	}
	return n, nil
}

// Reserve counts and inserts inside one transaction that holds a
// transaction-scoped advisory lock on the (room type, date) pair. Concurrent
// Reserve calls for the same pair, from any process, queue on that lock.
func (r *pgReservationRepo) Reserve(ctx context.Context, res domain.Reservation, capacity int) (domain.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: begin: %w: %v", domain.ErrStoreWrite, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	key := domain.RoomTypeKey(res.RoomType)
	const lockQ = `SELECT pg_advisory_xact_lock(hashtext(@lock_key))`
	if _, err := tx.Exec(ctx, lockQ, pgx.NamedArgs{"lock_key": key + "|" + res.Date}); err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: lock: %w: %v", domain.ErrStoreWrite, err)
	}

	n, err := countReservations(ctx, tx, res.RoomType, res.Date)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: count: %w: %v", domain.ErrStoreRead, err)
	}
	if n >= capacity {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: %w", domain.ErrNoAvailability)
	}

	const insertQ = `
		INSERT INTO reservations (id, guest_name, room_type, room_type_key, stay_date, email, phone, guests, created_at)
		VALUES (@id, @guest_name, @room_type, @room_type_key, @stay_date, @email, @phone, @guests, @created_at)
		RETURNING id, guest_name, room_type, stay_date, email, phone, guests, created_at`

	args := pgx.NamedArgs{
		"id":            res.ID,
		"guest_name":    res.GuestName,
		"room_type":     res.RoomType,
		"room_type_key": key,
		"stay_date":     res.Date,
		"email":         res.Email,
		"phone":         res.Phone,
		"guests":        res.Guests,
		"created_at":    res.CreatedAt.Time,
	}
	stored, err := scanReservation(tx.QueryRow(ctx, insertQ, args))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: insert: %w: %v", domain.ErrStoreWrite, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Reserve: commit: %w: %v", domain.ErrStoreWrite, err)
	}
	return stored, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countReservations(ctx context.Context, q queryRower, roomType, date string) (int, error) {
	const countQ = `
		SELECT count(*)
		FROM reservations
		WHERE room_type_key = @room_type_key
		  AND stay_date     = @stay_date`

	var n int
	err := q.QueryRow(ctx, countQ, pgx.NamedArgs{
		"room_type_key": domain.RoomTypeKey(roomType),
		"stay_date":     date,
	}).Scan(&n)
	return n, err
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanReservation
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanReservation maps a single database row into a domain.Reservation.
// stay_date is rendered back into YYYY-MM-DD and created_at into UTC.
func scanReservation(s scanner) (domain.Reservation, error) {
	var (
		res      domain.Reservation
		stayDate pgtype.Date
		created  pgtype.Timestamptz
	)
	err := s.Scan(&res.ID, &res.GuestName, &res.RoomType, &stayDate, &res.Email, &res.Phone, &res.Guests, &created)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Date = stayDate.Time.Format(domain.DateLayout)
	res.CreatedAt = domain.NewTimestamp(created.Time)
	return res, nil
}
