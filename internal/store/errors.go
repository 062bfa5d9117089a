package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means no row with the given id exists.
	ErrNotFound = errors.New("store: record not found")
	// ErrVersionMismatch means the row changed since it was read; the write
	// was based on stale state and has not been applied.
	ErrVersionMismatch = errors.New("store: row version mismatch")
	// ErrReferenced means a delete was rejected because child rows still
	// reference the row.
	ErrReferenced = errors.New("store: row still referenced")
	// ErrDuplicateBooking means the (venue_id, booking_date) unique index
	// rejected a booking write.
	ErrDuplicateBooking = errors.New("store: venue already booked for date")
)

// Postgres error codes worth distinguishing at the domain level.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrReferenced
		case pgUniqueViolation:
			return ErrDuplicateBooking
		}
	}
	return err
}
