package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)

	fkErr := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "fk_venues_events"}
	assert.ErrorIs(t, translate(fkErr), ErrReferenced)

	uniqueErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "ux_bookings_venue_date"}
	assert.ErrorIs(t, translate(uniqueErr), ErrDuplicateBooking)

	// Wrapped driver errors still translate.
	wrapped := fmt.Errorf("insert booking: %w", uniqueErr)
	assert.ErrorIs(t, translate(wrapped), ErrDuplicateBooking)

	// Anything else passes through untouched.
	plain := errors.New("connection reset")
	assert.Equal(t, plain, translate(plain))

	other := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(other), translate(other))
}
