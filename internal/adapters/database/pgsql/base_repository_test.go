package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	where, args := whereFilter(portsrepo.QueryFilter{}, "location_id", "sold_at", nil)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereFilter(portsrepo.QueryFilter{LocationID: "loc-1", From: &from, To: &to}, "location_id", "sold_at", nil)
	assert.Equal(t, "WHERE location_id = $1 AND sold_at >= $2 AND sold_at < $3", where)
	assert.Equal(t, []any{"loc-1", from, to}, args)

	where, args = whereFilter(portsrepo.QueryFilter{To: &to}, "location_id", "cut_at", []any{"x"})
	assert.Equal(t, "WHERE cut_at < $2", where)
	assert.Len(t, args, 2)
}

func TestMapPgError(t *testing.T) {
	dup := mapPgError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, dup, apperrors.ErrDuplicate)

	conflict := mapPgError(&pgconn.PgError{Code: "40001"})
	assert.ErrorIs(t, conflict, apperrors.ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapPgError(other))
}
