package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFilter_NumbersPlaceholders(t *testing.T) {
	f := &filter{}
	f.add("product_id = $%d", "p1")
	f.raw("on_hand = 0")
	f.add("location_id = $%d", "l1")
	page := f.page(50, 100)

	assert.Equal(t, " WHERE product_id = $1 AND on_hand = 0 AND location_id = $2", f.where())
	assert.Equal(t, " LIMIT $3 OFFSET $4", page)
	assert.Equal(t, []any{"p1", "l1", 50, 100}, f.args)
}

func TestFilter_EmptyAndNoLimit(t *testing.T) {
	f := &filter{}
	assert.Empty(t, f.where())
	assert.Empty(t, f.page(0, 10))
	assert.Empty(t, f.args)
}

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: referenceConstraint})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514", ConstraintName: "stock_balances_on_hand_check"}

	assert.True(t, isUniqueViolation(unique))
	name, code := violatedConstraint(unique)
	assert.Equal(t, referenceConstraint, name)
	assert.Equal(t, "23505", code)

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(check))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("loc-1")
	if assert.NotNil(t, v) {
		assert.Equal(t, "loc-1", *v)
	}
}
