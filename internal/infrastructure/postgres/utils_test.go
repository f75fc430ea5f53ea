package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/moderna-shop-api/internal/domain"
)

func TestPgErrorPredicates(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(check))
	assert.True(t, isCheckViolation(check))
	assert.True(t, isForeignKeyViolation(fk))
	// El texto del mensaje no cuenta, solo el SQLSTATE.
	assert.False(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"serialization", &pgconn.PgError{Code: "40001"}, domain.ErrConflictDuringCommit},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflictDuringCommit},
		{"timeout", context.DeadlineExceeded, domain.ErrDependencyUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify("op", tc.err)
			assert.ErrorIs(t, got, tc.want)
		})
	}

	assert.NoError(t, classify("op", nil))

	plain := errors.New("syntax error")
	got := classify("op", plain)
	assert.ErrorIs(t, got, plain)
	assert.Equal(t, "INTERNAL", domain.Kind(got))
}
