package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	assert.True(t, IsDuplicateConstraintError(dup, "users_pkey"))
	assert.True(t, IsDuplicateConstraintError(dup, ""))
	assert.False(t, IsDuplicateConstraintError(dup, "enrollments_class_student_key"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), ""))
}

func TestCodeClassifiers(t *testing.T) {
	assert.True(t, IsInvalidRegexError(&pgconn.PgError{Code: "2201B"}))
	assert.False(t, IsInvalidRegexError(&pgconn.PgError{Code: "22P02"}))
	assert.True(t, IsInvalidTextRepresentation(&pgconn.PgError{Code: "22P02"}))
	assert.True(t, IsNoRows(fmt.Errorf("find: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("other")))
}
