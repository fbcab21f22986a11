package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "profiles_email_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "profiles_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "courses_access_code_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("plain error"), "profiles_email_key"))
	assert.False(t, IsDuplicateConstraintError(nil, "profiles_email_key"))

	// wrapped errors still match
	wrapped := fmt.Errorf("error creating profile: %w", dup)
	assert.True(t, IsDuplicateConstraintError(wrapped, "profiles_email_key"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("nope")))
}
