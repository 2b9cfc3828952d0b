package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	unique := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "enrollments_student_class_unique"}
	fk := &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "subjects_department_id_fkey"}
	other := &pgconn.PgError{Code: "42P01"}
	plain := errors.New("boom")

	t.Run("unique", func(t *testing.T) {
		err := Classify(fmt.Errorf("insert: %w", unique))
		assert.ErrorIs(t, err, ErrUniqueViolation)
		assert.NotErrorIs(t, err, ErrForeignKeyViolation)
		assert.Equal(t, "enrollments_student_class_unique", ConstraintName(err))
	})

	t.Run("foreign key", func(t *testing.T) {
		err := Classify(fk)
		assert.ErrorIs(t, err, ErrForeignKeyViolation)
		assert.Equal(t, "subjects_department_id_fkey", ConstraintName(err))
		var pgErr *pgconn.PgError
		assert.True(t, errors.As(err, &pgErr))
	})

	t.Run("passthrough", func(t *testing.T) {
		assert.Same(t, other, Classify(other))
		assert.Equal(t, plain, Classify(plain))
		assert.NoError(t, Classify(nil))
		assert.Empty(t, ConstraintName(plain))
	})
}
