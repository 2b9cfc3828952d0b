package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// ConstraintEnrollmentPair is the unique constraint on (student_id, class_id).
const ConstraintEnrollmentPair = "enrollments_student_class_unique"

// ErrDuplicateEnrollment is returned when the student is already enrolled.
var ErrDuplicateEnrollment = errors.New("student already enrolled in class")

var enrollmentTable = &listing.Table[model.EnrollmentListItem]{
	Name: "enrollments",
	Columns: slices.Concat(
		refColumns("enrollments", "id", "student_id", "class_id", "created_at", "updated_at"),
		refColumns("student", "id", "name", "email", "image"),
		refColumns("classes", "id", "name", "invite_code"),
		subjectRefColumns,
	),
	Joins: []listing.Join{
		{Table: "classes", On: "enrollments.class_id = classes.id"},
		{Table: `"user"`, Alias: "student", On: "enrollments.student_id = student.id"},
		{Table: "subjects", On: "classes.subject_id = subjects.id"},
	},
	Search: []string{"student.name", "student.email"},
	Filters: []listing.Filter{
		{Param: "class", Column: "classes.name", Kind: listing.Contains},
	},
	Scan: func(row pgx.Row) (model.EnrollmentListItem, error) {
		var e model.EnrollmentListItem
		var student userRefCols
		var class classRefCols
		var subject subjectRefCols
		err := row.Scan(slices.Concat(
			[]any{&e.ID, &e.StudentID, &e.ClassID, &e.CreatedAt, &e.UpdatedAt},
			student.dest(), class.dest(), subject.dest(),
		)...)
		e.Student = student.ref()
		e.Class = class.ref()
		e.Subject = subject.ref()
		return e, err
	},
}

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	db database.DB
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(db database.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ParseListParams validates listing query values for enrollments.
func (r *EnrollmentRepository) ParseListParams(values url.Values) (listing.Params, error) {
	return enrollmentTable.Parse(values)
}

// List returns one page of enrollments. A non-empty studentID restricts the
// page to that student's enrollments.
func (r *EnrollmentRepository) List(ctx context.Context, params listing.Params, studentID string) (*listing.Page[model.EnrollmentListItem], error) {
	var base listing.Predicate
	if studentID != "" {
		base.And("enrollments.student_id = " + base.Bind(studentID))
	}
	return enrollmentTable.ListWhere(ctx, r.db, base, params)
}

// Create enrolls a student. A second enrollment of the same pair fails with
// ErrDuplicateEnrollment and leaves the table unchanged.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID string, classID int) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, class_id) VALUES ($1, $2) RETURNING id`,
		studentID, classID,
	).Scan(&id)
	if err != nil {
		err = database.Classify(err)
		if database.ConstraintName(err) == ConstraintEnrollmentPair {
			return 0, fmt.Errorf("%w: %w", ErrDuplicateEnrollment, err)
		}
		return 0, fmt.Errorf("insert enrollment: %w", err)
	}
	return id, nil
}
