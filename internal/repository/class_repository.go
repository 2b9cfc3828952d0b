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

// ConstraintClassInviteCode is the unique constraint on classes.invite_code.
const ConstraintClassInviteCode = "classes_invite_code_unique"

// ErrInviteCodeTaken is returned when a generated invite code collides.
var ErrInviteCodeTaken = errors.New("invite code already in use")

var classColumns = []string{
	"classes.id", "classes.subject_id", "classes.teacher_id", "classes.invite_code", "classes.name",
	"classes.banner_cld_pub_id", "classes.banner_url", "classes.description", "classes.capacity",
	"classes.status::text", "classes.schedules", "classes.created_at", "classes.updated_at",
}

var (
	subjectRefColumns = refColumns("subjects", "id", "code", "name")
	teacherRefColumns = refColumns("teacher", "id", "name", "email", "image")
)

var (
	joinClassSubject = listing.Join{Table: "subjects", On: "classes.subject_id = subjects.id"}
	joinClassTeacher = listing.Join{Table: `"user"`, Alias: "teacher", On: "classes.teacher_id = teacher.id"}
)

func classDest(c *model.Class) []any {
	return []any{
		&c.ID, &c.SubjectID, &c.TeacherID, &c.InviteCode, &c.Name,
		&c.BannerCldPubID, &c.BannerURL, &c.Description, &c.Capacity,
		&c.Status, &c.Schedules, &c.CreatedAt, &c.UpdatedAt,
	}
}

var classFilters = []listing.Filter{
	{Param: "subject", Column: "subjects.name", Kind: listing.Contains},
	{Param: "teacher", Column: "teacher.name", Kind: listing.Contains},
	{Param: "status", Column: "classes.status::text", Kind: listing.Enum, Values: model.ClassStatuses},
}

var classTable = &listing.Table[model.ClassListItem]{
	Name:    "classes",
	Columns: slices.Concat(classColumns, subjectRefColumns, teacherRefColumns),
	Joins:   []listing.Join{joinClassSubject, joinClassTeacher},
	Search:  []string{"classes.name", "classes.invite_code"},
	Filters: classFilters,
	Scan: func(row pgx.Row) (model.ClassListItem, error) {
		var c model.ClassListItem
		var subject subjectRefCols
		var teacher userRefCols
		err := row.Scan(slices.Concat(classDest(&c.Class), subject.dest(), teacher.dest())...)
		c.Subject = subject.ref()
		c.Teacher = teacher.ref()
		return c, err
	},
}

// classDetailTable reaches the department through the class's subject.
var classDetailTable = &listing.Table[model.ClassDetail]{
	Name:    "classes",
	Columns: slices.Concat(classColumns, subjectRefColumns, refColumns("departments", "id", "code", "name"), teacherRefColumns),
	Joins: []listing.Join{
		joinClassSubject,
		{Table: "departments", On: "subjects.department_id = departments.id"},
		joinClassTeacher,
	},
	Scan: func(row pgx.Row) (model.ClassDetail, error) {
		var c model.ClassDetail
		var subject subjectRefCols
		var dept departmentRefCols
		var teacher userRefCols
		err := row.Scan(slices.Concat(classDest(&c.Class), subject.dest(), dept.dest(), teacher.dest())...)
		c.Subject = subject.ref()
		c.Department = dept.ref()
		c.Teacher = teacher.ref()
		return c, err
	},
}

// ClassRepository handles class data access.
type ClassRepository struct {
	db database.DB
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db database.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ParseListParams validates listing query values for classes.
func (r *ClassRepository) ParseListParams(values url.Values) (listing.Params, error) {
	return classTable.Parse(values)
}

// List returns one page of classes with subject and teacher.
func (r *ClassRepository) List(ctx context.Context, params listing.Params) (*listing.Page[model.ClassListItem], error) {
	return classTable.List(ctx, r.db, params)
}

// GetByID returns the class with subject, department and teacher, or
// listing.ErrNotFound.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.ClassDetail, error) {
	c, err := classDetailTable.Get(ctx, r.db, "classes.id", id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a class with an empty schedule list and returns its id.
// A collision on the invite code yields ErrInviteCodeTaken.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO classes (subject_id, teacher_id, invite_code, name, banner_cld_pub_id, banner_url, description, capacity, status, schedules) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '[]'::jsonb) RETURNING id`,
		c.SubjectID, c.TeacherID, c.InviteCode, c.Name, c.BannerCldPubID, c.BannerURL, c.Description, c.Capacity, string(c.Status),
	).Scan(&id)
	if err != nil {
		err = database.Classify(err)
		if database.ConstraintName(err) == ConstraintClassInviteCode {
			return 0, ErrInviteCodeTaken
		}
		return 0, fmt.Errorf("insert class: %w", err)
	}
	return id, nil
}

// Delete removes a class and, by cascade, its enrollments.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "classes", id)
}
