package repository

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

var subjectTable = &listing.Table[model.SubjectListItem]{
	Name: "subjects",
	Columns: slices.Concat(
		refColumns("subjects", "id", "code", "department_id", "name", "description", "created_at", "updated_at"),
		refColumns("departments", "id", "code", "name"),
	),
	Joins: []listing.Join{
		{Table: "departments", On: "subjects.department_id = departments.id"},
	},
	Search: []string{"subjects.name", "subjects.code"},
	Filters: []listing.Filter{
		{Param: "department", Column: "departments.name", Kind: listing.Contains},
	},
	Scan: func(row pgx.Row) (model.SubjectListItem, error) {
		var s model.SubjectListItem
		var dept departmentRefCols
		err := row.Scan(slices.Concat(
			[]any{&s.ID, &s.Code, &s.DepartmentID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt},
			dept.dest(),
		)...)
		s.Department = dept.ref()
		return s, err
	},
}

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	db database.DB
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(db database.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ParseListParams validates listing query values for subjects.
func (r *SubjectRepository) ParseListParams(values url.Values) (listing.Params, error) {
	return subjectTable.Parse(values)
}

// List returns one page of subjects with their departments.
func (r *SubjectRepository) List(ctx context.Context, params listing.Params) (*listing.Page[model.SubjectListItem], error) {
	return subjectTable.List(ctx, r.db, params)
}

// GetByID returns listing.ErrNotFound when the subject does not exist.
func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.SubjectListItem, error) {
	s, err := subjectTable.Get(ctx, r.db, "subjects.id", id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a subject and returns its id.
func (r *SubjectRepository) Create(ctx context.Context, req *model.CreateSubjectRequest) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO subjects (code, name, department_id, description) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Code, req.Name, req.DepartmentID, req.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert subject: %w", database.Classify(err))
	}
	return id, nil
}

// Delete removes a subject along with its classes and their enrollments.
func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "subjects", id)
}
