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

var departmentColumns = refColumns("departments",
	"id", "code", "name", "description", "created_at", "updated_at")

var departmentTable = &listing.Table[model.DepartmentListItem]{
	Name: "departments",
	Columns: slices.Concat(departmentColumns, []string{
		"(SELECT count(*) FROM subjects WHERE subjects.department_id = departments.id)",
	}),
	Search: []string{"departments.name", "departments.code"},
	Scan: func(row pgx.Row) (model.DepartmentListItem, error) {
		var d model.DepartmentListItem
		err := row.Scan(&d.ID, &d.Code, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.TotalSubjects)
		return d, err
	},
}

// DepartmentRepository handles department data access.
type DepartmentRepository struct {
	db database.DB
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(db database.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// ParseListParams validates listing query values for departments.
func (r *DepartmentRepository) ParseListParams(values url.Values) (listing.Params, error) {
	return departmentTable.Parse(values)
}

// List returns one page of departments with their subject totals.
func (r *DepartmentRepository) List(ctx context.Context, params listing.Params) (*listing.Page[model.DepartmentListItem], error) {
	return departmentTable.List(ctx, r.db, params)
}

// GetByID returns listing.ErrNotFound when the department does not exist.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int) (*model.DepartmentListItem, error) {
	d, err := departmentTable.Get(ctx, r.db, "departments.id", id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a department and returns its id.
func (r *DepartmentRepository) Create(ctx context.Context, req *model.CreateDepartmentRequest) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (code, name, description) VALUES ($1, $2, $3) RETURNING id`,
		req.Code, req.Name, req.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert department: %w", database.Classify(err))
	}
	return id, nil
}

// Delete removes a department. It fails with a foreign key violation while
// any subject still references it.
func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "departments", id)
}

func deleteByID(ctx context.Context, db database.Querier, table string, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, database.Classify(err))
	}
	if tag.RowsAffected() == 0 {
		return listing.ErrNotFound
	}
	return nil
}
