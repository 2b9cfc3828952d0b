package repository

import "github.com/classroom-hub/classroom-backend/internal/model"

// Related rows arrive through LEFT JOINs, so every embedded column is
// nullable. A ref is present only when its key column is non-null.

type departmentRefCols struct {
	ID   *int
	Code *string
	Name *string
}

func (c *departmentRefCols) dest() []any { return []any{&c.ID, &c.Code, &c.Name} }

func (c *departmentRefCols) ref() *model.DepartmentRef {
	if c.ID == nil {
		return nil
	}
	return &model.DepartmentRef{ID: *c.ID, Code: deref(c.Code), Name: deref(c.Name)}
}

type subjectRefCols struct {
	ID   *int
	Code *string
	Name *string
}

func (c *subjectRefCols) dest() []any { return []any{&c.ID, &c.Code, &c.Name} }

func (c *subjectRefCols) ref() *model.SubjectRef {
	if c.ID == nil {
		return nil
	}
	return &model.SubjectRef{ID: *c.ID, Code: deref(c.Code), Name: deref(c.Name)}
}

type userRefCols struct {
	ID    *string
	Name  *string
	Email *string
	Image *string
}

func (c *userRefCols) dest() []any { return []any{&c.ID, &c.Name, &c.Email, &c.Image} }

func (c *userRefCols) ref() *model.UserRef {
	if c.ID == nil {
		return nil
	}
	return &model.UserRef{ID: *c.ID, Name: deref(c.Name), Email: deref(c.Email), Image: c.Image}
}

type classRefCols struct {
	ID         *int
	Name       *string
	InviteCode *string
}

func (c *classRefCols) dest() []any { return []any{&c.ID, &c.Name, &c.InviteCode} }

func (c *classRefCols) ref() *model.ClassRef {
	if c.ID == nil {
		return nil
	}
	return &model.ClassRef{ID: *c.ID, Name: deref(c.Name), InviteCode: deref(c.InviteCode)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// refColumns renders the select list for an embedded ref under alias.
func refColumns(alias string, cols ...string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
