package model

import "time"

// Subject belongs to exactly one department.
type Subject struct {
	ID           int       `json:"id"`
	Code         string    `json:"code"`
	DepartmentID int       `json:"departmentId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SubjectListItem embeds the owning department.
type SubjectListItem struct {
	Subject
	Department *DepartmentRef `json:"department"`
}

// SubjectRef is the subject embedded in class and enrollment rows.
type SubjectRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Code         string  `json:"code" binding:"required,max=50"`
	Name         string  `json:"name" binding:"required,max=255"`
	DepartmentID int     `json:"departmentId" binding:"required,gt=0"`
	Description  *string `json:"description" binding:"omitempty,max=255"`
}
