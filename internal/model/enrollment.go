package model

import "time"

// Enrollment links a student to a class. A pair is unique.
type Enrollment struct {
	ID        int       `json:"id"`
	StudentID string    `json:"studentId"`
	ClassID   int       `json:"classId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnrollmentListItem embeds the student, the class and the class's subject.
type EnrollmentListItem struct {
	Enrollment
	Student *UserRef    `json:"student"`
	Class   *ClassRef   `json:"class"`
	Subject *SubjectRef `json:"subject"`
}

// CreateEnrollmentRequest enrolls a student in a class. StudentID is ignored
// for student principals, who always enroll themselves.
type CreateEnrollmentRequest struct {
	ClassID   int    `json:"classId" binding:"required,gt=0"`
	StudentID string `json:"studentId" binding:"omitempty,max=255"`
}
