package model

import (
	"encoding/json"
	"time"
)

// ClassStatus enumerates class lifecycle states.
type ClassStatus string

const (
	ClassStatusActive   ClassStatus = "active"
	ClassStatusInactive ClassStatus = "inactive"
	ClassStatusArchived ClassStatus = "archived"
)

// ClassStatuses lists every valid status in declaration order.
var ClassStatuses = []string{
	string(ClassStatusActive),
	string(ClassStatusInactive),
	string(ClassStatusArchived),
}

// Valid reports whether s is a known status.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassStatusActive, ClassStatusInactive, ClassStatusArchived:
		return true
	}
	return false
}

// DefaultClassCapacity is used when a create request omits capacity.
const DefaultClassCapacity = 50

// Class is a teaching group of a subject led by one teacher.
type Class struct {
	ID             int               `json:"id"`
	SubjectID      int               `json:"subjectId"`
	TeacherID      string            `json:"teacherId"`
	InviteCode     string            `json:"inviteCode"`
	Name           string            `json:"name"`
	BannerCldPubID *string           `json:"bannerCldPubId"`
	BannerURL      *string           `json:"bannerUrl"`
	Description    *string           `json:"description"`
	Capacity       int               `json:"capacity"`
	Status         ClassStatus       `json:"status"`
	Schedules      []json.RawMessage `json:"schedules"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ClassListItem embeds the class's subject and teacher.
type ClassListItem struct {
	Class
	Subject *SubjectRef `json:"subject"`
	Teacher *UserRef    `json:"teacher"`
}

// ClassDetail additionally embeds the subject's department.
type ClassDetail struct {
	Class
	Subject    *SubjectRef    `json:"subject"`
	Department *DepartmentRef `json:"department"`
	Teacher    *UserRef       `json:"teacher"`
}

// ClassRef is the class embedded in enrollment rows.
type ClassRef struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode"`
}

// CreateClassRequest is the payload for creating a class. Invite code and
// schedules are always assigned by the server.
type CreateClassRequest struct {
	Name           string      `json:"name" binding:"required,max=255"`
	SubjectID      int         `json:"subjectId" binding:"required,gt=0"`
	TeacherID      string      `json:"teacherId" binding:"required,max=255"`
	Capacity       *int        `json:"capacity" binding:"omitempty,gt=0,lte=10000"`
	Status         ClassStatus `json:"status" binding:"omitempty,class_status"`
	Description    *string     `json:"description" binding:"omitempty,max=5000"`
	BannerURL      *string     `json:"bannerUrl" binding:"omitempty,url"`
	BannerCldPubID *string     `json:"bannerCldPubId" binding:"omitempty,max=255"`
}
