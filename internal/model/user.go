package model

import "time"

// Role enumerates user roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role in declaration order.
var Roles = []string{string(RoleStudent), string(RoleTeacher), string(RoleAdmin)}

// User is an account holder of any role.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image"`
	ImageCldPubID *string   `json:"imageCldPubId"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserRef is the user embedded in class (teacher) and enrollment (student) rows.
type UserRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
}
