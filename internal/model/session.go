package model

import "time"

// CredentialProvider is the account provider id for email/password sign-in.
const CredentialProvider = "credential"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Session is a persisted sign-in.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IPAddress *string   `json:"ipAddress"`
	UserAgent *string   `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential is the password account used to verify a sign-in.
type Credential struct {
	User         User
	PasswordHash string
}

// SignUpRequest is the payload for email registration.
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     Role   `json:"role" binding:"omitempty,oneof=student teacher"`
}

// SignInRequest is the payload for email sign-in.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// SessionResponse is returned after sign-in and by the session lookup.
type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}
