package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// ErrSessionNotFound is returned for unknown or expired session tokens.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists sign-in sessions.
type SessionRepository struct {
	db database.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a session and fills its creation time.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO session (id, user_id, token, expires_at, ip_address, user_agent) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		s.ID, s.UserID, s.Token, s.ExpiresAt, s.IPAddress, s.UserAgent,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", database.Classify(err))
	}
	return nil
}

// FindPrincipal resolves a live session token to its user.
func (r *SessionRepository) FindPrincipal(ctx context.Context, token string) (*model.Principal, error) {
	var p model.Principal
	err := r.db.QueryRow(ctx,
		`SELECT session.id, session.expires_at, "user".id, "user".name, "user".email, "user".role::text FROM session JOIN "user" ON "user".id = session.user_id WHERE session.token = $1 AND session.expires_at > now()`,
		token,
	).Scan(&p.SessionID, &p.ExpiresAt, &p.UserID, &p.Name, &p.Email, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &p, nil
}

// Delete removes the session with token. Unknown tokens are not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM session WHERE token = $1`, token)
	return err
}

// DeleteExpired purges sessions past their expiry and reports how many.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM session WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
