package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classroom-hub/classroom-backend/internal/config"
	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Claims is the signed form of a session token. The JWT ID is the session
// token stored in the session table.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// SignInMeta is request information recorded with a new session.
type SignInMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService issues and resolves sessions for email/password accounts.
type AuthService struct {
	cfg         *config.Config
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	cache       SessionCache
	log         zerolog.Logger
	now         func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	cache SessionCache,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		log:         log.With().Str("component", "auth_service").Logger(),
		now:         time.Now,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SignUp registers a user with a credential account. Role defaults to student.
func (s *AuthService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Role:  req.Role,
	}
	if u.Role == "" {
		u.Role = model.RoleStudent
	}

	if err := s.userRepo.CreateWithPassword(ctx, u, hash); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("User signed up")
	return u, nil
}

// SignIn verifies credentials and opens a session.
func (s *AuthService) SignIn(ctx context.Context, req *model.SignInRequest, meta SignInMeta) (*model.SessionResponse, error) {
	cred, err := s.userRepo.GetCredentialByEmail(ctx, req.Email)
	if errors.Is(err, listing.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.CheckPassword(cred.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	now := s.now()
	sess := &model.Session{
		ID:        uuid.NewString(),
		UserID:    cred.User.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.cfg.SessionExpiry),
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}

	signed, err := s.sign(newClaims(sess.Token, cred.User.ID, cred.User.Role, now, sess.ExpiresAt))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", cred.User.ID).Msg("User signed in")
	return &model.SessionResponse{Token: signed, ExpiresAt: sess.ExpiresAt, User: cred.User}, nil
}

func newClaims(sessionToken, userID string, role model.Role, issuedAt, expiresAt time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionToken,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}
}

func (s *AuthService) sign(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AuthSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed session token and returns its claims.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.AuthSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Authenticate resolves a signed token to the principal of a live session.
// The cache is consulted first; a miss falls back to the session table.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*model.Principal, error) {
	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	if p, err := s.cache.Get(ctx, claims.ID); err != nil {
		s.log.Warn().Err(err).Msg("Session cache read failed")
	} else if p != nil {
		return p, nil
	}

	p, err := s.sessionRepo.FindPrincipal(ctx, claims.ID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, claims.ID, p, p.ExpiresAt.Sub(s.now())); err != nil {
		s.log.Warn().Err(err).Msg("Session cache write failed")
	}
	return p, nil
}

// CurrentUser loads the full user record of a principal.
func (s *AuthService) CurrentUser(ctx context.Context, p *model.Principal) (*model.User, error) {
	return s.userRepo.GetByID(ctx, p.UserID)
}

// SignOut ends the session behind a signed token.
func (s *AuthService) SignOut(ctx context.Context, tokenStr string) error {
	claims, err := s.ParseToken(tokenStr)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.cache.Delete(ctx, claims.ID); err != nil {
		s.log.Warn().Err(err).Msg("Session cache delete failed")
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
