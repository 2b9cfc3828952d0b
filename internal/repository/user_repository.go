package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/classroom-hub/classroom-backend/internal/database"
	"github.com/classroom-hub/classroom-backend/internal/listing"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConstraintUserEmail is the unique constraint on "user".email.
const ConstraintUserEmail = "user_email_unique"

// ErrEmailTaken is returned when signing up with a registered email.
var ErrEmailTaken = errors.New("email already registered")

const userColumnList = `"user".id, "user".name, "user".email, "user".email_verified, "user".image, "user".image_cld_pub_id, "user".role::text, "user".created_at, "user".updated_at`

func userDest(u *model.User) []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.EmailVerified, &u.Image, &u.ImageCldPubID, &u.Role, &u.CreatedAt, &u.UpdatedAt}
}

var userTable = &listing.Table[model.User]{
	Name:    `"user"`,
	Columns: []string{userColumnList},
	Search:  []string{`"user".name`, `"user".email`},
	Filters: []listing.Filter{
		{Param: "role", Column: `"user".role::text`, Kind: listing.Enum, Values: model.Roles},
	},
	Scan: func(row pgx.Row) (model.User, error) {
		var u model.User
		err := row.Scan(userDest(&u)...)
		return u, err
	},
}

// UserRepository handles user and credential account data access.
type UserRepository struct {
	db database.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ParseListParams validates listing query values for users.
func (r *UserRepository) ParseListParams(values url.Values) (listing.Params, error) {
	return userTable.Parse(values)
}

// List returns one page of users.
func (r *UserRepository) List(ctx context.Context, params listing.Params) (*listing.Page[model.User], error) {
	return userTable.List(ctx, r.db, params)
}

// GetByID returns listing.ErrNotFound when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := userTable.Get(ctx, r.db, `"user".id`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateWithPassword inserts the user and its credential account in one
// transaction. u.ID is assigned when empty.
func (r *UserRepository) CreateWithPassword(ctx context.Context, u *model.User, passwordHash string) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin user insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO "user" (id, name, email, role) VALUES ($1, $2, $3, $4) RETURNING email_verified, created_at, updated_at`,
		u.ID, u.Name, u.Email, string(u.Role),
	).Scan(&u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		err = database.Classify(err)
		if database.ConstraintName(err) == ConstraintUserEmail {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO account (id, user_id, account_id, provider_id, password) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), u.ID, u.ID, model.CredentialProvider, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", database.Classify(err))
	}

	return tx.Commit(ctx)
}

// GetCredentialByEmail loads a user with its password hash. It returns
// listing.ErrNotFound when no credential account matches.
func (r *UserRepository) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	var c model.Credential
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumnList+`, account.password FROM "user" JOIN account ON account.user_id = "user".id AND account.provider_id = $2 WHERE lower("user".email) = lower($1)`,
		email, model.CredentialProvider,
	).Scan(append(userDest(&c.User), &c.PasswordHash)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, listing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &c, nil
}
