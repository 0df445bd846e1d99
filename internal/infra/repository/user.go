package repository

import (
	"context"
	"time"

	"driveshare/internal/domain/user"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return id, nil
}

const findUserByEmailSQL = `
SELECT id, email, password_hash, role, is_active, created_at, updated_at
FROM users
WHERE email = $1`

func (r *UserRepository) FindByEmail(ctx context.Context, dbtx db.DBTX, email string) (*user.User, error) {
	return r.scanUser(dbtx.QueryRow(ctx, findUserByEmailSQL, email), "failed to find user by email")
}

const findUserByIDSQL = `
SELECT id, email, password_hash, role, is_active, created_at, updated_at
FROM users
WHERE id = $1`

func (r *UserRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*user.User, error) {
	return r.scanUser(dbtx.QueryRow(ctx, findUserByIDSQL, id), "failed to find user by ID")
}

func (r *UserRepository) scanUser(row interface{ Scan(dest ...any) error }, msg string) (*user.User, error) {
	var (
		id           uuid.UUID
		emailValue   string
		passwordHash string
		roleValue    string
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &emailValue, &passwordHash, &roleValue, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}

	email, err := user.NewEmail(emailValue)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid email", err, infra.KindDBFailure)
	}
	role, err := user.NewRole(roleValue)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid role", err, infra.KindDBFailure)
	}

	return user.Reconstruct(id, email, passwordHash, role, isActive, createdAt, updatedAt), nil
}
