package readstore

import (
	"context"

	"driveshare/internal/infra"
	"driveshare/internal/infra/db"
	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const findUserViewByEmailSQL = `
SELECT id, email, password_hash, role, is_active, created_at, updated_at
FROM users
WHERE email = $1`

// FindViewByEmail returns the user view plus the stored password hash, which
// never leaves the auth command that compares it.
func (r *UserReadStore) FindViewByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	var (
		view queries.UserView
		hash string
	)
	err := r.db.QueryRow(ctx, findUserViewByEmailSQL, email).Scan(
		&view.ID, &view.Email, &hash, &view.Role, &view.IsActive,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}

const findUserViewByIDSQL = `
SELECT id, email, role, is_active, created_at, updated_at
FROM users
WHERE id = $1`

func (r *UserReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := r.db.QueryRow(ctx, findUserViewByIDSQL, id).Scan(
		&view.ID, &view.Email, &view.Role, &view.IsActive,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}
