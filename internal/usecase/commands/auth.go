package commands

import (
	"context"

	"driveshare/internal/domain/user"
	reqdto "driveshare/internal/handler/dto/request"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/pkg/jwt"
	"driveshare/internal/pkg/password"
	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errs.New("user not found")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is inactive")
	ErrEmailTaken         = errs.New("email is already registered")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type UserReadStore interface {
	FindViewByEmail(ctx context.Context, email string) (*queries.UserView, string, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error)
}

type LoginResult struct {
	AccessToken string
	User        *queries.UserView
}

// TokenValidator is the slice of AuthCommands the auth middleware needs.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type AuthCommands interface {
	TokenValidator
	Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.UserView, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.UserView, error)
}

type authCommandsImpl struct {
	tx       *db.TxManager
	userRepo UserRepository
	users    UserReadStore
	jwt      *jwt.Service
}

func NewAuthCommands(tx *db.TxManager, userRepo UserRepository, users UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{tx: tx, userRepo: userRepo, users: users, jwt: jwtService}
}

// Register creates a renter or owner account. Admins are seeded, never
// self-registered.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.UserView, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	role, err := user.NewRole(req.Role)
	if err != nil || role == user.RoleAdmin {
		return nil, errs.Mark(user.ErrInvalidRole, ErrDomainValidation)
	}
	if _, err := user.NewPassword(req.Password); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	entity := user.NewUser(email, hash, role)

	var id uuid.UUID
	err = a.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		created, err := a.userRepo.Create(ctx, tx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.users.FindViewByID(ctx, id)
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	view, hash, err := a.users.FindViewByEmail(ctx, req.Email)
	if err != nil {
		// Same outcome as a wrong password so callers cannot enumerate users.
		return nil, ErrInvalidCredentials
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(hash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	token, err := a.jwt.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{AccessToken: token, User: view}, nil
}

func (a *authCommandsImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.UserView, error) {
	view, err := a.users.FindViewByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	return view, nil
}

func (a *authCommandsImpl) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrTokenValidation)
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrTokenValidation)
	}
	return claims.UserID, role, nil
}
