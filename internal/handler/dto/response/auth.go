package response

import (
	"time"

	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func NewUserResponse(view *queries.UserView) UserResponse {
	return UserResponse{
		ID:        view.ID,
		Email:     view.Email,
		Role:      view.Role,
		IsActive:  view.IsActive,
		CreatedAt: view.CreatedAt,
	}
}
