package dto

import (
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// RegisterRequest defines the data needed to create a login.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,alphanum"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"` // bcrypt ignores bytes past 72
}

// LoginRequest defines the credentials of a login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
