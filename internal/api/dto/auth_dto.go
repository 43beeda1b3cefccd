package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Phone       *string `json:"phone" validate:"omitempty,min=5,max=32"`
	Country     string  `json:"country" validate:"max=64"`
	Description string  `json:"description" validate:"max=2000"`
	IsSeller    bool    `json:"isSeller"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account. The password hash never leaves the service.
type UserResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone,omitempty"`
	Country     string      `json:"country,omitempty"`
	Description string      `json:"description,omitempty"`
	IsSeller    bool        `json:"isSeller"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		Country:     u.Country,
		Description: u.Description,
		IsSeller:    u.IsSeller,
		Role:        u.Role(),
		CreatedAt:   u.CreatedAt,
	}
}
