package mapper

import (
	"time"

	"shelfcloud/internal/api/dto/v1/auth"

	"github.com/google/uuid"
)

// User represents the domain model for accounts
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain User to a UserResponse DTO
func ToUserResponse(u *User) auth.UserResponse {
	return auth.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
