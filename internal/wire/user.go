package wire

import (
	"time"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromUser(u models.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (u User) Model() models.User {
	return models.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserPatch struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

func FromUserUpdate(u models.UserUpdate) UserPatch {
	return UserPatch{
		Email:    clonePtr(u.Email),
		Name:     clonePtr(u.Name),
		Password: clonePtr(u.Password),
	}
}

func (p UserPatch) Update() models.UserUpdate {
	return models.UserUpdate{
		Email:    clonePtr(p.Email),
		Name:     clonePtr(p.Name),
		Password: clonePtr(p.Password),
	}
}
