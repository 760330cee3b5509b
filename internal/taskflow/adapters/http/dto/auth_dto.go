// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse - публичное представление пользователя.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AuthResponse возвращается после регистрации и входа.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileResponse возвращается обработчиком текущего пользователя.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// NewAuthResponse собирает ответ с токеном.
func NewAuthResponse(result *services.AuthResult) AuthResponse {
	return AuthResponse{
		Token: result.Token,
		User: UserResponse{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Email: result.User.Email,
		},
	}
}

// NewProfileResponse собирает профиль с датой создания.
func NewProfileResponse(user *entities.User) ProfileResponse {
	resp := ProfileResponse{User: UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}}
	if !user.CreatedAt.IsZero() {
		createdAt := user.CreatedAt
		resp.User.CreatedAt = &createdAt
	}
	return resp
}
