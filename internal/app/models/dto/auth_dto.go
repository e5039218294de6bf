package dto

import "github.com/studenthub/backend/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request.
// Admin accounts are not self-registerable; they come from seeding.
type RegisterRequest struct {
	Name       string          `json:"name" binding:"required,min=2,max=100"`
	Email      string          `json:"email" binding:"required,email"`
	Password   string          `json:"password" binding:"required,min=8"`
	Role       models.RoleType `json:"role" binding:"omitempty,oneof=student faculty"`
	StudentID  string          `json:"studentId"`
	Department string          `json:"department"`
	Year       *int            `json:"year" binding:"omitempty,min=1,max=4"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// UserResponse represents user information returned to clients
type UserResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       models.RoleType `json:"role"`
	StudentID  *string         `json:"studentId,omitempty"`
	Department *string         `json:"department,omitempty"`
	Year       *int            `json:"year,omitempty"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		StudentID:  u.StudentID,
		Department: u.Department,
		Year:       u.Year,
	}
}
