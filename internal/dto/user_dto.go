package dto

import "quiz-admin/internal/domain"

// CreateUserRequest is the payload for creating a new user account plus its
// profile document.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdateUserRequest updates the mutable profile fields.
type UpdateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UserListResponse carries every user plus the role tallies the user
// management screen shows.
type UserListResponse struct {
	Users        []*domain.User `json:"users"`
	AdminCount   int            `json:"adminCount"`
	StudentCount int            `json:"studentCount"`
}
