package dto

import "github.com/yigit/mentorium/internal/app/models"

// CreateUserRequest registers a user after they sign in with the identity provider.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required" example:"Jane Doe"`
	Email string `json:"email" binding:"required,email" example:"jane@mentorium.dev"`
	Photo string `json:"photo" example:"https://i.ibb.co/photo.png"`
}

// TeacherApplicationRequest is the body of PATCH /users/:email.
type TeacherApplicationRequest struct {
	Name       string `json:"name" example:"Jane Doe"`
	Experience string `json:"experience" example:"5 years"`
	Title      string `json:"title" example:"Math Tutor"`
	Category   string `json:"category" example:"Mathematics"`
}

// RoleResponse is returned by GET /users/:email/role.
type RoleResponse struct {
	Role models.RoleType `json:"role" example:"student"`
}

// UserSearchQuery holds the query string of GET /allUsers.
type UserSearchQuery struct {
	Search string `form:"search"`
}
