package dto

import (
	"time"

	"github.com/yigit/mentorium/internal/app/models"
)

// CreateClassRequest is the body of POST /addClass. The instructor email always comes from
// the verified token.
type CreateClassRequest struct {
	Title          string   `json:"title" binding:"required" example:"Algebra Basics"`
	Description    string   `json:"description" example:"Linear equations from scratch"`
	Image          string   `json:"image" example:"https://i.ibb.co/algebra.png"`
	Category       string   `json:"category" example:"Mathematics"`
	Price          *float64 `json:"price" binding:"required,gte=0" example:"20"`
	AvailableSeats *int     `json:"availableSeats" binding:"omitempty,gte=0" example:"30"`
	Name           string   `json:"name" example:"Jane Doe"`
}

// UpdateClassRequest is the body of PATCH /my-classes/:id. Only present fields change.
type UpdateClassRequest struct {
	Title          *string  `json:"title" binding:"omitempty,min=1"`
	Description    *string  `json:"description"`
	Image          *string  `json:"image"`
	Category       *string  `json:"category"`
	Price          *float64 `json:"price" binding:"omitempty,gte=0"`
	AvailableSeats *int     `json:"availableSeats" binding:"omitempty,gte=0"`
	Name           *string  `json:"name"`
}

// ToPatch converts the request into a store patch.
func (r UpdateClassRequest) ToPatch() models.ClassPatch {
	return models.ClassPatch{
		Title:          r.Title,
		Description:    r.Description,
		Image:          r.Image,
		Category:       r.Category,
		Price:          r.Price,
		AvailableSeats: r.AvailableSeats,
		InstructorName: r.Name,
	}
}

// ClassStatusRequest is the body of PATCH /admin/class-status/:id.
type ClassStatusRequest struct {
	Status models.ClassStatus `json:"status" binding:"required" example:"approved"`
}

// InstructorApplication is the subset of the teacher application shown on class pages.
type InstructorApplication struct {
	Experience string `json:"experience" example:"5 years"`
}

// InstructorInfo describes the owner of a class.
type InstructorInfo struct {
	Name               string                `json:"name"`
	Email              string                `json:"email"`
	Photo              string                `json:"photo"`
	TeacherApplication InstructorApplication `json:"teacherApplication"`
}

// ClassDetailResponse is returned by GET /class/:id.
type ClassDetailResponse struct {
	models.Class
	Category   string         `json:"category" example:"General"`
	Instructor InstructorInfo `json:"instructor"`
}

// EnrolledClassResponse is a class annotated with the caller's enrollment facts.
type EnrolledClassResponse struct {
	models.Class
	EnrollmentDate *time.Time `json:"enrollmentDate"`
	TransactionID  *string    `json:"transactionId"`
	AmountPaid     *string    `json:"amountPaid"`
}
