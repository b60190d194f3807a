package models

import "time"

// DefaultAvailableSeats is the effectively unbounded seat count given to new classes.
const DefaultAvailableSeats = 999999

// Class is a course offering created by a teacher and moderated by admins.
type Class struct {
	ID              string      `json:"_id" db:"id" example:"6f1c1d2e-8a43-4d55-9d55-0d0b5f8c2a11"`
	Title           string      `json:"title" db:"title" example:"Algebra Basics"`
	Description     string      `json:"description" db:"description"`
	Image           string      `json:"image" db:"image"`
	Category        string      `json:"category,omitempty" db:"category"`
	Price           float64     `json:"price" db:"price" example:"20"`
	AvailableSeats  int         `json:"availableSeats" db:"available_seats"`
	TotalEnrolled   int         `json:"totalEnrolled" db:"total_enrolled"`
	AssignmentCount int         `json:"assignmentCount" db:"assignment_count"`
	Status          ClassStatus `json:"status" db:"status" example:"pending"`
	InstructorName  string      `json:"name" db:"instructor_name"`
	InstructorEmail string      `json:"email" db:"instructor_email"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// ClassPatch carries the owner-editable fields of a class. Nil fields are left unchanged.
type ClassPatch struct {
	Title          *string
	Description    *string
	Image          *string
	Category       *string
	Price          *float64
	AvailableSeats *int
	InstructorName *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ClassPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.Category == nil &&
		p.Price == nil && p.AvailableSeats == nil && p.InstructorName == nil
}
