package models

import "time"

// Feedback is a student's rating of a class.
type Feedback struct {
	ID              string    `json:"_id" db:"id"`
	ClassID         string    `json:"classId" db:"class_id"`
	ClassName       string    `json:"className" db:"class_name"`
	InstructorEmail string    `json:"instructorEmail" db:"instructor_email"`
	StudentEmail    string    `json:"studentEmail" db:"student_email"`
	Rating          int       `json:"rating" db:"rating"`
	Description     string    `json:"description" db:"description"`
	SubmittedAt     time.Time `json:"submittedAt" db:"submitted_at"`
}
