package models

import "time"

// Assignment is a task a teacher posts for a class.
type Assignment struct {
	ID              string    `json:"_id" db:"id"`
	ClassID         string    `json:"classId" db:"class_id"`
	TeacherEmail    string    `json:"teacherEmail" db:"teacher_email"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Deadline        time.Time `json:"deadline" db:"deadline"`
	SubmissionCount int       `json:"submissionCount" db:"submission_count"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Submission is a student's answer to an assignment.
type Submission struct {
	ID             string    `json:"_id" db:"id"`
	AssignmentID   string    `json:"assignmentId" db:"assignment_id"`
	ClassID        string    `json:"classId" db:"class_id"`
	StudentEmail   string    `json:"studentEmail" db:"student_email"`
	SubmissionLink string    `json:"submissionLink" db:"submission_link"`
	SubmittedAt    time.Time `json:"submittedAt" db:"submitted_at"`
}
