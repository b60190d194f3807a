package dto

import "github.com/yigit/mentorium/internal/app/models"

// EvaluationRequest is the body of POST /evaluations.
type EvaluationRequest struct {
	ClassID         string `json:"classId" binding:"required"`
	ClassName       string `json:"className" binding:"required" example:"Algebra Basics"`
	InstructorEmail string `json:"instructorEmail" binding:"required,email"`
	Rating          int    `json:"rating" binding:"required" example:"5"`
	Description     string `json:"description" example:"Clear and well paced"`
}

// FeedbackResponse is a feedback joined with the author's display identity.
type FeedbackResponse struct {
	models.Feedback
	StudentName  string `json:"studentName" example:"Anonymous"`
	StudentPhoto string `json:"studentPhoto"`
}

// StatsResponse holds the landing page counters.
type StatsResponse struct {
	TotalUsers       int64 `json:"totalUsers" example:"120"`
	TotalClasses     int64 `json:"totalClasses" example:"14"`
	TotalEnrollments int64 `json:"totalEnrollments" example:"300"`
}
