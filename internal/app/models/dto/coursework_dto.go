package dto

// CreateAssignmentRequest is the body of POST /assignments. Deadline is an RFC3339 timestamp.
type CreateAssignmentRequest struct {
	ClassID     string `json:"classId" binding:"required" example:"6f1c1d2e-8a43-4d55-9d55-0d0b5f8c2a11"`
	Title       string `json:"title" binding:"required" example:"Week 1 worksheet"`
	Description string `json:"description" binding:"required" example:"Solve problems 1-10"`
	Deadline    string `json:"deadline" binding:"required" example:"2025-05-01T23:59:00Z"`
}

// SubmitAssignmentRequest is the body of POST /submissions.
type SubmitAssignmentRequest struct {
	AssignmentID   string `json:"assignmentId" binding:"required"`
	ClassID        string `json:"classId"`
	SubmissionLink string `json:"submissionLink" binding:"required" example:"https://github.com/jane/week1"`
}

// CountResponse carries a single counter.
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}
