package models

import "time"

// Enrollment links a student to a class after payment. Class display fields are copied at
// enrollment time so later class edits do not rewrite history.
type Enrollment struct {
	ID             string           `json:"_id" db:"id"`
	ClassID        string           `json:"classId" db:"class_id"`
	StudentEmail   string           `json:"studentEmail" db:"student_email"`
	TeacherEmail   string           `json:"teacherEmail" db:"teacher_email"`
	TransactionID  string           `json:"transactionId" db:"transaction_id"`
	Amount         string           `json:"amount" db:"amount"`
	EnrolledAt     time.Time        `json:"enrolledAt" db:"enrolled_at"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	ClassName      string           `json:"className" db:"class_name"`
	ClassImage     string           `json:"classImage" db:"class_image"`
	InstructorName string           `json:"instructorName" db:"instructor_name"`
}
