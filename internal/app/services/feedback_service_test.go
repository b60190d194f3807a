package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
)

func TestFeedback_SubmitAndList(t *testing.T) {
	db := newMemoryDB()
	svc := NewFeedbackService(db, db, testLogger())
	known := db.addUser("known@x.com", "Known Student", models.RoleStudent)
	known.Photo = "https://img/known.png"
	c1 := uuid.NewString()
	c2 := uuid.NewString()
	ctx := context.Background()

	submit := func(email, classID string, rating int) {
		_, err := svc.SubmitEvaluation(ctx, email, &dto.EvaluationRequest{
			ClassID: classID, ClassName: "C", InstructorEmail: "t@x.com", Rating: rating, Description: "ok",
		})
		require.NoError(t, err)
	}
	submit("known@x.com", c1, 5)
	submit("ghost@x.com", c1, 3)
	submit("known@x.com", c2, 4)

	all, err := svc.ListFeedbacks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 4, all[0].Rating, "newest first")

	forC1, err := svc.ListClassFeedbacks(ctx, c1)
	require.NoError(t, err)
	require.Len(t, forC1, 2)

	byEmail := map[string]*dto.FeedbackResponse{}
	for _, f := range forC1 {
		byEmail[f.StudentEmail] = f
	}
	assert.Equal(t, "Known Student", byEmail["known@x.com"].StudentName)
	assert.Equal(t, "https://img/known.png", byEmail["known@x.com"].StudentPhoto)
	assert.Equal(t, "Anonymous", byEmail["ghost@x.com"].StudentName)
	assert.Equal(t, defaultStudentPhoto, byEmail["ghost@x.com"].StudentPhoto)
}

func TestSubmitEvaluation_Validation(t *testing.T) {
	db := newMemoryDB()
	svc := NewFeedbackService(db, db, testLogger())

	valid := dto.EvaluationRequest{ClassID: uuid.NewString(), ClassName: "C", InstructorEmail: "t@x.com", Rating: 3}

	badID := valid
	badID.ClassID = "abc"
	tooHigh := valid
	tooHigh.Rating = 6
	zero := valid
	zero.Rating = 0
	noName := valid
	noName.ClassName = " "

	tests := []struct {
		name    string
		req     dto.EvaluationRequest
		wantErr error
	}{
		{name: "invalid class id", req: badID, wantErr: apperrors.ErrInvalidClassID},
		{name: "rating above range", req: tooHigh, wantErr: apperrors.ErrInvalidRating},
		{name: "rating missing", req: zero, wantErr: apperrors.ErrInvalidRating},
		{name: "class name missing", req: noName, wantErr: apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitEvaluation(context.Background(), "s@x.com", &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, db.feedbacks)

	_, err := svc.ListClassFeedbacks(context.Background(), "abc")
	assert.ErrorIs(t, err, apperrors.ErrInvalidClassID)
}

func TestStats(t *testing.T) {
	db := newMemoryDB()
	db.addUser("a@x.com", "A", models.RoleStudent)
	db.addUser("b@x.com", "B", models.RoleTeacher)
	c := db.addClass("b@x.com", models.ClassApproved, "C")
	db.addClass("b@x.com", models.ClassPending, "P")
	require.NoError(t, db.CreateEnrollment(context.Background(), &models.Enrollment{ClassID: c.ID, StudentEmail: "a@x.com"}))

	stats, err := NewStatsService(db, db, db).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalClasses)
	assert.Equal(t, int64(1), stats.TotalEnrollments)
}
