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

func newClassFixture() (*memoryDB, ClassService) {
	db := newMemoryDB()
	return db, NewClassService(db, db, newTestAuthz(db), testLogger())
}

func ptr[T any](v T) *T { return &v }

func TestCreateClass(t *testing.T) {
	db, svc := newClassFixture()
	db.addUser("t@x.com", "Teacher T", models.RoleTeacher)

	class, err := svc.CreateClass(context.Background(), "t@x.com", &dto.CreateClassRequest{
		Title: " Algebra ", Price: ptr(20.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", class.Title)
	assert.Equal(t, models.ClassPending, class.Status)
	assert.Equal(t, "t@x.com", class.InstructorEmail)
	assert.Equal(t, "Teacher T", class.InstructorName)
	assert.Equal(t, models.DefaultAvailableSeats, class.AvailableSeats)
	assert.Zero(t, class.TotalEnrolled)

	_, err = svc.CreateClass(context.Background(), "t@x.com", &dto.CreateClassRequest{Title: "Bad", Price: ptr(-1.0)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateAndDeleteMyClass_Ownership(t *testing.T) {
	db, svc := newClassFixture()
	mine := db.addClass("t@x.com", models.ClassApproved, "Mine")
	theirs := db.addClass("other@x.com", models.ClassPending, "Theirs")
	ctx := context.Background()

	updated, err := svc.UpdateMyClass(ctx, "t@x.com", mine.ID, &dto.UpdateClassRequest{Title: ptr("Renamed"), Price: ptr(5.0)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 5.0, updated.Price)
	assert.Equal(t, models.ClassApproved, updated.Status)

	_, err = svc.UpdateMyClass(ctx, "t@x.com", theirs.ID, &dto.UpdateClassRequest{Title: ptr("Hijack")})
	assert.ErrorIs(t, err, apperrors.ErrNotClassOwner)
	assert.Equal(t, "Theirs", db.class(theirs.ID).Title)

	_, err = svc.UpdateMyClass(ctx, "t@x.com", mine.ID, &dto.UpdateClassRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateMyClass(ctx, "t@x.com", "bogus", &dto.UpdateClassRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidClassID)

	assert.ErrorIs(t, svc.DeleteMyClass(ctx, "t@x.com", theirs.ID), apperrors.ErrNotClassOwner)
	assert.ErrorIs(t, svc.DeleteMyClass(ctx, "t@x.com", uuid.NewString()), apperrors.ErrClassNotFound)
	require.NoError(t, svc.DeleteMyClass(ctx, "t@x.com", mine.ID))

	_, err = db.GetClassByID(ctx, mine.ID)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestClassListings(t *testing.T) {
	db, svc := newClassFixture()
	ctx := context.Background()
	for i, n := range []int{3, 9, 1, 7, 5, 2, 8} {
		c := db.addClass("t@x.com", models.ClassApproved, string(rune('A'+i)))
		db.classes[c.ID].TotalEnrolled = n
	}
	db.addClass("t@x.com", models.ClassPending, "P")
	rejected := db.addClass("t@x.com", models.ClassRejected, "R")
	db.classes[rejected.ID].TotalEnrolled = 100

	approved, err := svc.ListApprovedClasses(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 7)

	popular, err := svc.ListPopularClasses(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 6)
	assert.Equal(t, 9, popular[0].TotalEnrolled)
	assert.Equal(t, 2, popular[5].TotalEnrolled)

	all, err := svc.ListAllClasses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	mine, err := svc.ListMyClasses(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Len(t, mine, 9)
}

func TestSetClassStatus(t *testing.T) {
	db, svc := newClassFixture()
	c := db.addClass("t@x.com", models.ClassPending, "C")
	ctx := context.Background()

	updated, err := svc.SetClassStatus(ctx, c.ID, models.ClassApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ClassApproved, updated.Status)

	updated, err = svc.SetClassStatus(ctx, c.ID, models.ClassPending)
	require.NoError(t, err)
	assert.Equal(t, models.ClassPending, updated.Status)

	_, err = svc.SetClassStatus(ctx, c.ID, "archived")
	assert.ErrorIs(t, err, apperrors.ErrInvalidClassStatus)

	_, err = svc.SetClassStatus(ctx, uuid.NewString(), models.ClassApproved)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestGetClassDetail(t *testing.T) {
	db, svc := newClassFixture()
	teacher := db.addUser("t@x.com", "Teacher T", models.RoleTeacher)
	teacher.Photo = "https://img/t.png"
	teacher.TeacherApplication = &models.TeacherApplication{Experience: "7 years", Status: models.ApplicationApproved}
	c := db.addClass("t@x.com", models.ClassApproved, "C")
	orphan := db.addClass("gone@x.com", models.ClassApproved, "Orphan")
	db.classes[orphan.ID].Category = "Science"
	ctx := context.Background()

	detail, err := svc.GetClassDetail(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "General", detail.Category)
	assert.Equal(t, "t@x.com", detail.Instructor.Email)
	assert.Equal(t, "https://img/t.png", detail.Instructor.Photo)
	assert.Equal(t, "7 years", detail.Instructor.TeacherApplication.Experience)

	detail, err = svc.GetClassDetail(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science", detail.Category)
	assert.Equal(t, "N/A", detail.Instructor.TeacherApplication.Experience)
	assert.Empty(t, detail.Instructor.Photo)

	_, err = svc.GetClassDetail(ctx, "123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidClassID)

	_, err = svc.GetClassDetail(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}
