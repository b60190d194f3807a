package repositories

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorium/internal/app/migrations"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/db"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
)

// testDatabaseEnv names a Postgres DSN used by the store tests. They are skipped when unset.
const testDatabaseEnv = "MENTORIUM_TEST_DATABASE_URL"

// newTestDatabase migrates a throwaway schema and returns a database bound to it.
func newTestDatabase(t *testing.T) *db.PostgresDB {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool, zerolog.New(io.Discard))
	require.NoError(t, migrator.MigrateFromDirectory(ctx, "../../../migrations"))

	return &db.PostgresDB{Pool: pool}
}

func seedUser(t *testing.T, repos *Repositories, email string, role models.RoleType) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "User " + email, Role: role}
	require.NoError(t, repos.UserRepository.CreateUser(context.Background(), u))
	return u
}

func seedClass(t *testing.T, repos *Repositories, teacher string) *models.Class {
	t.Helper()
	c := &models.Class{
		Title:           "Algebra",
		Price:           20,
		AvailableSeats:  models.DefaultAvailableSeats,
		Status:          models.ClassApproved,
		InstructorName:  "Teacher",
		InstructorEmail: teacher,
	}
	require.NoError(t, repos.ClassRepository.CreateClass(context.Background(), c))
	return c
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repos := NewRepositories(newTestDatabase(t))
	seedUser(t, repos, "a@x.com", models.RoleStudent)

	err := repos.UserRepository.CreateUser(context.Background(), &models.User{Email: "a@x.com", Name: "Again", Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestEnrollmentRepository_UniquePairIsAlreadyEnrolled(t *testing.T) {
	repos := NewRepositories(newTestDatabase(t))
	ctx := context.Background()
	class := seedClass(t, repos, "t@x.com")

	enrollment := func() *models.Enrollment {
		return &models.Enrollment{
			ClassID:       class.ID,
			StudentEmail:  "s@x.com",
			TeacherEmail:  "t@x.com",
			TransactionID: "tx1",
			Amount:        "20",
			EnrolledAt:    time.Now().UTC(),
			Status:        models.EnrollmentActive,
			ClassName:     class.Title,
		}
	}

	first := enrollment()
	require.NoError(t, repos.EnrollmentRepository.CreateEnrollment(ctx, first))
	assert.NotEmpty(t, first.ID)

	err := repos.EnrollmentRepository.CreateEnrollment(ctx, enrollment())
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	count, err := repos.EnrollmentRepository.CountEnrollments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_AddEnrolledClassIsASet(t *testing.T) {
	repos := NewRepositories(newTestDatabase(t))
	ctx := context.Background()
	seedUser(t, repos, "s@x.com", models.RoleStudent)
	classID := uuid.NewString()

	require.NoError(t, repos.UserRepository.AddEnrolledClass(ctx, "s@x.com", classID))
	require.NoError(t, repos.UserRepository.AddEnrolledClass(ctx, "s@x.com", classID))

	u, err := repos.UserRepository.GetUserByEmail(ctx, "s@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{classID}, u.EnrolledClasses)
}

func TestUserRepository_ResolveApplicationOnlyOnce(t *testing.T) {
	repos := NewRepositories(newTestDatabase(t))
	ctx := context.Background()
	seedUser(t, repos, "a@x.com", models.RoleStudent)

	_, err := repos.UserRepository.SubmitTeacherApplication(ctx, "a@x.com", &models.TeacherApplication{
		Experience: "5y", Title: "Math Tutor", Category: "Math",
		Status: models.ApplicationPending, AppliedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	changed, err := repos.UserRepository.ResolveApplication(ctx, "a@x.com", models.RoleTeacher, models.ApplicationApproved)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repos.UserRepository.ResolveApplication(ctx, "a@x.com", models.RoleStudent, models.ApplicationRejected)
	require.NoError(t, err)
	assert.False(t, changed)

	u, err := repos.UserRepository.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, u.Role)
	require.NotNil(t, u.TeacherApplication)
	assert.Equal(t, models.ApplicationApproved, u.TeacherApplication.Status)
	assert.Equal(t, "Math Tutor", u.TeacherApplication.Title)
}

func TestWithinTransaction_RollsBackOnDuplicate(t *testing.T) {
	database := newTestDatabase(t)
	repos := NewRepositories(database)
	ctx := context.Background()
	class := seedClass(t, repos, "t@x.com")

	enroll := func() error {
		return database.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := repos.ClassRepository.IncrementTotalEnrolled(ctx, class.ID); err != nil {
				return err
			}
			return repos.EnrollmentRepository.CreateEnrollment(ctx, &models.Enrollment{
				ClassID:      class.ID,
				StudentEmail: "s@x.com",
				TeacherEmail: "t@x.com",
				Amount:       "20",
				EnrolledAt:   time.Now().UTC(),
				Status:       models.EnrollmentActive,
			})
		})
	}

	require.NoError(t, enroll())
	assert.ErrorIs(t, enroll(), apperrors.ErrAlreadyEnrolled)

	got, err := repos.ClassRepository.GetClassByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalEnrolled)
}
