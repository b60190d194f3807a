package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/mentorium/internal/app/auth"
	"github.com/yigit/mentorium/internal/app/controllers"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/middleware"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stubs embed the service interfaces and override only what the tests call.

type stubUserService struct {
	services.UserService
	created    *dto.CreateUserRequest
	approved   []string
	approveErr error
}

func (s *stubUserService) CreateUser(_ context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	s.created = req
	return &models.User{Email: req.Email, Name: req.Name, Role: models.RoleStudent}, nil
}

func (s *stubUserService) ApproveApplication(_ context.Context, email string) error {
	if s.approveErr != nil {
		return s.approveErr
	}
	s.approved = append(s.approved, email)
	return nil
}

func (s *stubUserService) ListUsers(_ context.Context, page, limit int) ([]*models.User, dto.PaginationInfo, error) {
	return []*models.User{{Email: "a@x.com"}}, dto.PaginationInfo{CurrentPage: page, PageSize: limit, TotalPages: 3, TotalItems: 21}, nil
}

type stubClassService struct {
	services.ClassService
	createdBy string
	listedFor string
}

func (s *stubClassService) CreateClass(_ context.Context, email string, req *dto.CreateClassRequest) (*models.Class, error) {
	s.createdBy = email
	return &models.Class{ID: "c1", Title: req.Title, Price: *req.Price, Status: models.ClassPending, InstructorEmail: email}, nil
}

func (s *stubClassService) ListMyClasses(_ context.Context, email string) ([]*models.Class, error) {
	s.listedFor = email
	return []*models.Class{}, nil
}

type stubEnrollmentService struct {
	services.EnrollmentService
	amounts   []string
	enrollErr error
}

func (s *stubEnrollmentService) CreatePaymentIntent(_ context.Context, amount string) (*dto.PaymentIntentResponse, error) {
	s.amounts = append(s.amounts, amount)
	if amount == "0" {
		return nil, apperrors.ErrInvalidAmount
	}
	return &dto.PaymentIntentResponse{ClientSecret: "pi_secret"}, nil
}

func (s *stubEnrollmentService) Enroll(_ context.Context, email string, req *dto.EnrollRequest) (*dto.EnrollResponse, error) {
	if s.enrollErr != nil {
		return nil, s.enrollErr
	}
	return &dto.EnrollResponse{EnrollmentID: "e1", ClassID: req.ClassID, ClassName: "Algebra"}, nil
}

type stubCourseworkService struct {
	services.CourseworkService
}

func (s *stubCourseworkService) AssignmentCount(_ context.Context, classID string) (int64, error) {
	return 7, nil
}

func (s *stubCourseworkService) ListAssignments(_ context.Context, classID string) ([]*models.Assignment, error) {
	return []*models.Assignment{{ID: "a1", ClassID: classID}}, nil
}

type stubStatsService struct{}

func (stubStatsService) GetStats(context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{TotalUsers: 3, TotalClasses: 2, TotalEnrollments: 1}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubDirectory struct {
	users map[string]*models.User
}

func (d *stubDirectory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := d.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (d *stubDirectory) GetClassByID(context.Context, string) (*models.Class, error) {
	return nil, apperrors.ErrClassNotFound
}

type tokenTable map[string]string

func (t tokenTable) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if email, ok := t[token]; ok {
		return &auth.Identity{Email: email}, nil
	}
	return nil, auth.ErrInvalidToken
}

type fixture struct {
	router     *gin.Engine
	users      *stubUserService
	classes    *stubClassService
	enrollment *stubEnrollmentService
}

func newFixture(pingErr error) *fixture {
	f := &fixture{
		users:      &stubUserService{},
		classes:    &stubClassService{},
		enrollment: &stubEnrollmentService{},
	}

	dir := &stubDirectory{users: map[string]*models.User{
		"admin@x.com":   {Email: "admin@x.com", Role: models.RoleAdmin},
		"teacher@x.com": {Email: "teacher@x.com", Role: models.RoleTeacher},
		"s@x.com":       {Email: "s@x.com", Role: models.RoleStudent},
	}}
	tokens := tokenTable{"admin": "admin@x.com", "teacher": "Teacher@X.com", "student": "s@x.com"}
	authMiddleware := middleware.NewAuthMiddleware(tokens, appauth.NewAuthorizationService(dir, dir))

	ctrl := Controllers{
		User:       controllers.NewUserController(f.users, zerolog.Nop()),
		Class:      controllers.NewClassController(f.classes),
		Enrollment: controllers.NewEnrollmentController(f.enrollment),
		Coursework: controllers.NewCourseworkController(&stubCourseworkService{}),
		Feedback:   controllers.NewFeedbackController(nil, stubStatsService{}),
		Health:     controllers.NewHealthController(stubPinger{err: pingErr}),
	}

	f.router = gin.New()
	SetupRouter(f.router, ctrl, authMiddleware)
	return f
}

func (f *fixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}

func TestOperationalRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Mentorium Server is Cooking!"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/health", "", nil).Code)

	down := newFixture(errors.New("connection refused"))
	assert.Equal(t, http.StatusServiceUnavailable, down.do(http.MethodGet, "/api/v1/health", "", nil).Code)
}

func TestCreateUser_Validation(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodPost, "/users", "", map[string]string{"name": "Jane", "email": "jane@x.com"})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, f.users.created)
	assert.Equal(t, "jane@x.com", f.users.created.Email)

	w = f.do(http.MethodPost, "/users", "", map[string]string{"name": "Jane", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))

	w = f.do(http.MethodPost, "/users", "", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGate(t *testing.T) {
	f := newFixture(nil)
	path := "/teacher-requests/a@x.com/approve"

	w := f.do(http.MethodPatch, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPatch, path, "nope", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, w))

	w = f.do(http.MethodPatch, path, "student", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.users.approved)

	w = f.do(http.MethodPatch, path, "admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a@x.com"}, f.users.approved)

	f.users.approveErr = apperrors.ErrApplicationNotPending
	w = f.do(http.MethodPatch, path, "admin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeConflict, errorCode(t, w))
}

func TestTeacherRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodPost, "/addClass", "teacher", map[string]interface{}{"title": "Algebra", "price": 20})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "teacher@x.com", f.classes.createdBy)

	w = f.do(http.MethodPost, "/addClass", "teacher", map[string]interface{}{"title": "Algebra"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "price is required")

	w = f.do(http.MethodPost, "/addClass", "student", map[string]interface{}{"title": "Algebra", "price": 20})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/my-classes?email=someone@x.com", "teacher", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.classes.listedFor)

	w = f.do(http.MethodGet, "/my-classes?email=TEACHER@x.com", "teacher", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "teacher@x.com", f.classes.listedFor)
}

func TestPaymentIntent_AmountForms(t *testing.T) {
	f := newFixture(nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/create-payment-intent", "", `{"amount": 20.5}`).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/create-payment-intent", "", `{"amount": "20"}`).Code)

	w := f.do(http.MethodPost, "/create-payment-intent", "", `{"amount": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, w))

	assert.Equal(t, []string{"20.5", "20", "0"}, f.enrollment.amounts)
}

func TestEnroll(t *testing.T) {
	f := newFixture(nil)
	body := map[string]interface{}{"classId": "c1", "transactionId": "tx1", "amount": 20}

	w := f.do(http.MethodPost, "/enrollments", "student", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.do(http.MethodPost, "/enrollments", "teacher", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.enrollment.enrollErr = apperrors.ErrAlreadyEnrolled
	w = f.do(http.MethodPost, "/enrollments", "student", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeConflict, errorCode(t, w))

	f.enrollment.enrollErr = apperrors.ErrClassNotFound
	w = f.do(http.MethodPost, "/enrollments", "student", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/assignments/count/c1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Data dto.CountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, int64(7), count.Data.Count)

	w = f.do(http.MethodGet, "/assignments/c1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/stats", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalEnrollments":1`)

	w = f.do(http.MethodGet, "/mentorium/allUsers?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(21), page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 10, page.ItemsPerPage)
}
