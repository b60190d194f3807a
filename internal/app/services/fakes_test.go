package services

import (
	"context"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/auth"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/payment"
)

// memoryDB is an in-memory stand-in for every store interface.
type memoryDB struct {
	mu          sync.Mutex
	users       map[string]*models.User
	classes     map[string]*models.Class
	enrollments []*models.Enrollment
	assignments map[string]*models.Assignment
	submissions []*models.Submission
	feedbacks   []*models.Feedback

	addEnrolledCalls int
	failIncrement    error
	skipDuplicate    bool
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:       map[string]*models.User{},
		classes:     map[string]*models.Class{},
		assignments: map[string]*models.Assignment{},
	}
}

var (
	_ UserStore       = (*memoryDB)(nil)
	_ ClassStore      = (*memoryDB)(nil)
	_ EnrollmentStore = (*memoryDB)(nil)
	_ AssignmentStore = (*memoryDB)(nil)
	_ SubmissionStore = (*memoryDB)(nil)
	_ FeedbackStore   = (*memoryDB)(nil)
)

func cloneUser(u *models.User) *models.User {
	c := *u
	c.EnrolledClasses = append([]string{}, u.EnrolledClasses...)
	if u.TeacherApplication != nil {
		app := *u.TeacherApplication
		c.TeacherApplication = &app
	}
	return &c
}

func (m *memoryDB) addUser(email, name string, role models.RoleType) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{Email: email, Name: name, Role: role, EnrolledClasses: []string{}, CreatedAt: time.Now()}
	m.users[email] = u
	return u
}

func (m *memoryDB) addClass(owner string, status models.ClassStatus, title string) *models.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Class{
		ID:              uuid.NewString(),
		Title:           title,
		Price:           20,
		AvailableSeats:  models.DefaultAvailableSeats,
		Status:          status,
		InstructorName:  "Teacher " + owner,
		InstructorEmail: owner,
		CreatedAt:       time.Now(),
	}
	m.classes[c.ID] = c
	return c
}

func (m *memoryDB) user(email string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUser(m.users[email])
}

func (m *memoryDB) class(id string) *models.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *m.classes[id]
	return &c
}

// UserStore

func (m *memoryDB) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	user.EnrolledClasses = []string{}
	user.CreatedAt = time.Now()
	m.users[user.Email] = cloneUser(user)
	return nil
}

func (m *memoryDB) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (m *memoryDB) GetUsersByEmails(_ context.Context, emails []string) (map[string]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]*models.User{}
	for _, e := range emails {
		if u, ok := m.users[e]; ok {
			out[e] = cloneUser(u)
		}
	}
	return out, nil
}

func (m *memoryDB) sortedUsers() []*models.User {
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users
}

func (m *memoryDB) ListUsers(_ context.Context, offset, limit uint64) ([]*models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := m.sortedUsers()
	total := int64(len(users))
	if offset >= uint64(len(users)) {
		return []*models.User{}, total, nil
	}
	end := offset + limit
	if end > uint64(len(users)) {
		end = uint64(len(users))
	}
	return users[offset:end], total, nil
}

func (m *memoryDB) SearchUsers(_ context.Context, pattern string) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidSearchPattern, err.Error())
	}
	out := []*models.User{}
	for _, u := range m.sortedUsers() {
		if re.MatchString(u.Name) || re.MatchString(u.Email) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryDB) SubmitTeacherApplication(_ context.Context, email string, app *models.TeacherApplication) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.Role != models.RoleStudent {
		return nil, apperrors.ErrApplicationNotAllowed
	}
	a := *app
	u.Role = models.RolePending
	u.TeacherApplication = &a
	return cloneUser(u), nil
}

func (m *memoryDB) ListPendingApplications(_ context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.User{}
	for _, u := range m.sortedUsers() {
		if u.TeacherApplication != nil && u.TeacherApplication.Status == models.ApplicationPending {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryDB) ResolveApplication(_ context.Context, email string, role models.RoleType, status models.ApplicationStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.TeacherApplication == nil || u.TeacherApplication.Status != models.ApplicationPending {
		return false, nil
	}
	u.Role = role
	u.TeacherApplication.Status = status
	return true, nil
}

func (m *memoryDB) MakeAdmin(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.Role == models.RoleAdmin {
		return false, nil
	}
	u.Role = models.RoleAdmin
	return true, nil
}

func (m *memoryDB) AddEnrolledClass(_ context.Context, email, classID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEnrolledCalls++
	u, ok := m.users[email]
	if !ok {
		return nil
	}
	for _, id := range u.EnrolledClasses {
		if id == classID {
			return nil
		}
	}
	u.EnrolledClasses = append(u.EnrolledClasses, classID)
	return nil
}

func (m *memoryDB) CountUsers(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// ClassStore

func (m *memoryDB) CreateClass(_ context.Context, class *models.Class) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	class.ID = uuid.NewString()
	class.CreatedAt = time.Now()
	c := *class
	m.classes[class.ID] = &c
	return nil
}

func (m *memoryDB) GetClassByID(_ context.Context, id string) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryDB) GetClassesByIDs(_ context.Context, ids []string) ([]*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Class{}
	for _, id := range ids {
		if c, ok := m.classes[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryDB) ListClasses(_ context.Context, status *models.ClassStatus, instructorEmail string) ([]*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Class{}
	for _, c := range m.classes {
		if status != nil && c.Status != *status {
			continue
		}
		if instructorEmail != "" && c.InstructorEmail != instructorEmail {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memoryDB) ListPopularClasses(ctx context.Context, limit uint64) ([]*models.Class, error) {
	approved := models.ClassApproved
	classes, _ := m.ListClasses(ctx, &approved, "")
	sort.SliceStable(classes, func(i, j int) bool { return classes[i].TotalEnrolled > classes[j].TotalEnrolled })
	if uint64(len(classes)) > limit {
		classes = classes[:limit]
	}
	return classes, nil
}

func (m *memoryDB) UpdateClass(_ context.Context, id string, patch models.ClassPatch) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Price != nil {
		c.Price = *patch.Price
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	cp := *c
	return &cp, nil
}

func (m *memoryDB) DeleteClass(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(m.classes, id)
	return nil
}

func (m *memoryDB) SetClassStatus(_ context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	c.Status = status
	cp := *c
	return &cp, nil
}

func (m *memoryDB) IncrementTotalEnrolled(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIncrement != nil {
		return m.failIncrement
	}
	c, ok := m.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	c.TotalEnrolled++
	return nil
}

func (m *memoryDB) IncrementAssignmentCount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	c.AssignmentCount++
	return nil
}

func (m *memoryDB) CountClasses(_ context.Context, status *models.ClassStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.classes {
		if status == nil || c.Status == *status {
			n++
		}
	}
	return n, nil
}

// EnrollmentStore

func (m *memoryDB) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.enrollments {
		if existing.ClassID == e.ClassID && existing.StudentEmail == e.StudentEmail {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	e.ID = uuid.NewString()
	cp := *e
	m.enrollments = append(m.enrollments, &cp)
	return nil
}

func (m *memoryDB) EnrollmentExists(_ context.Context, classID, studentEmail string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.skipDuplicate {
		return false, nil
	}
	for _, e := range m.enrollments {
		if e.ClassID == classID && e.StudentEmail == studentEmail {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryDB) ListEnrollmentsByStudent(_ context.Context, studentEmail string) ([]*models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Enrollment{}
	for _, e := range m.enrollments {
		if e.StudentEmail == studentEmail {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryDB) CountEnrollments(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.enrollments)), nil
}

// AssignmentStore

func (m *memoryDB) CreateAssignment(_ context.Context, a *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *memoryDB) GetAssignmentByID(_ context.Context, id string) (*models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memoryDB) ListAssignmentsByClass(_ context.Context, classID string) ([]*models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Assignment{}
	for _, a := range m.assignments {
		if a.ClassID == classID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryDB) IncrementSubmissionCount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.SubmissionCount++
	return nil
}

func (m *memoryDB) SumSubmissionCounts(_ context.Context, classID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, a := range m.assignments {
		if a.ClassID == classID {
			total += int64(a.SubmissionCount)
		}
	}
	return total, nil
}

// SubmissionStore

func (m *memoryDB) CreateSubmission(_ context.Context, s *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	cp := *s
	m.submissions = append(m.submissions, &cp)
	return nil
}

// FeedbackStore

func (m *memoryDB) CreateFeedback(_ context.Context, f *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = uuid.NewString()
	cp := *f
	m.feedbacks = append(m.feedbacks, &cp)
	return nil
}

func (m *memoryDB) ListFeedbacks(_ context.Context, classID string) ([]*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Feedback{}
	for i := len(m.feedbacks) - 1; i >= 0; i-- {
		f := m.feedbacks[i]
		if classID != "" && f.ClassID != classID {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTx runs fn directly. It does not roll back, so tests observe partial writes when fn
// fails midway.
type fakeTx struct {
	calls int
}

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// fakePayments records provider calls and returns canned intents.
type fakePayments struct {
	mu         sync.Mutex
	created    []int64
	currencies []string
	intents    map[string]*payment.Intent
	err        error
}

func newFakePayments() *fakePayments {
	return &fakePayments{intents: map[string]*payment.Intent{}}
}

func (p *fakePayments) CreateIntent(_ context.Context, amountMinor int64, currency string) (*payment.Intent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.created = append(p.created, amountMinor)
	p.currencies = append(p.currencies, currency)
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	intent := &payment.Intent{ID: id, ClientSecret: id + "_secret", Status: "requires_payment_method", Amount: amountMinor, Currency: currency, CreatedAt: time.Now()}
	p.intents[id] = intent
	return intent, nil
}

func (p *fakePayments) GetIntent(_ context.Context, id string) (*payment.Intent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	intent, ok := p.intents[id]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrExternalService, "No such payment_intent: "+id)
	}
	return intent, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestAuthz(db *memoryDB) *auth.AuthorizationService {
	return auth.NewAuthorizationService(db, db)
}
