package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/app/controllers"
	"github.com/yigit/mentorium/internal/app/models"
	"github.com/yigit/mentorium/internal/middleware"
)

// Controllers groups every HTTP handler set mounted by SetupRouter.
type Controllers struct {
	User       *controllers.UserController
	Class      *controllers.ClassController
	Enrollment *controllers.EnrollmentController
	Coursework *controllers.CourseworkController
	Feedback   *controllers.FeedbackController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// --- Operational routes ---
	router.GET("/", ctrl.Health.Root)
	router.GET("/ping", ctrl.Health.Ping)
	router.GET("/api/v1/health", ctrl.Health.Health)

	// --- Public routes ---
	router.POST("/users", ctrl.User.CreateUser)
	router.GET("/users/:email", ctrl.User.GetUser)
	router.PATCH("/users/:email", ctrl.User.ApplyForTeacher)
	router.GET("/users/:email/role", ctrl.User.GetRole)
	router.GET("/allUsers", ctrl.User.SearchUsers)
	router.GET("/mentorium/allUsers", ctrl.User.ListUsers)

	router.GET("/allClasses", ctrl.Class.ListApprovedClasses)
	router.GET("/popular-classes", ctrl.Class.ListPopularClasses)
	router.GET("/class/:id", ctrl.Class.GetClassDetail)

	router.POST("/create-payment-intent", ctrl.Enrollment.CreatePaymentIntent)
	router.POST("/verify-payment", ctrl.Enrollment.VerifyPayment)

	router.GET("/assignments/:classId", ctrl.Coursework.ListAssignments)
	router.GET("/assignments/count/:classId", ctrl.Coursework.AssignmentCount)
	router.GET("/assignment/:id", ctrl.Coursework.GetAssignment)
	router.GET("/submissions/count/:classId", ctrl.Coursework.SubmissionCount)

	router.GET("/feedbacks", ctrl.Feedback.ListFeedbacks)
	router.GET("/feedbacks/class/:classId", ctrl.Feedback.ListClassFeedbacks)
	router.GET("/stats", ctrl.Feedback.GetStats)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.TokenAuth())

	admin := authenticated.Group("")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/teacher-requests/pending", ctrl.User.ListPendingApplications)
		admin.PATCH("/teacher-requests/:email/approve", ctrl.User.ApproveApplication)
		admin.PATCH("/teacher-requests/:email/reject", ctrl.User.RejectApplication)
		admin.PATCH("/users/make-admin/:email", ctrl.User.MakeAdmin)
		admin.GET("/admin/all-classes", ctrl.Class.ListAllClasses)
		admin.PATCH("/admin/class-status/:id", ctrl.Class.SetClassStatus)
	}

	teacher := authenticated.Group("")
	teacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
	{
		teacher.POST("/addClass", ctrl.Class.CreateClass)
		teacher.GET("/my-classes", ctrl.Class.ListMyClasses)
		teacher.PATCH("/my-classes/:id", ctrl.Class.UpdateMyClass)
		teacher.DELETE("/my-classes/:id", ctrl.Class.DeleteMyClass)
		teacher.POST("/assignments", ctrl.Coursework.CreateAssignment)
	}

	student := authenticated.Group("")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.POST("/enrollments", ctrl.Enrollment.Enroll)
		student.GET("/users/:email/enrolled-classes", ctrl.Enrollment.GetEnrolledClasses)
		student.POST("/submissions", ctrl.Coursework.SubmitAssignment)
		student.POST("/evaluations", ctrl.Feedback.SubmitEvaluation)
	}
}
