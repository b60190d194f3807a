package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/middleware"
	"github.com/yigit/mentorium/internal/pkg/helpers"
)

// UserController handles user and teacher application endpoints
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser registers a user
// @Summary Register a user
// @Description Stores the profile of a user who signed in with the identity provider. New users are always students.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User profile"
// @Success 201 {object} dto.APIResponse{data=models.User} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "User created successfully"))
}

// GetUser returns a user by email
// @Summary Get a user
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{email} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userService.GetUser(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}

// GetRole returns the role of a user
// @Summary Get a user's role
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.APIResponse{data=dto.RoleResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{email}/role [get]
func (c *UserController) GetRole(ctx *gin.Context) {
	role, err := c.userService.GetRole(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.RoleResponse{Role: role}, ""))
}

// ApplyForTeacher submits a teacher application
// @Summary Apply for the teacher role
// @Description Moves a student to the pending role and records the application.
// @Tags users
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param request body dto.TeacherApplicationRequest true "Application"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Missing fields or user is not a student"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{email} [patch]
func (c *UserController) ApplyForTeacher(ctx *gin.Context) {
	var req dto.TeacherApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.ApplyForTeacher(ctx.Request.Context(), ctx.Param("email"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Teacher application submitted"))
}

// ListPendingApplications lists users waiting for teacher approval
// @Summary List pending teacher applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Router /teacher-requests/pending [get]
func (c *UserController) ListPendingApplications(ctx *gin.Context) {
	users, err := c.userService.ListPendingApplications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users, ""))
}

// ApproveApplication approves a pending teacher application
// @Summary Approve a teacher application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email path string true "Applicant email"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Application not pending"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Router /teacher-requests/{email}/approve [patch]
func (c *UserController) ApproveApplication(ctx *gin.Context) {
	if err := c.userService.ApproveApplication(ctx.Request.Context(), ctx.Param("email")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Teacher application approved"))
}

// RejectApplication rejects a pending teacher application
// @Summary Reject a teacher application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email path string true "Applicant email"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Application not pending"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Router /teacher-requests/{email}/reject [patch]
func (c *UserController) RejectApplication(ctx *gin.Context) {
	if err := c.userService.RejectApplication(ctx.Request.Context(), ctx.Param("email")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Teacher application rejected"))
}

// SearchUsers searches users by name or email
// @Summary Search users
// @Description Case-insensitive regular expression match on name or email. An empty search returns every user.
// @Tags users
// @Produce json
// @Param search query string false "Pattern"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid pattern"
// @Router /allUsers [get]
func (c *UserController) SearchUsers(ctx *gin.Context) {
	var query dto.UserSearchQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	users, err := c.userService.SearchUsers(ctx.Request.Context(), query.Search)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users, ""))
}

// ListUsers returns one page of users
// @Summary List users page by page
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.PaginatedResponse{data=[]models.User}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentorium/allUsers [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	users, info, err := c.userService.ListUsers(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(users, info))
}

// MakeAdmin promotes a user to admin
// @Summary Promote a user to admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "User not found or already admin"
// @Router /users/make-admin/{email} [patch]
func (c *UserController) MakeAdmin(ctx *gin.Context) {
	email := ctx.Param("email")
	if err := c.userService.MakeAdmin(ctx.Request.Context(), email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", email).Msg("User promoted to admin")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User promoted to admin"))
}
