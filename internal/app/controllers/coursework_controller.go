package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/middleware"
)

// CourseworkController handles assignment and submission endpoints
type CourseworkController struct {
	courseworkService services.CourseworkService
}

// NewCourseworkController creates a new CourseworkController
func NewCourseworkController(courseworkService services.CourseworkService) *CourseworkController {
	return &CourseworkController{
		courseworkService: courseworkService,
	}
}

// CreateAssignment posts an assignment to one of the caller's classes
// @Summary Create an assignment
// @Tags coursework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} dto.APIResponse{data=models.Assignment}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /assignments [post]
func (c *CourseworkController) CreateAssignment(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.courseworkService.CreateAssignment(ctx.Request.Context(), email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(assignment, "Assignment created successfully"))
}

// ListAssignments lists a class's assignments
// @Summary List assignments of a class
// @Tags coursework
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Assignment}
// @Failure 400 {object} dto.ErrorResponse "Invalid class id"
// @Router /assignments/{classId} [get]
func (c *CourseworkController) ListAssignments(ctx *gin.Context) {
	assignments, err := c.courseworkService.ListAssignments(ctx.Request.Context(), ctx.Param("classId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignments, ""))
}

// GetAssignment returns one assignment
// @Summary Get an assignment
// @Tags coursework
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=models.Assignment}
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment id"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignment/{id} [get]
func (c *CourseworkController) GetAssignment(ctx *gin.Context) {
	assignment, err := c.courseworkService.GetAssignment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment, ""))
}

// AssignmentCount returns a class's assignment counter
// @Summary Count assignments of a class
// @Tags coursework
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /assignments/count/{classId} [get]
func (c *CourseworkController) AssignmentCount(ctx *gin.Context) {
	count, err := c.courseworkService.AssignmentCount(ctx.Request.Context(), ctx.Param("classId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CountResponse{Count: count}, ""))
}

// SubmitAssignment records the caller's submission
// @Summary Submit an assignment
// @Tags coursework
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitAssignmentRequest true "Submission"
// @Success 201 {object} dto.APIResponse{data=models.Submission}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - student only"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /submissions [post]
func (c *CourseworkController) SubmitAssignment(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	var req dto.SubmitAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	submission, err := c.courseworkService.SubmitAssignment(ctx.Request.Context(), email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(submission, "Assignment submitted successfully"))
}

// SubmissionCount returns the number of submissions across a class
// @Summary Count submissions of a class
// @Tags coursework
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /submissions/count/{classId} [get]
func (c *CourseworkController) SubmissionCount(ctx *gin.Context) {
	count, err := c.courseworkService.SubmissionCount(ctx.Request.Context(), ctx.Param("classId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CountResponse{Count: count}, ""))
}
