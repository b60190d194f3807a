package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/middleware"
	"github.com/yigit/mentorium/internal/pkg/apperrors"
	"github.com/yigit/mentorium/internal/pkg/helpers"
)

// ClassController handles catalog endpoints
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass creates a class in pending status
// @Summary Create a class
// @Description Creates a class owned by the calling teacher. New classes wait for admin approval.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.Class} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - teacher only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /addClass [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(class, "Class created successfully"))
}

// ListMyClasses lists the caller's classes
// @Summary List my classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param email query string false "Must match the authenticated user"
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /my-classes [get]
func (c *ClassController) ListMyClasses(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	if requested := ctx.Query("email"); requested != "" && helpers.NormalizeEmail(requested) != email {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("Forbidden - you can only list your own classes"))
		return
	}

	classes, err := c.classService.ListMyClasses(ctx.Request.Context(), email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// UpdateMyClass edits one of the caller's classes
// @Summary Update my class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.UpdateClassRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Class}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Class belongs to another teacher"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /my-classes/{id} [patch]
func (c *ClassController) UpdateMyClass(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.UpdateMyClass(ctx.Request.Context(), email, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(class, "Class updated successfully"))
}

// DeleteMyClass deletes one of the caller's classes
// @Summary Delete my class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Class belongs to another teacher"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /my-classes/{id} [delete]
func (c *ClassController) DeleteMyClass(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	if err := c.classService.DeleteMyClass(ctx.Request.Context(), email, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Class deleted successfully"))
}

// ListApprovedClasses lists the public catalog
// @Summary List approved classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Router /allClasses [get]
func (c *ClassController) ListApprovedClasses(ctx *gin.Context) {
	classes, err := c.classService.ListApprovedClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// ListPopularClasses lists the most enrolled approved classes
// @Summary List popular classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Router /popular-classes [get]
func (c *ClassController) ListPopularClasses(ctx *gin.Context) {
	classes, err := c.classService.ListPopularClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// ListAllClasses lists classes in every status
// @Summary List all classes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Class}
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Router /admin/all-classes [get]
func (c *ClassController) ListAllClasses(ctx *gin.Context) {
	classes, err := c.classService.ListAllClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// SetClassStatus moderates a class
// @Summary Set a class's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.ClassStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Class}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /admin/class-status/{id} [patch]
func (c *ClassController) SetClassStatus(ctx *gin.Context) {
	var req dto.ClassStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.SetClassStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(class, "Class status updated"))
}

// GetClassDetail returns a class with its instructor
// @Summary Get a class
// @Tags classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassDetailResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid class id"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /class/{id} [get]
func (c *ClassController) GetClassDetail(ctx *gin.Context) {
	detail, err := c.classService.GetClassDetail(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}
