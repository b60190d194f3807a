package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/middleware"
)

// FeedbackController handles evaluations, feedback listings and stats
type FeedbackController struct {
	feedbackService services.FeedbackService
	statsService    services.StatsService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService, statsService services.StatsService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
		statsService:    statsService,
	}
}

// SubmitEvaluation rates a class
// @Summary Submit an evaluation
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EvaluationRequest true "Evaluation"
// @Success 201 {object} dto.APIResponse{data=models.Feedback}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - student only"
// @Router /evaluations [post]
func (c *FeedbackController) SubmitEvaluation(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	var req dto.EvaluationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	feedback, err := c.feedbackService.SubmitEvaluation(ctx.Request.Context(), email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(feedback, "Evaluation submitted successfully"))
}

// ListFeedbacks lists every rated feedback
// @Summary List feedbacks
// @Tags feedback
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.FeedbackResponse}
// @Router /feedbacks [get]
func (c *FeedbackController) ListFeedbacks(ctx *gin.Context) {
	feedbacks, err := c.feedbackService.ListFeedbacks(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feedbacks, ""))
}

// ListClassFeedbacks lists the feedbacks of one class
// @Summary List feedbacks of a class
// @Tags feedback
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FeedbackResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid class id"
// @Router /feedbacks/class/{classId} [get]
func (c *FeedbackController) ListClassFeedbacks(ctx *gin.Context) {
	feedbacks, err := c.feedbackService.ListClassFeedbacks(ctx.Request.Context(), ctx.Param("classId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feedbacks, ""))
}

// GetStats returns the landing page counters
// @Summary Aggregate counts
// @Tags stats
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse}
// @Router /stats [get]
func (c *FeedbackController) GetStats(ctx *gin.Context) {
	stats, err := c.statsService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
