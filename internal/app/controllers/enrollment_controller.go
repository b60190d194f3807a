package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentorium/internal/app/models/dto"
	"github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/middleware"
)

// EnrollmentController handles payment and enrollment endpoints
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// CreatePaymentIntent starts a card payment
// @Summary Create a payment intent
// @Description Asks the payment provider for an intent and returns its client secret. Amount is in major currency units.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentIntentRequest true "Amount"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentIntentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 500 {object} dto.ErrorResponse "Payment provider error"
// @Router /create-payment-intent [post]
func (c *EnrollmentController) CreatePaymentIntent(ctx *gin.Context) {
	var req dto.PaymentIntentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.enrollmentService.CreatePaymentIntent(ctx.Request.Context(), req.AmountLiteral())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// VerifyPayment checks that a payment intent succeeded
// @Summary Verify a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.VerifyPaymentRequest true "Payment intent"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentDetails}
// @Failure 400 {object} dto.ErrorResponse "Missing id or payment not completed"
// @Failure 500 {object} dto.ErrorResponse "Payment provider error"
// @Router /verify-payment [post]
func (c *EnrollmentController) VerifyPayment(ctx *gin.Context) {
	var req dto.VerifyPaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	details, err := c.enrollmentService.VerifyPayment(ctx.Request.Context(), req.PaymentIntentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(details, "Payment verified"))
}

// Enroll enrolls the caller in a class
// @Summary Enroll in a class
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Enrollment"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid class id or already enrolled"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - student only"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.enrollmentService.Enroll(ctx.Request.Context(), email, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Enrollment successful"))
}

// GetEnrolledClasses lists the caller's classes with payment facts
// @Summary List enrolled classes
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param email path string true "Must match the authenticated user"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrolledClassResponse}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{email}/enrolled-classes [get]
func (c *EnrollmentController) GetEnrolledClasses(ctx *gin.Context) {
	email, ok := callerEmail(ctx)
	if !ok {
		return
	}

	classes, err := c.enrollmentService.GetEnrolledClasses(ctx.Request.Context(), email, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}
