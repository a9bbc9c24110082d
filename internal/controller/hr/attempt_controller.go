package hr

import (
	"fmt"
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	attemptService service.TestAttemptService
	reportService  service.ReportService
	reviewService  service.AnswerReviewService
}

func NewAttemptController(
	attemptService service.TestAttemptService,
	reportService service.ReportService,
	reviewService service.AnswerReviewService,
) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		reportService:  reportService,
		reviewService:  reviewService,
	}
}

// ListAttempts godoc
// @Summary (Admin/HR) List test attempts
// @Tags HR - Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id query int false "Test filter"
// @Param user_id query int false "User filter"
// @Param status query string false "IN_PROGRESS or COMPLETED"
// @Param page query int false "Page, from 1"
// @Param per_page query int false "Page size, max 200"
// @Success 200 {object} dto.AttemptListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /test-attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	var query dto.AttemptListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.attemptService.ListAttempts(ctx.Request.Context(), query)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to list attempts")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AttemptReport godoc
// @Summary (Admin/HR) PDF report of a completed attempt
// @Tags HR - Attempts
// @Produce application/pdf
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not completed"
// @Router /test-attempts/{attempt_id}/report [get]
func (c *AttemptController) AttemptReport(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	pdf, err := c.reportService.AttemptPDF(ctx.Request.Context(), attemptID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to build attempt report")
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attempt_%d.pdf", attemptID))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// ReviewAttempt godoc
// @Summary (Admin/HR) Request AI reviews of text answers
// @Description Sends every TEXT answer of a completed attempt to the LLM. Reviews are advisory and never change the score.
// @Tags HR - Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 201 {array} dto.AnswerReviewDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not completed"
// @Failure 503 {object} dto.ErrorResponse "AI review not configured"
// @Router /test-attempts/{attempt_id}/reviews [post]
func (c *AttemptController) ReviewAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	reviews, err := c.reviewService.ReviewAttempt(ctx.Request.Context(), attemptID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to review attempt")
		return
	}
	ctx.JSON(http.StatusCreated, reviews)
}

// ListReviews godoc
// @Summary (Admin/HR) List AI reviews of an attempt
// @Tags HR - Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {array} dto.AnswerReviewDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /test-attempts/{attempt_id}/reviews [get]
func (c *AttemptController) ListReviews(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	reviews, err := c.reviewService.ListReviews(ctx.Request.Context(), attemptID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to list reviews")
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}
