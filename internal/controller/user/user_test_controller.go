package user

import (
	"net/http"
	"strconv"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService    service.UserTestService
	testAttemptService service.TestAttemptService
}

func NewUserTestController(uts service.UserTestService, tas service.TestAttemptService) *UserTestController {
	return &UserTestController{
		userTestService:    uts,
		testAttemptService: tas,
	}
}

// GetAllTests godoc
// @Summary List available tests
// @Description Takers see published tests only. Admin and HR see every test.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests(ctx.Request.Context(), controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get details of a specific test
// @Description Full test with questions and options. Correct options are only shown to admin and HR.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	testDetails, err := c.userTestService.GetTestDetails(ctx.Request.Context(), testID, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to get test details")
		return
	}
	ctx.JSON(http.StatusOK, testDetails)
}

// StartTest godoc
// @Summary Start a test attempt
// @Description Creates an IN_PROGRESS attempt, or returns the one already open for this user and test.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found or not published"
// @Failure 409 {object} dto.ErrorResponse "A concurrent start is in progress"
// @Failure 503 {object} dto.ErrorResponse "Lock backend unavailable"
// @Router /tests/{test_id}/start [post]
func (c *UserTestController) StartTest(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	attempt, err := c.testAttemptService.StartTest(ctx.Request.Context(), testID, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to start test")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitTest godoc
// @Summary Submit answers for an entire test
// @Description Grades the answers and completes the caller's IN_PROGRESS attempt. Unknown question ids are skipped and listed in skipped_question_ids.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "ID of the Test being attempted"
// @Param submission_data body dto.TestAttemptSubmitDTO true "List of answers"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "No attempt in progress"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /tests/{test_id}/submit [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}

	var req dto.TestAttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	actor := controller.Actor(ctx)
	log.Info().Uint("testID", testID).Uint("userID", actor.UserID).Int("answerCount", len(req.Answers)).Msg("Received request to submit test attempt")

	attemptDetail, err := c.testAttemptService.SubmitTest(ctx.Request.Context(), testID, actor, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit test attempt")
		return
	}
	ctx.JSON(http.StatusOK, attemptDetail)
}

// GetMyAttempts godoc
// @Summary Get the caller's attempts for a test
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Router /tests/{test_id}/my-attempts [get]
func (c *UserTestController) GetMyAttempts(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	attempts, err := c.testAttemptService.GetUserAttempts(ctx.Request.Context(), &testID, controller.Actor(ctx).UserID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetMyAllAttempts godoc
// @Summary Get all of the caller's attempts
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id query int false "Only attempts of this test"
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Router /test-attempts/mine [get]
func (c *UserTestController) GetMyAllAttempts(ctx *gin.Context) {
	var testID *uint
	if raw := ctx.Query("test_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format in query"})
			return
		}
		id := uint(val)
		testID = &id
	}
	attempts, err := c.testAttemptService.GetUserAttempts(ctx.Request.Context(), testID, controller.Actor(ctx).UserID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetTestAttemptDetails godoc
// @Summary Get an attempt with its answers
// @Description The owner, admin or HR may read an attempt. Answers follow question order.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /test-attempts/{attempt_id} [get]
func (c *UserTestController) GetTestAttemptDetails(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	attemptDetail, err := c.testAttemptService.GetTestAttemptDetails(ctx.Request.Context(), attemptID, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempt")
		return
	}
	ctx.JSON(http.StatusOK, attemptDetail)
}
