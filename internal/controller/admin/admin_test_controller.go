package admin

import (
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
	questionService  service.QuestionService
}

func NewAdminTestController(adminTestService service.AdminTestService, questionService service.QuestionService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService, questionService: questionService}
}

// CreateTest godoc
// @Summary (Admin/HR) Create a new test
// @Description Creates a test together with its questions and answer options in one transaction.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_data body dto.TestCreateDTO true "Test with questions"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data (e.g. a SINGLE_CHOICE question without exactly one correct option)"
// @Failure 404 {object} dto.ErrorResponse "Unknown specialization"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}

	testResp, err := c.adminTestService.CreateTest(ctx.Request.Context(), req, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// UpdateTest godoc
// @Summary (Admin/HR) Update test metadata
// @Description Changes title, description, duration, publication and specializations. Omitted fields stay as they are.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param test_data body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	testResp, err := c.adminTestService.UpdateTest(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update test")
		return
	}
	ctx.JSON(http.StatusOK, testResp)
}

// DeleteTest godoc
// @Summary (Admin/HR) Delete a test
// @Tags Admin - Tests
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.adminTestService.DeleteTest(ctx.Request.Context(), testID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete test")
		return
	}
	log.Info().Uint("testID", testID).Uint("by", controller.Actor(ctx).UserID).Msg("Admin DeleteTest: done")
	ctx.Status(http.StatusNoContent)
}

// AddQuestion godoc
// @Summary (Admin/HR) Add a question to a test
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param question body dto.QuestionCreateDTO true "Question with options"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/questions [post]
func (c *AdminTestController) AddQuestion(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.questionService.AddQuestion(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to add question")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary (Admin/HR) Replace a question
// @Description Replaces the question content and its whole option set.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionCreateDTO true "Question with options"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [put]
func (c *AdminTestController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.questionService.UpdateQuestion(ctx.Request.Context(), questionID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin/HR) Delete a question
// @Tags Admin - Questions
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [delete]
func (c *AdminTestController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), questionID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.Status(http.StatusNoContent)
}
