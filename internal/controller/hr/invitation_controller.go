package hr

import (
	"errors"
	"io"
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type InvitationController struct {
	invitationService service.InvitationService
}

func NewInvitationController(invitationService service.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

// CreateInvitation godoc
// @Summary (Admin/HR) Invite someone to a test
// @Description Returns a link with a one-time token and its QR code as base64 PNG. Default expiry is 72 hours.
// @Tags HR - Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param invitation body dto.InvitationCreateDTO false "Optional email and expiry"
// @Success 201 {object} dto.InvitationResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/invitations [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.InvitationCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.invitationService.Create(ctx.Request.Context(), testID, req, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create invitation")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
