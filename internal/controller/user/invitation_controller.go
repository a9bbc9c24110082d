package user

import (
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type InvitationController struct {
	invitationService service.InvitationService
}

func NewInvitationController(invitationService service.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

// ResolveInvitation godoc
// @Summary Resolve an invitation token
// @Tags User - Invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.InvitationResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired invitation"
// @Router /invitations/{token} [get]
func (c *InvitationController) ResolveInvitation(ctx *gin.Context) {
	resp, err := c.invitationService.Resolve(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to resolve invitation")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// InvitationQRCode godoc
// @Summary QR code of an invitation link
// @Tags User - Invitations
// @Produce png
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired invitation"
// @Router /invitations/{token}/qr [get]
func (c *InvitationController) InvitationQRCode(ctx *gin.Context) {
	png, err := c.invitationService.QRCode(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to render invitation QR code")
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}
