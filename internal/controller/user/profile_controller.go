package user

import (
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetMyProfile godoc
// @Summary Get the caller's profile
// @Tags User - Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /profiles/me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	resp, err := c.profileService.GetMine(ctx.Request.Context(), controller.Actor(ctx).UserID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to get profile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateMyProfile godoc
// @Summary Update the caller's profile
// @Tags User - Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown specialization"
// @Router /profiles/me [put]
func (c *ProfileController) UpdateMyProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.profileService.UpdateMine(ctx.Request.Context(), controller.Actor(ctx).UserID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update profile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetUserProfile godoc
// @Summary (Admin/HR) Get a user's profile
// @Tags User - Profile
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /profiles/{user_id} [get]
func (c *ProfileController) GetUserProfile(ctx *gin.Context) {
	userID, ok := controller.ParseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	resp, err := c.profileService.GetByUser(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to get profile")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
