package catalog

import (
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type SpecializationController struct {
	specService service.SpecializationService
}

func NewSpecializationController(specService service.SpecializationService) *SpecializationController {
	return &SpecializationController{specService: specService}
}

// ListSpecializations godoc
// @Summary List specializations
// @Tags Catalog - Specializations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SpecializationResponse
// @Router /specializations [get]
func (c *SpecializationController) ListSpecializations(ctx *gin.Context) {
	resp, err := c.specService.List(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err, "Failed to list specializations")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSpecialization godoc
// @Summary Get a specialization
// @Tags Catalog - Specializations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Specialization ID"
// @Success 200 {object} dto.SpecializationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /specializations/{id} [get]
func (c *SpecializationController) GetSpecialization(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.specService.Get(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to get specialization")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateSpecialization godoc
// @Summary (Admin/HR) Create a specialization
// @Description The slug is derived from the name.
// @Tags Catalog - Specializations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param specialization body dto.SpecializationRequest true "Specialization"
// @Success 201 {object} dto.SpecializationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Router /specializations [post]
func (c *SpecializationController) CreateSpecialization(ctx *gin.Context) {
	var req dto.SpecializationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.specService.Create(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create specialization")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateSpecialization godoc
// @Summary (Admin/HR) Update a specialization
// @Tags Catalog - Specializations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Specialization ID"
// @Param specialization body dto.SpecializationRequest true "Specialization"
// @Success 200 {object} dto.SpecializationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Router /specializations/{id} [put]
func (c *SpecializationController) UpdateSpecialization(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SpecializationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.specService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update specialization")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteSpecialization godoc
// @Summary (Admin/HR) Delete a specialization
// @Tags Catalog - Specializations
// @Security BearerAuth
// @Param id path int true "Specialization ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /specializations/{id} [delete]
func (c *SpecializationController) DeleteSpecialization(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.specService.Delete(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, err, "Failed to delete specialization")
		return
	}
	ctx.Status(http.StatusNoContent)
}
