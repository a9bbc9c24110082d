package catalog

import (
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type LearningMaterialController struct {
	materialService service.LearningMaterialService
}

func NewLearningMaterialController(materialService service.LearningMaterialService) *LearningMaterialController {
	return &LearningMaterialController{materialService: materialService}
}

// ListMaterials godoc
// @Summary List learning materials
// @Description Candidates and employees only see published materials.
// @Tags Catalog - Learning materials
// @Produce json
// @Security BearerAuth
// @Param specialization_id query int false "Specialization filter"
// @Param page query int false "Page, from 1"
// @Param per_page query int false "Page size, max 200"
// @Success 200 {object} dto.LearningMaterialListResponse
// @Router /learning-materials [get]
func (c *LearningMaterialController) ListMaterials(ctx *gin.Context) {
	var query dto.LearningMaterialQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.materialService.List(ctx.Request.Context(), query, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to list learning materials")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetMaterial godoc
// @Summary Get a learning material
// @Tags Catalog - Learning materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {object} dto.LearningMaterialResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /learning-materials/{id} [get]
func (c *LearningMaterialController) GetMaterial(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.materialService.Get(ctx.Request.Context(), id, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to get learning material")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateMaterial godoc
// @Summary (Admin/HR) Create a learning material
// @Tags Catalog - Learning materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param material body dto.CreateLearningMaterialRequest true "Material"
// @Success 201 {object} dto.LearningMaterialResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /learning-materials [post]
func (c *LearningMaterialController) CreateMaterial(ctx *gin.Context) {
	var req dto.CreateLearningMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.materialService.Create(ctx.Request.Context(), req, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create learning material")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateMaterial godoc
// @Summary (Admin/HR) Update or publish a learning material
// @Tags Catalog - Learning materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Param material body dto.UpdateLearningMaterialRequest true "Fields to change"
// @Success 200 {object} dto.LearningMaterialResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /learning-materials/{id} [put]
func (c *LearningMaterialController) UpdateMaterial(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateLearningMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.materialService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update learning material")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteMaterial godoc
// @Summary (Admin/HR) Delete a learning material
// @Tags Catalog - Learning materials
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /learning-materials/{id} [delete]
func (c *LearningMaterialController) DeleteMaterial(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.materialService.Delete(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, err, "Failed to delete learning material")
		return
	}
	ctx.Status(http.StatusNoContent)
}
