package admin

import (
	"net/http"

	"github.com/MaxKochergin/NNGP-sub002/internal/controller"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers godoc
// @Summary (Admin/HR) List users
// @Description Paginated list. HR only sees candidates.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page, from 1"
// @Param per_page query int false "Page size, max 200"
// @Param role query string false "Role filter"
// @Param search query string false "Matches email or name"
// @Success 200 {object} dto.UserListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var query dto.UserListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.userService.List(ctx.Request.Context(), query, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to list users")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary (Admin/HR) Get a user
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.userService.Get(ctx.Request.Context(), id, controller.Actor(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to get user")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary (Admin) Create a user with roles
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.userService.Create(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create user")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateUser godoc
// @Summary (Admin) Update a user
// @Description Omitted fields stay as they are. A roles list replaces the user's roles.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.userService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update user")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary (Admin) Soft-delete a user
// @Tags Admin - Users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "Cannot delete yourself"
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.userService.Delete(ctx.Request.Context(), id, controller.Actor(ctx)); err != nil {
		controller.RespondError(ctx, err, "Failed to delete user")
		return
	}
	ctx.Status(http.StatusNoContent)
}
