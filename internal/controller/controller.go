package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/middleware"
	"github.com/MaxKochergin/NNGP-sub002/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// RespondError writes err as an ErrorResponse with the status mapped from its sentinel.
func RespondError(ctx *gin.Context, err error, message string) {
	status := common.HTTPStatusFromError(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("request_id", ctx.GetString(middleware.RequestIDKey)).Int("status", status).Msg(message)

	details := []string{err.Error()}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		details = nil
	}
	ctx.Error(err)
	ctx.AbortWithStatusJSON(status, dto.ErrorResponse{Message: message, Details: details})
}

// RespondBindError answers 400 with one detail per failed field.
func RespondBindError(ctx *gin.Context, err error) {
	var details []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details = append(details, fe.Field()+": failed on '"+fe.Tag()+"'")
		}
	} else {
		details = []string{err.Error()}
	}
	log.Warn().Err(err).Str("request_id", ctx.GetString(middleware.RequestIDKey)).Msg("Failed to bind request")
	ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request", Details: details})
}

// ParseIDParam reads a positive numeric path parameter. On failure it answers 400 and returns false.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// Actor builds the service caller from the token claims set by middleware.Authenticate.
func Actor(ctx *gin.Context) service.Actor {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		return service.Actor{}
	}
	return service.Actor{UserID: claims.UserID, Roles: claims.Roles}
}
