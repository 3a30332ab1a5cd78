package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive-api/internal/api/handler/v1/response"
	"github.com/eventhive/eventhive-api/internal/api/middleware"
	"github.com/eventhive/eventhive-api/internal/domain"
)

var errNotAuthenticated = errors.New("not authenticated")

func currentUserID(ctx *gin.Context) (uint, *response.Err) {
	value, ok := ctx.Get(middleware.CtxKeyUserID)
	if !ok {
		return 0, response.ErrUnauthorized(errNotAuthenticated)
	}

	id, ok := value.(uint)
	if !ok {
		return 0, response.ErrUnauthorized(errNotAuthenticated)
	}

	return id, nil
}

func currentUserRole(ctx *gin.Context) (domain.Role, *response.Err) {
	value, ok := ctx.Get(middleware.CtxKeyUserRole)
	if !ok {
		return "", response.ErrUnauthorized(errNotAuthenticated)
	}

	role, ok := value.(domain.Role)
	if !ok {
		return "", response.ErrUnauthorized(errNotAuthenticated)
	}

	return role, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v", name))
	}

	return uint(id), nil
}
