package handler

import (
	"errors"
	"log"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the HTTP taxonomy with a
// client-safe message. Unexpected errors are logged and collapsed to a
// fixed 500 body so internal detail never crosses the API boundary.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.Err(validationErr.Error()))
	case errors.Is(err, service.ErrUnknownReference):
		c.JSON(http.StatusBadRequest, response.Err(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Err("Invalid credentials"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Err("You do not have permission to perform this action"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Err("Resource not found"))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, response.Err("Resource already exists"))
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, response.Err("Internal server error"))
	}
}
