package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	catalogService service.CatalogService
}

// NewProfileHandler sets up the routing dependencies for profile endpoints
func NewProfileHandler(catalogService service.CatalogService) *ProfileHandler {
	return &ProfileHandler{catalogService: catalogService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profileDetails")
	{
		profile.GET("/:userId", h.ListSaved)
		profile.DELETE("/remove/:controllerId", middleware.RequireAuth(), h.RemoveSaved)
	}
}

// ListSaved handles GET /profileDetails/:userId
// @Summary      Saved controllers for a user
// @Description  Returns the user's saved controllers, most recent first, with a count
// @Tags         profile
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  response.ErrorBody
// @Router       /profileDetails/{userId} [get]
func (h *ProfileHandler) ListSaved(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid user id"))
		return
	}

	views, err := h.catalogService.ListUserControllers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"controllers": views,
		"count":       len(views),
	})
}

// RemoveSaved handles DELETE /profileDetails/remove/:controllerId
// @Summary      Remove a saved controller
// @Description  Deletes the caller's save link for the controller; other users' links are untouched
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        controllerId  path      string  true  "Controller ID"
// @Success      200           {object}  map[string]interface{}
// @Failure      403           {object}  response.ErrorBody
// @Failure      404           {object}  response.ErrorBody
// @Router       /profileDetails/remove/{controllerId} [delete]
func (h *ProfileHandler) RemoveSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Err("User ID not found in context"))
		return
	}

	controllerID, err := uuid.Parse(c.Param("controllerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid controller id"))
		return
	}

	if err := h.catalogService.RemoveSavedController(c.Request.Context(), userID, controllerID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Err("You do not have permission to remove this controller"))
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, response.Err("Controller not found"))
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Controller removed successfully",
		"controllerId": controllerID,
	})
}
