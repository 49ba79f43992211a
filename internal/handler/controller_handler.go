package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/internal/view"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ControllerHandler struct {
	catalogService service.CatalogService
}

// NewControllerHandler sets up the routing dependencies for catalog endpoints
func NewControllerHandler(catalogService service.CatalogService) *ControllerHandler {
	return &ControllerHandler{catalogService: catalogService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ControllerHandler) RegisterRoutes(router *gin.RouterGroup) {
	controllers := router.Group("/controllers")
	{
		controllers.GET("", h.List)
		controllers.GET("/:id", h.Get)
		controllers.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), h.Create)
		controllers.POST("/user-controllers", middleware.RequireAuth(), h.Save)
	}
}

// currentUserID reads the authenticated user id set by RequireAuth.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// toViewModel converts an aggregated catalog view into the presentation
// model the filter engine operates on. The JSON shapes are identical.
func toViewModel(v service.ControllerView) view.Model {
	platforms := make([]view.Platform, len(v.Platforms))
	for i, p := range v.Platforms {
		platforms[i] = view.Platform{
			Name:               p.Name,
			CompatibilityNotes: p.CompatibilityNotes,
			RequiresAdapter:    p.RequiresAdapter,
		}
	}
	needs := make([]view.Need, len(v.Needs))
	for i, n := range v.Needs {
		needs[i] = view.Need{Name: n.Name, Suitability: n.Suitability}
	}
	return view.Model{
		ID:           v.ID.String(),
		Name:         v.Name,
		Manufacturer: v.Manufacturer,
		Type:         v.Type,
		Price:        v.Price,
		ReleaseDate:  v.ReleaseDate,
		ProductURL:   v.ProductURL,
		ImageURL:     v.ImageURL,
		Platforms:    platforms,
		Needs:        needs,
	}
}

// List handles GET /controllers
// @Summary      List controllers
// @Description  Returns every controller with its platform and functional-need links. Optional platform/adapter/feature/sort query params filter the set server-side with the same semantics the catalog page uses.
// @Tags         controllers
// @Produce      json
// @Param        platform  query     []string  false  "Platform names (OR semantics)"
// @Param        adapter   query     string    false  "all | native-only | adapter-only"
// @Param        feature   query     []string  false  "Friendly feature names (OR semantics)"
// @Param        sort      query     string    false  "relevance | price-low | price-high"
// @Param        page      query     int       false  "Page number"
// @Param        limit     query     int       false  "Items per page (0 = all)"
// @Success      200       {array}   view.Model
// @Failure      500       {object}  response.ErrorBody
// @Router       /controllers [get]
func (h *ControllerHandler) List(c *gin.Context) {
	views, err := h.catalogService.ListControllers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	models := make([]view.Model, len(views))
	for i, v := range views {
		models[i] = toViewModel(v)
	}

	state := view.FilterState{
		Platforms: c.QueryArray("platform"),
		Adapter:   c.DefaultQuery("adapter", view.AdapterAll),
		Features:  c.QueryArray("feature"),
		Sort:      c.DefaultQuery("sort", view.SortRelevance),
	}
	models = view.ApplyFilters(models, state)

	low, high := pagination.Parse(c).Slice(len(models))
	c.JSON(http.StatusOK, models[low:high])
}

// Get handles GET /controllers/:id
// @Summary      Controller detail
// @Description  Returns one controller with per-platform compatibility metadata
// @Tags         controllers
// @Produce      json
// @Param        id   path      string  true  "Controller ID"
// @Success      200  {object}  view.Model
// @Failure      404  {object}  response.ErrorBody
// @Router       /controllers/{id} [get]
func (h *ControllerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid controller id"))
		return
	}

	v, err := h.catalogService.GetController(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Err("Controller not found"))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toViewModel(*v))
}

// Create handles POST /controllers (admin only)
// @Summary      Create a controller
// @Description  Inserts a controller and all of its platform/need links in one transaction
// @Tags         controllers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateControllerRequest  true  "Controller definition with platform and need selections"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Failure      403      {object}  response.ErrorBody
// @Router       /controllers [post]
func (h *ControllerHandler) Create(c *gin.Context) {
	var req service.CreateControllerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid request payload"))
		return
	}

	controllerID, err := h.catalogService.CreateController(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Controller created successfully",
		"controller_id": controllerID,
	})
}

// Save handles POST /controllers/user-controllers
// @Summary      Save a controller to the profile
// @Description  Records a user-saves-controller link; saving the same controller twice is rejected
// @Tags         controllers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      map[string]string  true  "controller_id"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Router       /controllers/user-controllers [post]
func (h *ControllerHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Err("User ID not found in context"))
		return
	}

	var req struct {
		ControllerID string `json:"controller_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ControllerID == "" {
		c.JSON(http.StatusBadRequest, response.Err("controller_id is required"))
		return
	}

	controllerID, err := uuid.Parse(req.ControllerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid controller_id"))
		return
	}

	linkID, err := h.catalogService.SaveController(c.Request.Context(), userID, controllerID)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			c.JSON(http.StatusConflict, response.Err("Controller already saved"))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":            "Controller saved successfully",
		"user_controller_id": linkID,
	})
}
