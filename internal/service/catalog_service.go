package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs

// PlatformLink is one platform edge of a controller view, carrying the
// junction metadata.
type PlatformLink struct {
	Name               string `json:"name"`
	CompatibilityNotes string `json:"compatibility_notes"`
	RequiresAdapter    bool   `json:"requires_adapter"`
}

// NeedLink is one functional-need edge of a controller view.
type NeedLink struct {
	Name        string `json:"name"`
	Suitability string `json:"suitability"`
}

// ControllerView folds a controller row with all of its platform and
// need edges. Controllers with zero links keep empty, non-nil slices.
type ControllerView struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Manufacturer string         `json:"manufacturer"`
	Type         string         `json:"type"`
	Price        float64        `json:"price"`
	ReleaseDate  *time.Time     `json:"release_date"`
	ProductURL   string         `json:"product_url"`
	ImageURL     string         `json:"image_url"`
	Platforms    []PlatformLink `json:"platforms"`
	Needs        []NeedLink     `json:"needs"`
}

// SavedControllerView annotates a controller view with save metadata.
type SavedControllerView struct {
	ControllerView
	UserControllerID uuid.UUID `json:"user_controller_id"`
	SaveDate         time.Time `json:"save_date"`
}

type ControllerDef struct {
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Type         string   `json:"type"`
	Price        *float64 `json:"price"`
	ReleaseDate  string   `json:"release_date"` // YYYY-MM-DD, optional
	ProductURL   string   `json:"product_url"`
	ImageURL     string   `json:"image_url"`
}

type PlatformSelection struct {
	PlatformName       string `json:"platform_name"`
	CompatibilityNotes string `json:"compatibility_notes"`
	RequiresAdapter    bool   `json:"requires_adapter"`
}

type NeedSelection struct {
	NeedName    string `json:"need_name"`
	Suitability string `json:"suitability"`
}

type CreateControllerRequest struct {
	Controller      ControllerDef       `json:"controller"`
	Platforms       []PlatformSelection `json:"platforms"`
	FunctionalNeeds []NeedSelection     `json:"functional_needs"`
}

// CatalogEvent is the payload broadcast on the websocket hub when the
// catalog changes.
type CatalogEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// CatalogService defines the catalog aggregation and mutation logic.
type CatalogService interface {
	ListControllers(ctx context.Context) ([]ControllerView, error)
	GetController(ctx context.Context, id uuid.UUID) (*ControllerView, error)
	CreateController(ctx context.Context, req CreateControllerRequest) (uuid.UUID, error)
	SaveController(ctx context.Context, userID, controllerID uuid.UUID) (uuid.UUID, error)
	ListUserControllers(ctx context.Context, userID uuid.UUID) ([]SavedControllerView, error)
	RemoveSavedController(ctx context.Context, userID, controllerID uuid.UUID) error
}

type catalogService struct {
	controllers repository.ControllerRepository
	saved       repository.SavedControllerRepository
	txManager   repository.TransactionManager
	hub         interface{ GetBroadcast() chan []byte } // optional websocket hub
}

// NewCatalogService returns a new instance of CatalogService. The hub
// may be nil (tests).
func NewCatalogService(
	controllers repository.ControllerRepository,
	saved repository.SavedControllerRepository,
	txManager repository.TransactionManager,
	hub interface{ GetBroadcast() chan []byte },
) CatalogService {
	return &catalogService{
		controllers: controllers,
		saved:       saved,
		txManager:   txManager,
		hub:         hub,
	}
}

func (s *catalogService) broadcast(event string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(CatalogEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case s.hub.GetBroadcast() <- payload:
	default:
		// Hub not draining; catalog events are best-effort.
	}
}

func viewFromModel(c *model.Controller) ControllerView {
	return ControllerView{
		ID:           c.ID,
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		Type:         c.Type,
		Price:        c.Price,
		ReleaseDate:  c.ReleaseDate,
		ProductURL:   c.ProductURL,
		ImageURL:     c.ImageURL,
		Platforms:    []PlatformLink{},
		Needs:        []NeedLink{},
	}
}

// attachLinks loads the platform and need edges for the given views in
// two queries and folds them into the per-controller collections.
func (s *catalogService) attachLinks(ctx context.Context, views map[uuid.UUID]*ControllerView) error {
	ids := make([]uuid.UUID, 0, len(views))
	for id := range views {
		ids = append(ids, id)
	}

	platformRows, err := s.controllers.PlatformLinks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load platform links: %w", err)
	}
	for _, row := range platformRows {
		if view, ok := views[row.ControllerID]; ok {
			view.Platforms = append(view.Platforms, PlatformLink{
				Name:               row.Name,
				CompatibilityNotes: row.CompatibilityNotes,
				RequiresAdapter:    row.RequiresAdapter,
			})
		}
	}

	needRows, err := s.controllers.NeedLinks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load need links: %w", err)
	}
	for _, row := range needRows {
		if view, ok := views[row.ControllerID]; ok {
			view.Needs = append(view.Needs, NeedLink{
				Name:        row.Name,
				Suitability: row.Suitability,
			})
		}
	}

	return nil
}

func (s *catalogService) ListControllers(ctx context.Context) ([]ControllerView, error) {
	controllers, err := s.controllers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list controllers: %w", err)
	}

	views := make([]ControllerView, len(controllers))
	byID := make(map[uuid.UUID]*ControllerView, len(controllers))
	for i := range controllers {
		views[i] = viewFromModel(&controllers[i])
		byID[controllers[i].ID] = &views[i]
	}

	if err := s.attachLinks(ctx, byID); err != nil {
		return nil, err
	}

	return views, nil
}

func (s *catalogService) GetController(ctx context.Context, id uuid.UUID) (*ControllerView, error) {
	controller, err := s.controllers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load controller: %w", err)
	}

	view := viewFromModel(controller)
	if err := s.attachLinks(ctx, map[uuid.UUID]*ControllerView{view.ID: &view}); err != nil {
		return nil, err
	}

	return &view, nil
}

func (s *catalogService) CreateController(ctx context.Context, req CreateControllerRequest) (uuid.UUID, error) {
	var missing []string
	if req.Controller.Name == "" {
		missing = append(missing, "name")
	}
	if req.Controller.Manufacturer == "" {
		missing = append(missing, "manufacturer")
	}
	if req.Controller.Type == "" {
		missing = append(missing, "type")
	}
	if len(req.Platforms) == 0 {
		missing = append(missing, "platforms")
	}
	if len(req.FunctionalNeeds) == 0 {
		missing = append(missing, "functional_needs")
	}
	if len(missing) > 0 {
		return uuid.Nil, NewValidationError(missing...)
	}

	price := 0.0
	if req.Controller.Price != nil {
		if decimal.NewFromFloat(*req.Controller.Price).IsNegative() {
			return uuid.Nil, NewValidationError("price")
		}
		price = *req.Controller.Price
	}

	var releaseDate *time.Time
	if req.Controller.ReleaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.Controller.ReleaseDate)
		if err != nil {
			return uuid.Nil, NewValidationError("release_date")
		}
		releaseDate = &parsed
	}

	// Resolve every referenced platform and need up front so a typo
	// fails the whole request before anything is written.
	platformIDs := make([]uuid.UUID, len(req.Platforms))
	for i, sel := range req.Platforms {
		platform, err := s.controllers.FindPlatformByName(ctx, sel.PlatformName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, fmt.Errorf("%w: platform '%s'", ErrUnknownReference, sel.PlatformName)
			}
			return uuid.Nil, fmt.Errorf("failed to look up platform: %w", err)
		}
		platformIDs[i] = platform.ID
	}

	needIDs := make([]uuid.UUID, len(req.FunctionalNeeds))
	for i, sel := range req.FunctionalNeeds {
		need, err := s.controllers.FindNeedByName(ctx, sel.NeedName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, fmt.Errorf("%w: functional need '%s'", ErrUnknownReference, sel.NeedName)
			}
			return uuid.Nil, fmt.Errorf("failed to look up functional need: %w", err)
		}
		needIDs[i] = need.ID
	}

	controller := model.Controller{
		Name:         req.Controller.Name,
		Manufacturer: req.Controller.Manufacturer,
		Type:         req.Controller.Type,
		Price:        price,
		ReleaseDate:  releaseDate,
		ProductURL:   req.Controller.ProductURL,
		ImageURL:     req.Controller.ImageURL,
	}

	// The controller row and every junction row commit together; a
	// failed link insert rolls back the parent row instead of leaving a
	// partially linked controller behind.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.controllers.Create(txCtx, &controller); err != nil {
			return fmt.Errorf("failed to create controller: %w", err)
		}

		for i, sel := range req.Platforms {
			link := model.ControllerPlatform{
				ControllerID:       controller.ID,
				PlatformID:         platformIDs[i],
				CompatibilityNotes: sel.CompatibilityNotes,
				RequiresAdapter:    sel.RequiresAdapter,
			}
			if err := s.controllers.CreatePlatformLink(txCtx, &link); err != nil {
				return fmt.Errorf("failed to link platform '%s': %w", sel.PlatformName, err)
			}
		}

		for i, sel := range req.FunctionalNeeds {
			link := model.ControllerNeed{
				ControllerID: controller.ID,
				NeedID:       needIDs[i],
				Suitability:  sel.Suitability,
			}
			if err := s.controllers.CreateNeedLink(txCtx, &link); err != nil {
				return fmt.Errorf("failed to link functional need '%s': %w", sel.NeedName, err)
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.broadcast("controller_created", map[string]interface{}{
		"controller_id": controller.ID.String(),
		"name":          controller.Name,
		"manufacturer":  controller.Manufacturer,
	})

	return controller.ID, nil
}

func (s *catalogService) SaveController(ctx context.Context, userID, controllerID uuid.UUID) (uuid.UUID, error) {
	if _, err := s.controllers.FindByID(ctx, controllerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load controller: %w", err)
	}

	if _, err := s.saved.Find(ctx, userID, controllerID); err == nil {
		return uuid.Nil, ErrConflict
	}

	link := model.UserController{
		UserID:       userID,
		ControllerID: controllerID,
		SaveDate:     time.Now(),
	}
	if err := s.saved.Create(ctx, &link); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save controller: %w", err)
	}

	s.broadcast("controller_saved", map[string]interface{}{
		"controller_id": controllerID.String(),
		"user_id":       userID.String(),
	})

	return link.ID, nil
}

func (s *catalogService) ListUserControllers(ctx context.Context, userID uuid.UUID) ([]SavedControllerView, error) {
	rows, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved controllers: %w", err)
	}

	views := make([]SavedControllerView, len(rows))
	byID := make(map[uuid.UUID]*ControllerView, len(rows))
	for i, row := range rows {
		views[i] = SavedControllerView{
			ControllerView: ControllerView{
				ID:           row.ControllerID,
				Name:         row.Name,
				Manufacturer: row.Manufacturer,
				Type:         row.Type,
				Price:        row.Price,
				ReleaseDate:  row.ReleaseDate,
				ProductURL:   row.ProductURL,
				ImageURL:     row.ImageURL,
				Platforms:    []PlatformLink{},
				Needs:        []NeedLink{},
			},
			UserControllerID: row.UserControllerID,
			SaveDate:         row.SaveDate,
		}
		byID[row.ControllerID] = &views[i].ControllerView
	}

	if len(byID) > 0 {
		if err := s.attachLinks(ctx, byID); err != nil {
			return nil, err
		}
	}

	return views, nil
}

func (s *catalogService) RemoveSavedController(ctx context.Context, userID, controllerID uuid.UUID) error {
	// Ownership check first: removing a link that is not yours is a
	// permission failure, not a missing resource.
	if _, err := s.saved.Find(ctx, userID, controllerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to verify saved controller: %w", err)
	}

	affected, err := s.saved.Delete(ctx, userID, controllerID)
	if err != nil {
		return fmt.Errorf("failed to remove saved controller: %w", err)
	}
	if affected == 0 {
		// Deleted between the ownership check and the delete.
		return ErrNotFound
	}

	return nil
}
