package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformLinkRow is one controller→platform edge joined with the
// platform name.
type PlatformLinkRow struct {
	ControllerID       uuid.UUID
	Name               string
	CompatibilityNotes string
	RequiresAdapter    bool
}

// NeedLinkRow is one controller→functional-need edge joined with the
// need name.
type NeedLinkRow struct {
	ControllerID uuid.UUID
	Name         string
	Suitability  string
}

// ControllerRepository defines data access for the catalog: controller
// rows, their junction edges and the fixed reference tables.
type ControllerRepository interface {
	Create(ctx context.Context, controller *model.Controller) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Controller, error)
	List(ctx context.Context) ([]model.Controller, error)
	PlatformLinks(ctx context.Context, controllerIDs []uuid.UUID) ([]PlatformLinkRow, error)
	NeedLinks(ctx context.Context, controllerIDs []uuid.UUID) ([]NeedLinkRow, error)
	FindPlatformByName(ctx context.Context, name string) (*model.Platform, error)
	FindNeedByName(ctx context.Context, name string) (*model.FunctionalNeed, error)
	CreatePlatformLink(ctx context.Context, link *model.ControllerPlatform) error
	CreateNeedLink(ctx context.Context, link *model.ControllerNeed) error
}

type controllerRepository struct {
	db *gorm.DB
}

func NewControllerRepository(db *gorm.DB) ControllerRepository {
	return &controllerRepository{db: db}
}

func (r *controllerRepository) Create(ctx context.Context, controller *model.Controller) error {
	return GetDB(ctx, r.db).Create(controller).Error
}

func (r *controllerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Controller, error) {
	var controller model.Controller
	if err := GetDB(ctx, r.db).First(&controller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &controller, nil
}

func (r *controllerRepository) List(ctx context.Context) ([]model.Controller, error) {
	var controllers []model.Controller
	if err := GetDB(ctx, r.db).Order("created_at").Find(&controllers).Error; err != nil {
		return nil, err
	}
	return controllers, nil
}

func (r *controllerRepository) PlatformLinks(ctx context.Context, controllerIDs []uuid.UUID) ([]PlatformLinkRow, error) {
	if len(controllerIDs) == 0 {
		return nil, nil
	}

	var rows []PlatformLinkRow
	err := GetDB(ctx, r.db).
		Table("controller_platforms cp").
		Select("cp.controller_id, p.name, cp.compatibility_notes, cp.requires_adapter").
		Joins("JOIN platforms p ON p.id = cp.platform_id").
		Where("cp.controller_id IN ?", controllerIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *controllerRepository) NeedLinks(ctx context.Context, controllerIDs []uuid.UUID) ([]NeedLinkRow, error) {
	if len(controllerIDs) == 0 {
		return nil, nil
	}

	var rows []NeedLinkRow
	err := GetDB(ctx, r.db).
		Table("controller_needs cn").
		Select("cn.controller_id, fn.name, cn.suitability").
		Joins("JOIN functional_needs fn ON fn.id = cn.need_id").
		Where("cn.controller_id IN ?", controllerIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *controllerRepository) FindPlatformByName(ctx context.Context, name string) (*model.Platform, error) {
	var platform model.Platform
	if err := GetDB(ctx, r.db).First(&platform, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &platform, nil
}

func (r *controllerRepository) FindNeedByName(ctx context.Context, name string) (*model.FunctionalNeed, error) {
	var need model.FunctionalNeed
	if err := GetDB(ctx, r.db).First(&need, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &need, nil
}

func (r *controllerRepository) CreatePlatformLink(ctx context.Context, link *model.ControllerPlatform) error {
	return GetDB(ctx, r.db).Create(link).Error
}

func (r *controllerRepository) CreateNeedLink(ctx context.Context, link *model.ControllerNeed) error {
	return GetDB(ctx, r.db).Create(link).Error
}

// SavedControllerRow is a saved catalog entry joined with its save
// metadata, for the profile listing.
type SavedControllerRow struct {
	ControllerID     uuid.UUID
	Name             string
	Manufacturer     string
	Type             string
	Price            float64
	ReleaseDate      *time.Time
	ProductURL       string
	ImageURL         string
	UserControllerID uuid.UUID
	SaveDate         time.Time
}

// SavedControllerRepository defines data access for user-saved
// controller links.
type SavedControllerRepository interface {
	Find(ctx context.Context, userID, controllerID uuid.UUID) (*model.UserController, error)
	Create(ctx context.Context, link *model.UserController) error
	// Delete returns the number of rows removed so the service can
	// distinguish a lost race from success.
	Delete(ctx context.Context, userID, controllerID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedControllerRow, error)
}

type savedControllerRepository struct {
	db *gorm.DB
}

func NewSavedControllerRepository(db *gorm.DB) SavedControllerRepository {
	return &savedControllerRepository{db: db}
}

func (r *savedControllerRepository) Find(ctx context.Context, userID, controllerID uuid.UUID) (*model.UserController, error) {
	var link model.UserController
	err := GetDB(ctx, r.db).
		First(&link, "user_id = ? AND controller_id = ?", userID, controllerID).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *savedControllerRepository) Create(ctx context.Context, link *model.UserController) error {
	return GetDB(ctx, r.db).Create(link).Error
}

func (r *savedControllerRepository) Delete(ctx context.Context, userID, controllerID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).
		Where("user_id = ? AND controller_id = ?", userID, controllerID).
		Delete(&model.UserController{})
	return result.RowsAffected, result.Error
}

func (r *savedControllerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedControllerRow, error) {
	var rows []SavedControllerRow
	err := GetDB(ctx, r.db).
		Table("user_controllers uc").
		Select("c.id AS controller_id, c.name, c.manufacturer, c.type, c.price, c.release_date, c.product_url, c.image_url, uc.id AS user_controller_id, uc.save_date").
		Joins("JOIN controllers c ON c.id = uc.controller_id").
		Where("uc.user_id = ?", userID).
		Order("uc.save_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
