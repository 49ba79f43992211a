package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller is a catalog entry for an accessibility-oriented game
// controller. Rows are created by admins and never updated or deleted.
type Controller struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Manufacturer string     `gorm:"type:varchar(255);not null" json:"manufacturer"`
	Type         string     `gorm:"type:varchar(100);not null" json:"type"`
	Price        float64    `json:"price"`
	ReleaseDate  *time.Time `json:"release_date"`
	ProductURL   string     `gorm:"type:varchar(512)" json:"product_url"`
	ImageURL     string     `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Controller) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Platform is a fixed reference table seeded at startup.
type Platform struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (p *Platform) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FunctionalNeed is a fixed reference table seeded at startup.
type FunctionalNeed struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (n *FunctionalNeed) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// ControllerPlatform is the controller/platform junction row. The edge
// carries compatibility metadata.
type ControllerPlatform struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ControllerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"controller_id"`
	PlatformID         uuid.UUID `gorm:"type:uuid;not null" json:"platform_id"`
	CompatibilityNotes string    `gorm:"type:varchar(512)" json:"compatibility_notes"`
	RequiresAdapter    bool      `gorm:"not null;default:false" json:"requires_adapter"`
}

func (cp *ControllerPlatform) BeforeCreate(_ *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return nil
}

// ControllerNeed is the controller/functional-need junction row.
type ControllerNeed struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ControllerID uuid.UUID `gorm:"type:uuid;not null;index" json:"controller_id"`
	NeedID       uuid.UUID `gorm:"type:uuid;not null" json:"need_id"`
	Suitability  string    `gorm:"type:varchar(100)" json:"suitability"`
}

func (cn *ControllerNeed) BeforeCreate(_ *gorm.DB) error {
	if cn.ID == uuid.Nil {
		cn.ID = uuid.New()
	}
	return nil
}

// UserController records one user-saves-controller event. The composite
// unique index rejects duplicate saves of the same controller.
type UserController struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_controller" json:"user_id"`
	ControllerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_controller" json:"controller_id"`
	SaveDate     time.Time `gorm:"not null" json:"save_date"`
}

func (uc *UserController) BeforeCreate(_ *gorm.DB) error {
	if uc.ID == uuid.Nil {
		uc.ID = uuid.New()
	}
	return nil
}
