package models

import (
	"time"

	"gorm.io/gorm"
)

// Service represents a catalog entry customers can request quotes for
type Service struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"` // URL identifier, e.g. "web-development"
	Name       string         `gorm:"not null" json:"name"`
	Summary    string         `gorm:"type:text" json:"summary"`
	Category   string         `gorm:"index" json:"category"` // "development", "hosting", "training", ...
	PriceRange string         `json:"price_range"`           // display string, e.g. "500 000 - 2 000 000 FCFA"
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
