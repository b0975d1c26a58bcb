package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Service is a catalog entry. Services form a two-level hierarchy: a
// root service may have children, and a child may not be a parent
// itself. parent_id != id is enforced at write time.
type Service struct {
	Base
	Name             string         `gorm:"type:varchar(150);not null" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	ShortDescription *string        `gorm:"type:varchar(300)" json:"shortDescription"`
	DurationMinutes  *int           `json:"durationMinutes"`
	Priority         int            `gorm:"not null" json:"priority"`
	Active           bool           `gorm:"not null" json:"active"`
	Images           datatypes.JSON `gorm:"type:jsonb" json:"images"`
	ParentID         *uuid.UUID     `gorm:"type:uuid;index" json:"parentId"`

	Parent   *Service  `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Children []Service `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
