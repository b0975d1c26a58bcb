package model

import (
	"time"

	"gorm.io/datatypes"
)

// SiteSettingsKey is the fixed key of the single settings row.
const SiteSettingsKey = "default"

// SiteSettings holds the public site configuration as a singleton row
// keyed by SiteSettingsKey. Writes upsert that row; it is never deleted.
type SiteSettings struct {
	Key          string         `gorm:"type:varchar(32);primaryKey" json:"-"`
	ClinicName   string         `gorm:"type:varchar(200)" json:"clinicName"`
	Tagline      *string        `gorm:"type:varchar(300)" json:"tagline"`
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`
	Email        string         `gorm:"type:varchar(320)" json:"email"`
	Address      string         `gorm:"type:varchar(500)" json:"address"`
	OpeningHours string         `gorm:"type:varchar(500)" json:"openingHours"`
	SocialLinks  datatypes.JSON `gorm:"type:jsonb" json:"socialLinks"`
	HeroImage    *string        `gorm:"type:varchar(500)" json:"heroImage"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SiteSettings) TableName() string { return "site_settings" }
