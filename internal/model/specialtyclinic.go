package model

// SpecialtyClinic is a content card for a focus area of the clinic.
type SpecialtyClinic struct {
	Base
	Name        string  `gorm:"type:varchar(150);not null" json:"name"`
	Title       *string `gorm:"type:varchar(250)" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Image       *string `gorm:"type:varchar(500)" json:"image"`
	Priority    int     `gorm:"not null" json:"priority"`
	Active      bool    `gorm:"not null" json:"active"`
}
