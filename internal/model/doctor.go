package model

import "gorm.io/datatypes"

// Doctor is a public-facing profile, independent of appointments.
type Doctor struct {
	Base
	FirstName       string         `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName        string         `gorm:"type:varchar(100);not null" json:"lastName"`
	Title           string         `gorm:"type:varchar(150)" json:"title"`
	Specialty       string         `gorm:"type:varchar(150)" json:"specialty"`
	ShortBio        string         `gorm:"type:varchar(500)" json:"shortBio"`
	LongBio         string         `gorm:"type:text" json:"longBio"`
	Email           *string        `gorm:"type:varchar(320);uniqueIndex:uq_doctors_email" json:"email"`
	Phone           *string        `gorm:"type:varchar(32);uniqueIndex:uq_doctors_phone" json:"phone"`
	YearsExperience int            `gorm:"not null" json:"yearsExperience"`
	Priority        int            `gorm:"not null" json:"priority"`
	Photo           *string        `gorm:"type:varchar(500)" json:"photo"`
	Gallery         datatypes.JSON `gorm:"type:jsonb" json:"gallery"`
	Active          bool           `gorm:"not null" json:"active"`
	Featured        bool           `gorm:"not null" json:"featured"`
}
