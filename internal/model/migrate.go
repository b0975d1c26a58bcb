package model

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every model, parents
// before the tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Patient{},
		&Service{},
		&PatientServiceUsage{},
		&PatientAccount{},
		&Doctor{},
		&Blog{},
		&SpecialtyClinic{},
		&SiteSettings{},
		&Appointment{},
	)
}
