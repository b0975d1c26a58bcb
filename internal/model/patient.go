package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Base
	FirstName   string     `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"lastName"`
	Phone       *string    `gorm:"type:varchar(32);uniqueIndex:uq_patients_phone" json:"phone"`
	Email       *string    `gorm:"type:varchar(320);uniqueIndex:uq_patients_email" json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Notes       string     `gorm:"type:text" json:"notes"`

	ServiceUsages []PatientServiceUsage `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"serviceUsages,omitempty"`
	Account       *PatientAccount       `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// PatientServiceUsage links a patient to a service they have received.
// The pair is the primary key, so a patient can hold at most one usage
// row per service.
type PatientServiceUsage struct {
	PatientID uuid.UUID `gorm:"type:uuid;primaryKey" json:"patientId"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey" json:"serviceId"`
	UsedAt    time.Time `gorm:"not null" json:"usedAt"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT" json:"service,omitempty"`
}

// PatientAccount is the portal login attached to a patient record.
type PatientAccount struct {
	Base
	PatientID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_patient_accounts_patient" json:"patientId"`
	Email        string     `gorm:"type:varchar(320);not null;uniqueIndex:uq_patient_accounts_email" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
}
