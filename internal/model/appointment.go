package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "BOOKED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentBooked, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment is a scheduled visit. Exactly one of PatientID and
// CustomPatientName is present: registered patients link by id, walk-ins
// carry a free-text guest name.
type Appointment struct {
	Base
	ServiceID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"serviceId"`
	PatientID         *uuid.UUID        `gorm:"type:uuid;index" json:"patientId"`
	CustomPatientName *string           `gorm:"type:varchar(200)" json:"customPatientName"`
	StaffID           *uuid.UUID        `gorm:"type:uuid;index" json:"staffId"`
	Date              time.Time         `gorm:"not null;index" json:"date"`
	Status            AppointmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes             string            `gorm:"type:text" json:"notes"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT" json:"-"`
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"-"`
	Staff   *User    `gorm:"foreignKey:StaffID;constraint:OnDelete:SET NULL" json:"-"`

	// Joined display names, filled in by the service on reads.
	PatientName string  `gorm:"-" json:"patientName"`
	ServiceName string  `gorm:"-" json:"serviceName"`
	StaffName   *string `gorm:"-" json:"staffName"`
}
