package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// DefaultAppointmentMinutes is the slot length used when no duration is given.
const DefaultAppointmentMinutes = 120

type Appointment struct {
	ID                 string            `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID         string            `gorm:"type:uuid;not null;index" json:"customer_id"`
	VehicleID          string            `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	AssignedMechanicID *string           `gorm:"type:uuid;index" json:"assigned_mechanic,omitempty"`
	AppointmentDate    time.Time         `gorm:"not null;index" json:"appointment_date"`
	DurationMinutes    int               `gorm:"not null;default:120" json:"duration_minutes"`
	Description        string            `json:"description,omitempty"`
	Status             AppointmentStatus `gorm:"not null;default:'scheduled'" json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
