package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the closed set of work order states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
)

// Valid reports whether s is one of the three known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type WorkOrder struct {
	ID                 string      `gorm:"type:uuid;primaryKey" json:"id"`
	VehicleID          string      `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	CustomerID         string      `gorm:"type:uuid;not null;index" json:"customer_id"` // denormalized from the vehicle's owner at creation
	AssignedMechanicID *string     `gorm:"type:uuid;index" json:"assigned_mechanic,omitempty"`
	Title              string      `gorm:"not null" json:"title"`
	Description        string      `json:"description,omitempty"`
	Status             OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	LaborHours         float64     `gorm:"not null;default:0" json:"labor_hours"`
	LaborRate          float64     `gorm:"not null;default:75.00" json:"labor_rate"`
	TotalAmount        float64     `gorm:"not null;default:0" json:"total_amount"` // derived: labor + parts, recomputed by the lifecycle engine
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	Vehicle  *Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Parts    []WorkOrderPart `gorm:"foreignKey:WorkOrderID" json:"parts,omitempty"`
}

func (w *WorkOrder) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
