package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle rows imported from the previous shop system also carry their old
// integer id in LegacyID; lookups accept either form.
type Vehicle struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	LegacyID     *int64    `gorm:"uniqueIndex" json:"legacy_id,omitempty"`
	CustomerID   string    `gorm:"type:uuid;not null;index" json:"customer_id"`
	Make         string    `gorm:"not null" json:"make"`
	Model        string    `gorm:"not null" json:"model"`
	Year         int       `json:"year,omitempty"`
	LicensePlate string    `json:"license_plate,omitempty"`
	VIN          string    `json:"vin,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
