package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrderPart is one line item on a work order. It either references an
// InventoryItem or is a one-off custom entry (custom_name set, no item id).
type WorkOrderPart struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID     string    `gorm:"type:uuid;not null;index" json:"work_order_id"`
	InventoryItemID *string   `gorm:"type:uuid;index" json:"inventory_item_id,omitempty"`
	CustomName      string    `json:"custom_name,omitempty"`
	CustomSKU       string    `json:"custom_sku,omitempty"`
	QuantityUsed    int       `gorm:"not null" json:"quantity_used"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price"`
	CostPrice       *float64  `json:"cost_price,omitempty"` // internal cost, never shown on invoices
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

func (p *WorkOrderPart) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Name returns the display name for invoices and part listings.
func (p *WorkOrderPart) Name() string {
	if p.InventoryItem != nil {
		return p.InventoryItem.Name
	}
	return p.CustomName
}
