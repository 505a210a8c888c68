package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	SKU           string    `gorm:"uniqueIndex;not null" json:"sku"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	MinStockLevel int       `gorm:"not null;default:0" json:"min_stock_level"`
	Price         float64   `gorm:"not null;default:0" json:"price"`
	IsLowStock    bool      `gorm:"-" json:"is_low_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i *InventoryItem) AfterFind(tx *gorm.DB) error {
	i.IsLowStock = i.StockQuantity <= i.MinStockLevel
	return nil
}
