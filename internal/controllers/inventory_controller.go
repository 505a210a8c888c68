package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop/internal/config"
	"autoshop/internal/models"
)

type inventoryItemInput struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku" binding:"required"`
	StockQuantity int     `json:"stock_quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	Price         float64 `json:"price"`
}

func CreateInventoryItem(c *gin.Context) {
	var input inventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory input: " + err.Error()})
		return
	}
	if input.StockQuantity < 0 || input.MinStockLevel < 0 || input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantities and price must not be negative"})
		return
	}

	item := models.InventoryItem{
		Name:          input.Name,
		SKU:           input.SKU,
		StockQuantity: input.StockQuantity,
		MinStockLevel: input.MinStockLevel,
		Price:         input.Price,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sku already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create inventory item"})
		return
	}
	item.IsLowStock = item.StockQuantity <= item.MinStockLevel
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ListInventory returns all items, optionally filtered by a name/sku search.
func ListInventory(c *gin.Context) {
	var items []models.InventoryItem
	query := config.DB.Order("name ASC")
	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ListLowStock returns only items at or below their minimum stock level.
func ListLowStock(c *gin.Context) {
	var items []models.InventoryItem
	err := config.DB.Where("stock_quantity <= min_stock_level").Order("name ASC").Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing low stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func GetInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	err := config.DB.Where("id = ?", c.Param("id")).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func UpdateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := config.DB.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
		return
	}

	var input struct {
		Name          *string  `json:"name"`
		SKU           *string  `json:"sku"`
		StockQuantity *int     `json:"stock_quantity"`
		MinStockLevel *int     `json:"min_stock_level"`
		Price         *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
		return
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.StockQuantity != nil {
		item.StockQuantity = *input.StockQuantity
	}
	if input.MinStockLevel != nil {
		item.MinStockLevel = *input.MinStockLevel
	}
	if input.Price != nil {
		if *input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}
		item.Price = *input.Price
	}

	if err := config.DB.Save(&item).Error; err != nil {
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sku already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory item"})
		return
	}
	item.IsLowStock = item.StockQuantity <= item.MinStockLevel
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func DeleteInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := config.DB.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory item deleted"})
}
