package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"autoshop/internal/config"
	"autoshop/internal/models"
)

// ExportInventoryReport writes the inventory list as an xlsx download.
// Pass ?low_stock=true to restrict it to items at or below their minimum.
// Admin only (route-level gate).
func ExportInventoryReport(c *gin.Context) {
	query := config.DB.Order("name ASC")
	if c.Query("low_stock") == "true" {
		query = query.Where("stock_quantity <= min_stock_level")
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading inventory"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}

	headers := []string{"SKU", "Name", "Stock", "Min Level", "Low Stock", "Price"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.StockQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.MinStockLevel)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.IsLowStock)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Price)
	}
	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheet, col, col, 15)
	}

	c.Header("Content-Disposition", "attachment; filename=inventory.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write report"})
	}
}
