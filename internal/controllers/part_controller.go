package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop/internal/config"
	"autoshop/internal/lifecycle"
	"autoshop/internal/middleware"
)

func ListWorkOrderParts(c *gin.Context) {
	parts, err := lifecycle.ListParts(config.DB, callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": parts})
}

type addPartInput struct {
	InventoryItemID *string  `json:"inventory_item_id"`
	CustomName      string   `json:"custom_name"`
	CustomSKU       string   `json:"custom_sku"`
	QuantityUsed    int      `json:"quantity_used" binding:"required"`
	UnitPrice       float64  `json:"unit_price"`
	CostPrice       *float64 `json:"cost_price"`
}

// AddWorkOrderPart records a line item. The engine enforces the inventory/
// custom exclusivity, the completed-order lock, and the stock decrement.
func AddWorkOrderPart(c *gin.Context) {
	var input addPartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid part input: " + err.Error()})
		return
	}

	part, err := lifecycle.AddPart(config.DB, callerFrom(c), c.Param("id"), lifecycle.AddPartInput{
		InventoryItemID: input.InventoryItemID,
		CustomName:      input.CustomName,
		CustomSKU:       input.CustomSKU,
		QuantityUsed:    input.QuantityUsed,
		UnitPrice:       input.UnitPrice,
		CostPrice:       input.CostPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordWorkOrderOperation("add_part")
	c.JSON(http.StatusCreated, gin.H{"part": part})
}

type updatePartInput struct {
	QuantityUsed *int     `json:"quantity_used"`
	UnitPrice    *float64 `json:"unit_price"`
	CostPrice    *float64 `json:"cost_price"`
}

func UpdateWorkOrderPart(c *gin.Context) {
	var input updatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid part update: " + err.Error()})
		return
	}

	part, err := lifecycle.UpdatePart(config.DB, callerFrom(c), c.Param("id"), c.Param("partId"), lifecycle.UpdatePartInput{
		QuantityUsed: input.QuantityUsed,
		UnitPrice:    input.UnitPrice,
		CostPrice:    input.CostPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordWorkOrderOperation("update_part")
	c.JSON(http.StatusOK, gin.H{"part": part})
}

func DeleteWorkOrderPart(c *gin.Context) {
	if err := lifecycle.DeletePart(config.DB, callerFrom(c), c.Param("id"), c.Param("partId")); err != nil {
		respondError(c, err)
		return
	}
	middleware.RecordWorkOrderOperation("delete_part")
	c.JSON(http.StatusOK, gin.H{"message": "part removed"})
}
