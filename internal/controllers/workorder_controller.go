package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop/internal/config"
	"autoshop/internal/lifecycle"
	"autoshop/internal/middleware"
	"autoshop/internal/models"
)

type createWorkOrderInput struct {
	VehicleID        string   `json:"vehicle_id" binding:"required"`
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	AssignedMechanic *string  `json:"assigned_mechanic"`
	LaborHours       float64  `json:"labor_hours"`
	LaborRate        *float64 `json:"labor_rate"`
}

// CreateWorkOrder opens a new order against a vehicle. The engine enforces
// the admin-only rule and resolves the owning customer.
func CreateWorkOrder(c *gin.Context) {
	var input createWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order input: " + err.Error()})
		return
	}

	order, err := lifecycle.CreateOrder(config.DB, callerFrom(c), lifecycle.CreateOrderInput{
		VehicleID:          input.VehicleID,
		Title:              input.Title,
		Description:        input.Description,
		AssignedMechanicID: input.AssignedMechanic,
		LaborHours:         input.LaborHours,
		LaborRate:          input.LaborRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordWorkOrderOperation("create")
	c.JSON(http.StatusCreated, gin.H{"work_order": order})
}

func ListWorkOrders(c *gin.Context) {
	orders, err := lifecycle.ListOrders(config.DB, callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func GetWorkOrder(c *gin.Context) {
	order, err := lifecycle.GetOrder(config.DB, callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"work_order": order})
}

type adminWorkOrderUpdateInput struct {
	Title            *string             `json:"title"`
	Description      *string             `json:"description"`
	Status           *models.OrderStatus `json:"status"`
	AssignedMechanic *string             `json:"assigned_mechanic"`
	LaborHours       *float64            `json:"labor_hours"`
	LaborRate        *float64            `json:"labor_rate"`
}

// mechanicWorkOrderUpdateInput is deliberately narrow: binding through this
// struct drops every other key in the request body, so a mechanic sending
// labor_rate or assigned_mechanic sees those fields ignored, not rejected.
type mechanicWorkOrderUpdateInput struct {
	Status      *models.OrderStatus `json:"status"`
	Description *string             `json:"description"`
}

// UpdateWorkOrder applies a partial update. The payload shape depends on the
// caller's role, which keeps the mechanic field allow-list in the type system
// instead of a runtime key filter.
func UpdateWorkOrder(c *gin.Context) {
	caller := callerFrom(c)

	if caller.IsAdmin() {
		var input adminWorkOrderUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update: " + err.Error()})
			return
		}
		order, err := lifecycle.UpdateOrderAdmin(config.DB, caller, c.Param("id"), lifecycle.AdminOrderUpdate{
			Title:              input.Title,
			Description:        input.Description,
			Status:             input.Status,
			AssignedMechanicID: input.AssignedMechanic,
			LaborHours:         input.LaborHours,
			LaborRate:          input.LaborRate,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.RecordWorkOrderOperation("update")
		c.JSON(http.StatusOK, gin.H{"work_order": order})
		return
	}

	var input mechanicWorkOrderUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update: " + err.Error()})
		return
	}
	order, err := lifecycle.UpdateOrderMechanic(config.DB, caller, c.Param("id"), lifecycle.MechanicOrderUpdate{
		Status:      input.Status,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.RecordWorkOrderOperation("update")
	c.JSON(http.StatusOK, gin.H{"work_order": order})
}

func DeleteWorkOrder(c *gin.Context) {
	if err := lifecycle.DeleteOrder(config.DB, callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	middleware.RecordWorkOrderOperation("delete")
	c.JSON(http.StatusOK, gin.H{"message": "work order deleted"})
}
