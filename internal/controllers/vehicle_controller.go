package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop/internal/config"
	"autoshop/internal/lifecycle"
	"autoshop/internal/models"
)

type vehicleInput struct {
	CustomerID   string `json:"customer_id" binding:"required"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	VIN          string `json:"vin"`
	LegacyID     *int64 `json:"legacy_id"`
}

func CreateVehicle(c *gin.Context) {
	var input vehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle input: " + err.Error()})
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", input.CustomerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return
	}

	vehicle := models.Vehicle{
		CustomerID:   customer.ID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		VIN:          input.VIN,
		LegacyID:     input.LegacyID,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "legacy id already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// ListVehicles returns all vehicles, optionally scoped to one customer.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	query := config.DB.Order("created_at DESC")
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if err := query.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// GetVehicle accepts either the canonical uuid or the legacy integer id.
func GetVehicle(c *gin.Context) {
	vehicle, err := lifecycle.ResolveVehicle(config.DB, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := config.DB.Preload("Customer").Where("id = ?", vehicle.ID).First(vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func UpdateVehicle(c *gin.Context) {
	vehicle, err := lifecycle.ResolveVehicle(config.DB, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var input struct {
		Make         *string `json:"make"`
		Model        *string `json:"model"`
		Year         *int    `json:"year"`
		LicensePlate *string `json:"license_plate"`
		VIN          *string `json:"vin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
		return
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = *input.LicensePlate
	}
	if input.VIN != nil {
		vehicle.VIN = *input.VIN
	}

	if err := config.DB.Save(vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func DeleteVehicle(c *gin.Context) {
	vehicle, err := lifecycle.ResolveVehicle(config.DB, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := config.DB.Delete(vehicle).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
