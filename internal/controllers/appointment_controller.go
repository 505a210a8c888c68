package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop/internal/config"
	"autoshop/internal/lifecycle"
	"autoshop/internal/models"
)

type appointmentInput struct {
	CustomerID       string    `json:"customer_id" binding:"required"`
	VehicleID        string    `json:"vehicle_id" binding:"required"`
	AssignedMechanic *string   `json:"assigned_mechanic"`
	AppointmentDate  time.Time `json:"appointment_date" binding:"required"`
	DurationMinutes  int       `json:"duration_minutes"`
	Description      string    `json:"description"`
}

// CreateAppointment books a slot for a customer's vehicle. Admin only
// (route-level gate); the vehicle reference accepts uuid or legacy id.
func CreateAppointment(c *gin.Context) {
	var input appointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment input: " + err.Error()})
		return
	}

	vehicle, err := lifecycle.ResolveVehicle(config.DB, input.VehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	if vehicle.CustomerID != input.CustomerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle does not belong to customer"})
		return
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = models.DefaultAppointmentMinutes
	}

	appt := models.Appointment{
		CustomerID:         input.CustomerID,
		VehicleID:          vehicle.ID,
		AssignedMechanicID: input.AssignedMechanic,
		AppointmentDate:    input.AppointmentDate,
		DurationMinutes:    duration,
		Description:        input.Description,
		Status:             models.AppointmentScheduled,
	}
	if err := config.DB.Create(&appt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// ListAppointments returns the caller's visible appointments in date order.
// Mechanics only see slots assigned to them.
func ListAppointments(c *gin.Context) {
	caller := callerFrom(c)
	appointments := []models.Appointment{}
	err := lifecycle.ScopeAppointments(config.DB, caller).
		Preload("Customer").
		Preload("Vehicle").
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": appointments})
}

func GetAppointment(c *gin.Context) {
	appt, ok := findVisibleAppointment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// UpdateAppointment lets an admin change anything and the assigned mechanic
// change status and description, mirroring the work order allow-list.
func UpdateAppointment(c *gin.Context) {
	appt, ok := findVisibleAppointment(c)
	if !ok {
		return
	}
	caller := callerFrom(c)

	if caller.IsAdmin() {
		var input struct {
			AssignedMechanic *string                   `json:"assigned_mechanic"`
			AppointmentDate  *time.Time                `json:"appointment_date"`
			DurationMinutes  *int                      `json:"duration_minutes"`
			Description      *string                   `json:"description"`
			Status           *models.AppointmentStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}
		if input.AssignedMechanic != nil {
			appt.AssignedMechanicID = input.AssignedMechanic
		}
		if input.AppointmentDate != nil {
			appt.AppointmentDate = *input.AppointmentDate
		}
		if input.DurationMinutes != nil && *input.DurationMinutes > 0 {
			appt.DurationMinutes = *input.DurationMinutes
		}
		if input.Description != nil {
			appt.Description = *input.Description
		}
		if input.Status != nil {
			if !input.Status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment status"})
				return
			}
			appt.Status = *input.Status
		}
	} else {
		var input struct {
			Description *string                   `json:"description"`
			Status      *models.AppointmentStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}
		if input.Description != nil {
			appt.Description = *input.Description
		}
		if input.Status != nil {
			if !input.Status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment status"})
				return
			}
			appt.Status = *input.Status
		}
	}

	if err := config.DB.Save(appt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

func DeleteAppointment(c *gin.Context) {
	appt, ok := findVisibleAppointment(c)
	if !ok {
		return
	}
	if err := config.DB.Delete(appt).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

// findVisibleAppointment loads the appointment and applies the visibility
// rule; an appointment the caller may not see 404s like a missing one.
func findVisibleAppointment(c *gin.Context) (*models.Appointment, bool) {
	var appt models.Appointment
	err := config.DB.Preload("Customer").Preload("Vehicle").
		Where("id = ?", c.Param("id")).First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return nil, false
	}
	if !lifecycle.CanViewAppointment(callerFrom(c), &appt) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return nil, false
	}
	return &appt, true
}
