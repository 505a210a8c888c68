package routes

import (
	"autoshop/internal/controllers"
	"autoshop/internal/middleware"
	"autoshop/internal/models"

	"github.com/gin-gonic/gin"
)

func AppointmentRoutes(r *gin.Engine) {
	appointments := r.Group("/appointments")
	appointments.Use(middleware.RequireAuth())
	{
		appointments.GET("", controllers.ListAppointments)
		appointments.GET("/:id", controllers.GetAppointment)
		appointments.PUT("/:id", controllers.UpdateAppointment)

		admin := appointments.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("", controllers.CreateAppointment)
			admin.DELETE("/:id", controllers.DeleteAppointment)
		}
	}
}
