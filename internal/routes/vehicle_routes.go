package routes

import (
	"autoshop/internal/controllers"
	"autoshop/internal/middleware"
	"autoshop/internal/models"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("", controllers.ListVehicles)
		vehicles.GET("/:id", controllers.GetVehicle)

		admin := vehicles.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("", controllers.CreateVehicle)
			admin.PUT("/:id", controllers.UpdateVehicle)
			admin.DELETE("/:id", controllers.DeleteVehicle)
		}
	}
}
