package routes

import (
	"autoshop/internal/controllers"
	"autoshop/internal/middleware"
	"autoshop/internal/models"

	"github.com/gin-gonic/gin"
)

func InventoryRoutes(r *gin.Engine) {
	inventory := r.Group("/inventory")
	inventory.Use(middleware.RequireAuth())
	{
		inventory.GET("", controllers.ListInventory)
		inventory.GET("/low-stock", controllers.ListLowStock)
		inventory.GET("/:id", controllers.GetInventoryItem)

		admin := inventory.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("", controllers.CreateInventoryItem)
			admin.PUT("/:id", controllers.UpdateInventoryItem)
			admin.DELETE("/:id", controllers.DeleteInventoryItem)
		}
	}
}
