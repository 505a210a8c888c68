package routes

import (
	"autoshop/internal/controllers"
	"autoshop/internal/middleware"
	"autoshop/internal/models"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.GET("/reports/inventory", controllers.ExportInventoryReport)
	}
}
