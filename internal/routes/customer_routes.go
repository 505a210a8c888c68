package routes

import (
	"autoshop/internal/controllers"
	"autoshop/internal/middleware"
	"autoshop/internal/models"

	"github.com/gin-gonic/gin"
)

func CustomerRoutes(r *gin.Engine) {
	customers := r.Group("/customers")
	customers.Use(middleware.RequireAuth())
	{
		customers.GET("", controllers.ListCustomers)
		customers.GET("/:id", controllers.GetCustomer)

		// Mechanics have read-only access to customer records.
		admin := customers.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("", controllers.CreateCustomer)
			admin.PUT("/:id", controllers.UpdateCustomer)
			admin.DELETE("/:id", controllers.DeleteCustomer)
		}
	}
}
