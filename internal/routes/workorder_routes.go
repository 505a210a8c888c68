package routes

import (
	"autoshop/internal/controllers"
	"autoshop/internal/middleware"

	"github.com/gin-gonic/gin"
)

func WorkOrderRoutes(r *gin.Engine) {
	orders := r.Group("/work-orders")
	orders.Use(middleware.RequireAuth())
	{
		orders.POST("", controllers.CreateWorkOrder)
		orders.GET("", controllers.ListWorkOrders)
		orders.GET("/:id", controllers.GetWorkOrder)
		orders.PUT("/:id", controllers.UpdateWorkOrder)
		orders.DELETE("/:id", controllers.DeleteWorkOrder)

		orders.GET("/:id/parts", controllers.ListWorkOrderParts)
		orders.POST("/:id/parts", controllers.AddWorkOrderPart)
		orders.PATCH("/:id/parts/:partId", controllers.UpdateWorkOrderPart)
		orders.DELETE("/:id/parts/:partId", controllers.DeleteWorkOrderPart)

		orders.GET("/:id/invoice", controllers.GetInvoice)
		orders.GET("/:id/invoice/document", controllers.GetInvoiceDocument)
	}
}
