package routes

import (
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"autoshop/internal/middleware"
)

// SetupRouter attaches every middleware before registering routes; gin
// freezes each route's handler chain at registration time.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger(
		ginlog.WithLogger(func(_ *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().Str("service", "autoshop").Logger()
		}),
	))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	AuthRoutes(r)
	WorkOrderRoutes(r)
	CustomerRoutes(r)
	VehicleRoutes(r)
	InventoryRoutes(r)
	AppointmentRoutes(r)
	AdminRoutes(r)

	return r
}
