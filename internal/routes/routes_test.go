package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"autoshop/internal/routes"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := routes.SetupRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// A panicking handler must surface as a generic 500, not a dropped
// connection. Registering the route after SetupRouter returns proves the
// recovery middleware was already in place when routes were added.
func TestPanicRecoversTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := routes.SetupRouter()
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from recovered panic, got %d", rec.Code)
	}
}
