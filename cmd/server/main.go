package main

import (
	"log"
	"net/http"
	"os"

	"autoshop/internal/config"
	"autoshop/internal/logger"
	"autoshop/internal/middleware"
	"autoshop/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery, request logging and metrics are
	// attached inside SetupRouter, ahead of route registration)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + getPort()
	log.Printf("server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
