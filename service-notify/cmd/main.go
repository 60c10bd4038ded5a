package main

import (
	"flows-notify/pkg/config"
	"flows-notify/pkg/logger"
	"flows-notify/service-notify/internal/app"
)

func main() {
	// Initialize configuration
	cfg := config.NewConfig()

	// Initialize logger
	logger.InitLogger(cfg)

	// Create and start the application server
	server := app.NewAppServer(cfg)
	server.Serve()
}
