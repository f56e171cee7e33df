package main

import (
	"os"

	"bayleaf/config"
	"bayleaf/di"
	"bayleaf/shared/logger"
)

// @title Bay Leaf API
// @version 1.0
// @description Reservation intake, contact messages and menu for the Bay Leaf restaurant.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg, os.Stdout)

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
