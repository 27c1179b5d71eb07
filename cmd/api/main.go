package main

import (
	"os"

	"github.com/omniafit/omnia-backend/internal/pkg/logger"
	"github.com/omniafit/omnia-backend/internal/server"
)

// @title Omnia Fit API
// @version 1.0
// @description Administrative API for the Omnia Fit class schedule

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
// @description Session cookie issued by the login endpoint

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
