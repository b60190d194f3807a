package main

import (
	"os"

	"github.com/yigit/mentorium/internal/pkg/logger"
	"github.com/yigit/mentorium/internal/server"
)

// @title Mentorium API
// @version 1.0
// @description Learning platform backend: classes, paid enrollment, assignments and feedback.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Identity provider ID token, sent as "Bearer <token>"

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// the package level logger is usable before configuration
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
