package main

import (
	"os"

	"github.com/yigit/uniadvisor/internal/pkg/logger"
	"github.com/yigit/uniadvisor/internal/server"
)

// @title UniAdvisor API
// @version 1.0
// @description Academic advising chat assistant: profiles, course catalogs and prerequisite visualizations
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@uniadvisor.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Setup functions already logged the details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
