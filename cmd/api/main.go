package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/logger"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/server"
)

// @title Kindergarten Admin API
// @version 1.0
// @description Administration API for a kindergarten: students, teachers, classes, semesters and news.

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
