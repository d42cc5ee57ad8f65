package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"platformsdk/cmd"
	"platformsdk/internal/config"
	"platformsdk/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		cfg = config.Default()
	}

	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mainLog := logger.WithComponent("main")
	mainLog.Debug().Msg("Starting platformsdk")

	cmd.Execute(cfg)
}
