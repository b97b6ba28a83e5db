// main.go
package main

import (
	"context"
	"log"

	"identity-service/internal/data/repository"
	"identity-service/pkg/database"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

// The identity store has no request surface of its own: authentication,
// notification and admin services talk to it through the repositories.
// This binary bootstraps the schema and verifies the store is reachable.
func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting identity store bootstrap",
		zap.String("app", config.App.Name),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply schema migrations and the role seed
	if err := database.RunMigrations(config.Database.URL(), logger); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Wire repositories and sanity-check the reference data
	repos := repository.NewRepository(db, logger)

	roles, err := repos.Role.FindAll(context.Background())
	if err != nil {
		logger.Fatal("Failed to read seeded roles", zap.Error(err))
	}
	for _, role := range roles {
		logger.Info("Seeded role present",
			zap.Int16("role_id", int16(role.ID)),
			zap.String("name", role.Name),
		)
	}

	users, err := repos.User.CountAll(context.Background())
	if err != nil {
		logger.Fatal("Failed to count users", zap.Error(err))
	}

	logger.Info("Identity store ready",
		zap.Int("roles", len(roles)),
		zap.Int64("users", users),
	)
}
