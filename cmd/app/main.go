package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"riceguard/cmd/config"
	migration "riceguard/cmd/database/migrate"
	"riceguard/cmd/database/seed"
	"riceguard/internal/utils"
)

func main() {
	utils.LoadConfig()

	zapLog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer zapLog.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}
	if err := seed.SeedRecommendations(context.Background(), db); err != nil {
		log.Fatalf("error seeding recommendations: %v", err)
	}

	app, err := config.NewApp(db, zapLog)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
