package config

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"riceguard/internal/api/handlers"
	"riceguard/internal/api/routes"
	"riceguard/internal/middleware"
	"riceguard/internal/utils"
	"riceguard/internal/utils/storage"
	"riceguard/pkg/health"
	"riceguard/pkg/inference"
	"riceguard/pkg/jwt"
	"riceguard/pkg/recommendation"
	"riceguard/pkg/scan"
	"riceguard/pkg/user"
)

const inferenceProbeInterval = 30 * time.Second

func NewApp(db *gorm.DB, zapLog *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         16 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3()
	if err != nil {
		return nil, err
	}
	tracker := health.NewTracker()

	maxUploadBytes := int64(utils.GetConfigInt("MAX_UPLOAD_MB", 8)) * 1024 * 1024
	confidenceThreshold := utils.GetConfigFloat("CONFIDENCE_THRESHOLD", inference.DefaultConfidenceThreshold)

	// Repository
	userRepository := user.NewUserRepository(db)
	scanRepository := scan.NewScanRepository(db)
	recommendationRepository := recommendation.NewRecommendationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	inferenceService := inference.NewInferenceService(
		utils.GetConfig("AI_MODEL_URL"),
		utils.GetConfig("MODEL_VERSION"),
		tracker,
		zapLog,
	)
	recommendationService := recommendation.NewRecommendationService(recommendationRepository, tracker, zapLog)
	scanService := scan.NewScanService(
		scanRepository,
		s3,
		inferenceService,
		recommendationService,
		tracker,
		zapLog,
		maxUploadBytes,
		confidenceThreshold,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	scanHandler := handlers.NewScanHandler(scanService, validator)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	healthHandler := handlers.NewHealthHandler(tracker, inferenceService)

	// An unreachable inference flag only heals through a successful probe,
	// so keep probing in the background.
	go func() {
		ticker := time.NewTicker(inferenceProbeInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			inferenceService.Probe(ctx)
			cancel()
		}
	}()

	// routes
	routesConfig := routes.Config{
		App:                   app,
		UserHandler:           userHandler,
		ScanHandler:           scanHandler,
		RecommendationHandler: recommendationHandler,
		HealthHandler:         healthHandler,
		Middleware:            middlewares,
		JWTService:            jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
