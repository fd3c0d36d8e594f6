package routes

import (
	"github.com/gofiber/fiber/v2"

	"riceguard/internal/api/handlers"
	"riceguard/internal/middleware"
	"riceguard/pkg/jwt"
)

type Config struct {
	App                   *fiber.App
	UserHandler           handlers.UserHandler
	ScanHandler           handlers.ScanHandler
	RecommendationHandler handlers.RecommendationHandler
	HealthHandler         handlers.HealthHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Scans()
	c.Recommendations()
	c.Health()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) Scans() {
	scans := c.App.Group("/api/v1/scans", c.Middleware.AuthMiddleware(c.JWTService))

	scans.Post("", c.ScanHandler.CreateScan)
	scans.Get("", c.ScanHandler.GetScans)
	scans.Post("/bulk-delete", c.ScanHandler.BulkDeleteScans)
	scans.Get("/:id", c.ScanHandler.GetScanDetail)
	scans.Patch("/:id/notes", c.ScanHandler.UpdateScanNotes)
	scans.Delete("/:id", c.ScanHandler.DeleteScan)
}

func (c *Config) Recommendations() {
	recommendations := c.App.Group("/api/v1/recommendations")

	recommendations.Get("", c.RecommendationHandler.GetAllRecommendations)
	recommendations.Get("/:diseaseKey", c.RecommendationHandler.GetRecommendation)
}

func (c *Config) Health() {
	c.App.Get("/api/health", c.HealthHandler.GetHealth)
}
