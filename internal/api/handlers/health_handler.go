package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"riceguard/domain"
	"riceguard/internal/api/presenters"
	"riceguard/pkg/health"
	"riceguard/pkg/inference"
)

type (
	HealthHandler interface {
		GetHealth(c *fiber.Ctx) error
	}

	healthHandler struct {
		tracker          health.Tracker
		inferenceService inference.InferenceService
	}
)

func NewHealthHandler(tracker health.Tracker, inferenceService inference.InferenceService) HealthHandler {
	return &healthHandler{
		tracker:          tracker,
		inferenceService: inferenceService,
	}
}

func (h *healthHandler) GetHealth(c *fiber.Ctx) error {
	// An unknown inference flag is resolved on demand so the first health
	// check after startup reports a real state.
	if h.tracker.InferenceStatus() == health.StatusUnknown {
		h.inferenceService.Probe(c.Context())
	}

	status := "ok"
	if h.tracker.InferenceStatus() == health.StatusUnreachable ||
		h.tracker.StorageStatus() == health.StatusUnreachable {
		status = "degraded"
	}

	checkedAt := h.tracker.CheckedAt()
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	return presenters.SuccessResponse(c, domain.HealthResponse{
		Status:    status,
		Inference: h.tracker.InferenceStatus().String(),
		Storage:   h.tracker.StorageStatus().String(),
		CheckedAt: checkedAt,
	}, fiber.StatusOK, "health status")
}
