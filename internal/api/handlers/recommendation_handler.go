package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"riceguard/domain"
	"riceguard/internal/api/presenters"
	"riceguard/pkg/recommendation"
)

type (
	RecommendationHandler interface {
		GetRecommendation(c *fiber.Ctx) error
		GetAllRecommendations(c *fiber.Ctx) error
	}

	recommendationHandler struct {
		recommendationService recommendation.RecommendationService
	}
)

func NewRecommendationHandler(recommendationService recommendation.RecommendationService) RecommendationHandler {
	return &recommendationHandler{recommendationService: recommendationService}
}

func (h *recommendationHandler) GetRecommendation(c *fiber.Ctx) error {
	diseaseKey := c.Params("diseaseKey")

	res, err := h.recommendationService.GetByKey(c.Context(), diseaseKey)
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecommendation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendation)
}

func (h *recommendationHandler) GetAllRecommendations(c *fiber.Ctx) error {
	res, err := h.recommendationService.GetAll(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendations)
}
