package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"riceguard/domain"
	"riceguard/internal/api/presenters"
	"riceguard/pkg/scan"
)

type (
	ScanHandler interface {
		CreateScan(c *fiber.Ctx) error
		GetScans(c *fiber.Ctx) error
		GetScanDetail(c *fiber.Ctx) error
		UpdateScanNotes(c *fiber.Ctx) error
		DeleteScan(c *fiber.Ctx) error
		BulkDeleteScans(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) CreateScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadScanRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.File = file
	req.Notes = c.FormValue("notes")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.scanService.CreateScan(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, scanErrorStatus(err), domain.MessageFailedCreateScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateScan)
}

func (h *scanHandler) GetScans(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	items, count, err := h.scanService.GetScans(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetScans, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetScans)
}

func (h *scanHandler) GetScanDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")

	res, err := h.scanService.GetScanByID(c.Context(), scanID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, scanErrorStatus(err), domain.MessageFailedGetScans, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScanDetail)
}

func (h *scanHandler) UpdateScanNotes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")
	req := new(domain.UpdateScanNotesRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.scanService.UpdateScanNotes(c.Context(), scanID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, scanErrorStatus(err), domain.MessageFailedGetScans, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessGetScanDetail)
}

func (h *scanHandler) DeleteScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")

	if err := h.scanService.DeleteScan(c.Context(), scanID, userID); err != nil {
		return presenters.ErrorResponse(c, scanErrorStatus(err), domain.MessageFailedDeleteScan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteScan)
}

func (h *scanHandler) BulkDeleteScans(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.BulkDeleteScansRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBulkDeleteScan, err)
	}

	res, err := h.scanService.BulkDeleteScans(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedBulkDeleteScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessBulkDeleteScan)
}

// scanErrorStatus fixes the HTTP status per pipeline error. The 403-vs-404
// choice for foreign records is deliberate and covered by tests.
func scanErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUnsupportedImageType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrScanNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbiddenScanAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
