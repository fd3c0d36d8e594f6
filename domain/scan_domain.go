package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateScan     = "scan analyzed successfully"
	MessageSuccessGetScans       = "scan history retrieved successfully"
	MessageSuccessGetScanDetail  = "scan retrieved successfully"
	MessageSuccessDeleteScan     = "scan deleted successfully"
	MessageSuccessBulkDeleteScan = "scans deleted successfully"

	MessageFailedCreateScan     = "failed to analyze scan"
	MessageFailedGetScans       = "failed to retrieve scan history"
	MessageFailedDeleteScan     = "failed to delete scan"
	MessageFailedBulkDeleteScan = "failed to delete scans"

	ErrFileTooLarge         = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedImageType = errors.New("uploaded file is not a supported image type")
	ErrStorageUnavailable   = errors.New("image storage is unavailable")
	ErrScanNotFound         = errors.New("scan not found")
	ErrForbiddenScanAccess  = errors.New("scan belongs to another user")
	ErrPersistScan          = errors.New("failed to save scan record, please retry")
)

// ModelVersionFallback tags scan records produced while the inference backend
// was unreachable. It is never guessed from configuration.
const ModelVersionFallback = "fallback"

type (
	// InferenceResult is the raw model output consumed by the normalizer.
	// Transient: it is never persisted directly.
	InferenceResult struct {
		Label        string  `json:"label"`
		Confidence   float64 `json:"confidence"`
		ModelVersion string  `json:"model_version"`
	}

	UploadScanRequest struct {
		File  *multipart.FileHeader `json:"file" form:"file" validate:"required"`
		Notes string                `json:"notes" form:"notes" validate:"omitempty,max=1000"`
	}

	ScanResponse struct {
		ID             string                  `json:"id"`
		Label          DiseaseKey              `json:"label"`
		Confidence     float64                 `json:"confidence"` // 0-100 scale
		ModelVersion   string                  `json:"model_version"`
		ImageURL       string                  `json:"image_url"`
		Notes          string                  `json:"notes,omitempty"`
		Degraded       bool                    `json:"degraded"`
		Recommendation *RecommendationResponse `json:"recommendation,omitempty"`
		CreatedAt      time.Time               `json:"created_at"`
	}

	UpdateScanNotesRequest struct {
		Notes string `json:"notes" validate:"max=1000"`
	}

	BulkDeleteScansRequest struct {
		IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
	}

	BulkDeleteResult struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
		Reason  string `json:"reason,omitempty"`
	}

	BulkDeleteScansResponse struct {
		Results      []BulkDeleteResult `json:"results"`
		DeletedCount int                `json:"deleted_count"`
	}
)
