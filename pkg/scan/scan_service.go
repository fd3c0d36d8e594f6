package scan

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"riceguard/domain"
	"riceguard/entities"
	"riceguard/internal/utils/storage"
	"riceguard/pkg/health"
	"riceguard/pkg/inference"
	"riceguard/pkg/recommendation"
)

type (
	// ScanService runs the upload-to-record pipeline and owns the scan
	// history operations. The pipeline is: validate and store the image,
	// classify, normalize, resolve guidance, persist. Only the intake step
	// and the final commit surface errors; everything between degrades.
	ScanService interface {
		CreateScan(ctx context.Context, req domain.UploadScanRequest, userID string) (domain.ScanResponse, error)
		GetScans(ctx context.Context, userID string, page, limit int) ([]domain.ScanResponse, int64, error)
		GetScanByID(ctx context.Context, id string, userID string) (domain.ScanResponse, error)
		UpdateScanNotes(ctx context.Context, id string, req domain.UpdateScanNotesRequest, userID string) error
		DeleteScan(ctx context.Context, id string, userID string) error
		BulkDeleteScans(ctx context.Context, req domain.BulkDeleteScansRequest, userID string) (domain.BulkDeleteScansResponse, error)
	}

	scanService struct {
		scanRepository        ScanRepository
		imageStorage          storage.ImageStorage
		inferenceService      inference.InferenceService
		recommendationService recommendation.RecommendationService
		tracker               health.Tracker
		log                   *zap.Logger
		maxUploadBytes        int64
		confidenceThreshold   float64
	}
)

func NewScanService(
	scanRepository ScanRepository,
	imageStorage storage.ImageStorage,
	inferenceService inference.InferenceService,
	recommendationService recommendation.RecommendationService,
	tracker health.Tracker,
	log *zap.Logger,
	maxUploadBytes int64,
	confidenceThreshold float64,
) ScanService {
	return &scanService{
		scanRepository:        scanRepository,
		imageStorage:          imageStorage,
		inferenceService:      inferenceService,
		recommendationService: recommendationService,
		tracker:               tracker,
		log:                   log,
		maxUploadBytes:        maxUploadBytes,
		confidenceThreshold:   confidenceThreshold,
	}
}

func (s *scanService) CreateScan(ctx context.Context, req domain.UploadScanRequest, userID string) (domain.ScanResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ScanResponse{}, domain.ErrParseUUID
	}

	// Intake validation happens before any byte is read or written.
	if req.File.Size > s.maxUploadBytes {
		return domain.ScanResponse{}, domain.ErrFileTooLarge
	}

	contentType := req.File.Header.Get("Content-Type")
	if _, ok := storage.AllowImage[contentType]; !ok {
		return domain.ScanResponse{}, domain.ErrUnsupportedImageType
	}

	file, err := req.File.Open()
	if err != nil {
		return domain.ScanResponse{}, domain.ErrUnsupportedImageType
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return domain.ScanResponse{}, domain.ErrUnsupportedImageType
	}
	if int64(len(imageData)) > s.maxUploadBytes {
		return domain.ScanResponse{}, domain.ErrFileTooLarge
	}

	// The image must be durably stored before inference: every persisted
	// record's image reference has to resolve.
	objectKey := storage.ObjectKeyFor("scans", uuid.New().String(), contentType)
	if err := s.imageStorage.UploadBytes(ctx, objectKey, imageData, contentType); err != nil {
		s.tracker.MarkStorage(false)
		s.log.Error("image upload failed", zap.Error(err))
		return domain.ScanResponse{}, domain.ErrStorageUnavailable
	}
	s.tracker.MarkStorage(true)

	result := s.inferenceService.Classify(ctx, imageData, contentType)
	label := inference.Normalize(result, s.confidenceThreshold)
	guidance := s.recommendationService.Resolve(ctx, label)
	degraded := result.ModelVersion == domain.ModelVersionFallback

	record := &entities.ScanRecord{
		ID:           uuid.New(),
		UserID:       userUUID,
		ImageURL:     s.imageStorage.GetPublicLinkKey(objectKey),
		Label:        label.String(),
		Confidence:   result.Confidence * 100,
		ModelVersion: result.ModelVersion,
		Notes:        req.Notes,
	}

	// The commit point of the whole pipeline. An already-uploaded image with
	// no record is reclaimable; a computed analysis must not be dropped
	// silently, so the caller gets a retryable error.
	if err := s.scanRepository.CreateScanRecord(ctx, record); err != nil {
		s.tracker.MarkStorage(false)
		s.log.Error("scan record commit failed", zap.Error(err))
		return domain.ScanResponse{}, domain.ErrPersistScan
	}
	s.tracker.MarkStorage(true)

	s.log.Info("scan analyzed",
		zap.String("scan_id", record.ID.String()),
		zap.String("label", record.Label),
		zap.Float64("confidence", record.Confidence),
		zap.String("model_version", record.ModelVersion),
		zap.Bool("degraded", degraded))

	response := toScanResponse(record)
	response.Degraded = degraded
	response.Recommendation = &guidance
	return response, nil
}

func (s *scanService) GetScans(ctx context.Context, userID string, page, limit int) ([]domain.ScanResponse, int64, error) {
	records, count, err := s.scanRepository.GetScanRecords(ctx, userID, page, limit)
	if err != nil {
		s.tracker.MarkStorage(false)
		return nil, 0, err
	}
	s.tracker.MarkStorage(true)

	var response []domain.ScanResponse
	for _, record := range records {
		response = append(response, toScanResponse(record))
	}
	return response, count, nil
}

func (s *scanService) GetScanByID(ctx context.Context, id string, userID string) (domain.ScanResponse, error) {
	record, err := s.getOwnedRecord(ctx, id, userID)
	if err != nil {
		return domain.ScanResponse{}, err
	}
	return toScanResponse(record), nil
}

func (s *scanService) UpdateScanNotes(ctx context.Context, id string, req domain.UpdateScanNotesRequest, userID string) error {
	record, err := s.getOwnedRecord(ctx, id, userID)
	if err != nil {
		return err
	}

	// The note is the only mutable field on a scan record.
	record.Notes = req.Notes
	return s.scanRepository.UpdateScanRecord(ctx, record)
}

func (s *scanService) DeleteScan(ctx context.Context, id string, userID string) error {
	record, err := s.getOwnedRecord(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.scanRepository.DeleteScanRecord(ctx, id); err != nil {
		return err
	}

	// Best effort: a failure to reclaim the image must not fail the deletion.
	if objectKey := s.imageStorage.GetObjectKeyFromLink(record.ImageURL); objectKey != "" {
		if err := s.imageStorage.DeleteFile(ctx, objectKey); err != nil {
			s.log.Warn("failed to reclaim image object",
				zap.String("object_key", objectKey), zap.Error(err))
		}
	}

	return nil
}

func (s *scanService) BulkDeleteScans(ctx context.Context, req domain.BulkDeleteScansRequest, userID string) (domain.BulkDeleteScansResponse, error) {
	response := domain.BulkDeleteScansResponse{}
	for _, id := range req.IDs {
		result := domain.BulkDeleteResult{ID: id}
		switch err := s.DeleteScan(ctx, id, userID); {
		case err == nil:
			result.Deleted = true
			response.DeletedCount++
		case errors.Is(err, domain.ErrScanNotFound):
			result.Reason = "not found"
		case errors.Is(err, domain.ErrForbiddenScanAccess):
			result.Reason = "forbidden"
		default:
			result.Reason = "delete failed"
		}
		response.Results = append(response.Results, result)
	}
	return response, nil
}

func (s *scanService) getOwnedRecord(ctx context.Context, id string, userID string) (*entities.ScanRecord, error) {
	record, err := s.scanRepository.GetScanRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrScanNotFound
		}
		return nil, err
	}

	if record.UserID.String() != userID {
		return nil, domain.ErrForbiddenScanAccess
	}
	return record, nil
}

func toScanResponse(record *entities.ScanRecord) domain.ScanResponse {
	return domain.ScanResponse{
		ID:           record.ID.String(),
		Label:        domain.DiseaseKey(record.Label),
		Confidence:   record.Confidence,
		ModelVersion: record.ModelVersion,
		ImageURL:     record.ImageURL,
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
	}
}
