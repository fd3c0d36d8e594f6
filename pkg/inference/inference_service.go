package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"riceguard/domain"
	"riceguard/pkg/health"
)

type (
	// InferenceService classifies a leaf image against the external model
	// backend. Classify never returns an error: any failure inside it resolves
	// to the deterministic fallback result so the pipeline always gets a
	// usable InferenceResult.
	InferenceService interface {
		Classify(ctx context.Context, imageData []byte, contentType string) domain.InferenceResult
		Probe(ctx context.Context) bool
	}

	inferenceService struct {
		client       *http.Client
		modelURL     string
		modelVersion string
		tracker      health.Tracker
		log          *zap.Logger
	}

	modelPrediction struct {
		Label       string  `json:"label"`
		Probability float64 `json:"probability"`
	}

	modelResponse struct {
		Label        string            `json:"label"`
		Confidence   float64           `json:"confidence"`
		Predictions  []modelPrediction `json:"predictions"`
		ModelVersion string            `json:"model_version"`
	}
)

func NewInferenceService(modelURL, modelVersion string, tracker health.Tracker, log *zap.Logger) InferenceService {
	return &inferenceService{
		client:       &http.Client{Timeout: 30 * time.Second},
		modelURL:     strings.TrimSuffix(modelURL, "/"),
		modelVersion: modelVersion,
		tracker:      tracker,
		log:          log,
	}
}

// fallbackResult is the last line of defense: an explicit uncertain result
// tagged with the literal fallback model version.
func fallbackResult() domain.InferenceResult {
	return domain.InferenceResult{
		Label:        domain.DiseaseUncertain.String(),
		Confidence:   0.0,
		ModelVersion: domain.ModelVersionFallback,
	}
}

func (s *inferenceService) Classify(ctx context.Context, imageData []byte, contentType string) domain.InferenceResult {
	if s.modelURL == "" {
		return fallbackResult()
	}

	// A backend already known to be down is not retried on every request;
	// the periodic probe heals the flag once the backend recovers.
	if s.tracker.InferenceStatus() == health.StatusUnreachable {
		return fallbackResult()
	}

	// Corrupt bytes that passed the declared-type check must not reach the
	// model backend. Decode failures degrade exactly like an outage.
	if !s.decodable(imageData, contentType) {
		s.log.Warn("image failed to decode, degrading to fallback",
			zap.String("content_type", contentType))
		return fallbackResult()
	}

	result, err := s.callModel(ctx, imageData, contentType)
	if err != nil {
		s.tracker.MarkInference(false)
		s.log.Warn("inference backend call failed, degrading to fallback", zap.Error(err))
		return fallbackResult()
	}

	s.tracker.MarkInference(true)
	return result
}

// Probe checks the model backend health endpoint and records the outcome.
func (s *inferenceService) Probe(ctx context.Context) bool {
	if s.modelURL == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.modelURL+"/healthz", nil)
	if err != nil {
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.tracker.MarkInference(false)
		return false
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == http.StatusOK
	s.tracker.MarkInference(ok)
	return ok
}

func (s *inferenceService) decodable(imageData []byte, contentType string) bool {
	// webp is accepted at intake but has no stdlib decoder; the model backend
	// validates it on its side.
	if contentType == "image/webp" {
		return true
	}
	_, _, err := image.Decode(bytes.NewReader(imageData))
	return err == nil
}

func (s *inferenceService) callModel(ctx context.Context, imageData []byte, contentType string) (domain.InferenceResult, error) {
	payload, err := json.Marshal(map[string]string{
		"image":        base64.StdEncoding.EncodeToString(imageData),
		"content_type": contentType,
	})
	if err != nil {
		return domain.InferenceResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.modelURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return domain.InferenceResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.InferenceResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.InferenceResult{}, fmt.Errorf("model backend returned status %d", resp.StatusCode)
	}

	var body modelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.InferenceResult{}, err
	}

	label, confidence := body.Label, body.Confidence
	if len(body.Predictions) > 0 {
		top := body.Predictions[0]
		for _, p := range body.Predictions[1:] {
			if p.Probability > top.Probability {
				top = p
			}
		}
		label, confidence = top.Label, top.Probability
	}

	if label == "" {
		return domain.InferenceResult{}, fmt.Errorf("model backend returned no prediction")
	}

	version := body.ModelVersion
	if version == "" {
		version = s.modelVersion
	}

	return domain.InferenceResult{
		Label:        label,
		Confidence:   confidence,
		ModelVersion: version,
	}, nil
}
