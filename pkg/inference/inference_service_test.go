package inference_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"riceguard/domain"
	"riceguard/pkg/health"
	"riceguard/pkg/inference"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func modelServer(t *testing.T, response any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/healthz":
			w.WriteHeader(http.StatusOK)
		case "/predict":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(response)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClassifyPicksTopPrediction(t *testing.T) {
	server := modelServer(t, map[string]any{
		"predictions": []map[string]any{
			{"label": "brown_spot", "probability": 0.07},
			{"label": "healthy", "probability": 0.92},
			{"label": "leaf_blast", "probability": 0.01},
		},
		"model_version": "2.3",
	})
	defer server.Close()

	tracker := health.NewTracker()
	svc := inference.NewInferenceService(server.URL, "1.0", tracker, zap.NewNop())

	result := svc.Classify(context.Background(), pngBytes(t), "image/png")

	assert.Equal(t, "healthy", result.Label)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
	assert.Equal(t, "2.3", result.ModelVersion)
	assert.Equal(t, health.StatusReachable, tracker.InferenceStatus())
}

func TestClassifyUsesConfiguredVersionWhenBackendOmitsIt(t *testing.T) {
	server := modelServer(t, map[string]any{
		"label":      "leaf_blast",
		"confidence": 0.81,
	})
	defer server.Close()

	svc := inference.NewInferenceService(server.URL, "1.0", health.NewTracker(), zap.NewNop())

	result := svc.Classify(context.Background(), pngBytes(t), "image/png")

	assert.Equal(t, "leaf_blast", result.Label)
	assert.Equal(t, "1.0", result.ModelVersion)
}

func TestClassifyFallsBackWhenBackendDown(t *testing.T) {
	server := modelServer(t, nil)
	server.Close() // simulated outage

	tracker := health.NewTracker()
	svc := inference.NewInferenceService(server.URL, "1.0", tracker, zap.NewNop())

	result := svc.Classify(context.Background(), pngBytes(t), "image/png")

	assert.Equal(t, domain.DiseaseUncertain.String(), result.Label)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, domain.ModelVersionFallback, result.ModelVersion)
	assert.Equal(t, health.StatusUnreachable, tracker.InferenceStatus())
}

func TestClassifySkipsKnownDownBackend(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tracker := health.NewTracker()
	tracker.MarkInference(false)
	svc := inference.NewInferenceService(server.URL, "1.0", tracker, zap.NewNop())

	result := svc.Classify(context.Background(), pngBytes(t), "image/png")

	assert.Equal(t, domain.ModelVersionFallback, result.ModelVersion)
	assert.Zero(t, calls, "known-down backend must not be retried per request")
}

func TestClassifyFallsBackOnCorruptImage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	tracker := health.NewTracker()
	svc := inference.NewInferenceService(server.URL, "1.0", tracker, zap.NewNop())

	result := svc.Classify(context.Background(), []byte("not an image at all"), "image/png")

	assert.Equal(t, domain.ModelVersionFallback, result.ModelVersion)
	assert.Zero(t, calls, "undecodable bytes must not reach the backend")
	// A bad upload says nothing about backend reachability.
	assert.Equal(t, health.StatusUnknown, tracker.InferenceStatus())
}

func TestProbeHealsUnreachableFlag(t *testing.T) {
	server := modelServer(t, nil)
	defer server.Close()

	tracker := health.NewTracker()
	tracker.MarkInference(false)
	svc := inference.NewInferenceService(server.URL, "1.0", tracker, zap.NewNop())

	assert.True(t, svc.Probe(context.Background()))
	assert.Equal(t, health.StatusReachable, tracker.InferenceStatus())
}

func TestClassifyWithoutConfiguredBackend(t *testing.T) {
	svc := inference.NewInferenceService("", "1.0", health.NewTracker(), zap.NewNop())

	result := svc.Classify(context.Background(), pngBytes(t), "image/png")

	assert.Equal(t, domain.ModelVersionFallback, result.ModelVersion)
}
