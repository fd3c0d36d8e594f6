package inference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"riceguard/domain"
	"riceguard/pkg/inference"
)

func TestNormalizeMatchesKnownLabel(t *testing.T) {
	result := domain.InferenceResult{Label: "Healthy", Confidence: 0.92, ModelVersion: "1.0"}

	assert.Equal(t, domain.DiseaseHealthy, inference.Normalize(result, 0.50))
}

func TestNormalizeForcesUncertainBelowThreshold(t *testing.T) {
	// A matched disease label must still come out uncertain when the model
	// was not confident enough.
	result := domain.InferenceResult{Label: "brown_spot", Confidence: 0.30, ModelVersion: "1.0"}

	assert.Equal(t, domain.DiseaseUncertain, inference.Normalize(result, 0.50))
}

func TestNormalizeThresholdBoundary(t *testing.T) {
	at := domain.InferenceResult{Label: "leaf_blast", Confidence: 0.50}
	below := domain.InferenceResult{Label: "leaf_blast", Confidence: 0.4999}

	assert.Equal(t, domain.DiseaseLeafBlast, inference.Normalize(at, 0.50))
	assert.Equal(t, domain.DiseaseUncertain, inference.Normalize(below, 0.50))
}

func TestNormalizeUnknownLabel(t *testing.T) {
	result := domain.InferenceResult{Label: "rust", Confidence: 0.99}

	assert.Equal(t, domain.DiseaseUncertain, inference.Normalize(result, 0.50))
}

func TestNormalizeLegacyAlias(t *testing.T) {
	result := domain.InferenceResult{Label: "blight", Confidence: 0.80}

	assert.Equal(t, domain.DiseaseBacterialLeafBlight, inference.Normalize(result, 0.50))
}

func TestNormalizeIsDeterministic(t *testing.T) {
	result := domain.InferenceResult{Label: "Leaf Scald", Confidence: 0.75}

	first := inference.Normalize(result, 0.50)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, inference.Normalize(result, 0.50))
	}
}
