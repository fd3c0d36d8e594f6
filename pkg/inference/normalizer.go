package inference

import "riceguard/domain"

// DefaultConfidenceThreshold applies when no threshold is configured.
const DefaultConfidenceThreshold = 0.50

// Normalize maps a raw inference result onto the canonical disease set and
// applies the confidence policy. Pure: identical inputs always produce the
// same key.
//
// Unrecognized raw labels map to uncertain, and any confidence below the
// threshold forces uncertain even when the label itself matched - a
// low-confidence prediction must not be presented as a diagnosis.
func Normalize(result domain.InferenceResult, threshold float64) domain.DiseaseKey {
	key, ok := domain.ParseDiseaseKey(result.Label)
	if !ok {
		return domain.DiseaseUncertain
	}
	if result.Confidence < threshold {
		return domain.DiseaseUncertain
	}
	return key
}
