package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecommendation  = "recommendation retrieved successfully"
	MessageSuccessGetRecommendations = "recommendations retrieved successfully"

	MessageFailedGetRecommendation = "failed to retrieve recommendation"

	ErrRecommendationNotFound = errors.New("recommendation not found for this disease")
)

type (
	RecommendationResponse struct {
		DiseaseKey DiseaseKey `json:"disease_key"`
		Title      string     `json:"title"`
		Steps      []string   `json:"steps"`
		Version    string     `json:"version"`
		Degraded   bool       `json:"degraded,omitempty"`
		UpdatedAt  time.Time  `json:"updated_at,omitempty"`
	}

	RecommendationListResponse struct {
		Recommendations []RecommendationResponse `json:"recommendations"`
	}
)
