package recommendation

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"riceguard/domain"
	"riceguard/entities"
	"riceguard/pkg/health"
)

type (
	// RecommendationService resolves treatment guidance for canonical disease
	// keys. Resolve never fails for a key in the closed set: uncertain gets a
	// fixed advisory and store outages get a degraded generic one, so the
	// classification result always reaches the user with some guidance
	// attached.
	RecommendationService interface {
		Resolve(ctx context.Context, key domain.DiseaseKey) domain.RecommendationResponse
		GetByKey(ctx context.Context, rawKey string) (domain.RecommendationResponse, error)
		GetAll(ctx context.Context) (domain.RecommendationListResponse, error)
	}

	recommendationService struct {
		recommendationRepository RecommendationRepository
		tracker                  health.Tracker
		log                      *zap.Logger
	}
)

func NewRecommendationService(recommendationRepository RecommendationRepository, tracker health.Tracker, log *zap.Logger) RecommendationService {
	return &recommendationService{
		recommendationRepository: recommendationRepository,
		tracker:                  tracker,
		log:                      log,
	}
}

// uncertainRecommendation is the fixed, non-diagnostic guidance for the
// uncertain sentinel. Uncertainty is a handled state, not an error.
func uncertainRecommendation() domain.RecommendationResponse {
	return domain.RecommendationResponse{
		DiseaseKey: domain.DiseaseUncertain,
		Title:      "Uncertain Result - Next Steps",
		Steps: []string{
			"The photo could not be classified with enough confidence",
			"Retake the photo in good light, close to a single affected leaf",
			"If symptoms persist, consult a local agricultural extension expert",
		},
		Version: "static",
	}
}

// degradedRecommendation stands in when the recommendation store cannot be
// reached or holds no row for a canonical key.
func degradedRecommendation(key domain.DiseaseKey) domain.RecommendationResponse {
	return domain.RecommendationResponse{
		DiseaseKey: key,
		Title:      "Guidance Temporarily Unavailable",
		Steps: []string{
			"Treatment guidance could not be retrieved right now",
			"Please retry later or consult a local agricultural extension expert",
		},
		Version:  "static",
		Degraded: true,
	}
}

func (s *recommendationService) Resolve(ctx context.Context, key domain.DiseaseKey) domain.RecommendationResponse {
	if key == domain.DiseaseUncertain {
		return uncertainRecommendation()
	}

	rec, err := s.recommendationRepository.GetByDiseaseKey(ctx, key.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A canonical key with no seeded row still gets an advisory.
			s.log.Warn("no recommendation seeded for canonical key",
				zap.String("disease_key", key.String()))
			return degradedRecommendation(key)
		}
		s.tracker.MarkStorage(false)
		s.log.Warn("recommendation store unreachable, returning degraded advisory",
			zap.String("disease_key", key.String()), zap.Error(err))
		return degradedRecommendation(key)
	}

	s.tracker.MarkStorage(true)
	return toResponse(rec)
}

func (s *recommendationService) GetByKey(ctx context.Context, rawKey string) (domain.RecommendationResponse, error) {
	key, ok := domain.ParseDiseaseKey(rawKey)
	if !ok {
		return domain.RecommendationResponse{}, domain.ErrRecommendationNotFound
	}
	return s.Resolve(ctx, key), nil
}

func (s *recommendationService) GetAll(ctx context.Context) (domain.RecommendationListResponse, error) {
	recs, err := s.recommendationRepository.GetAll(ctx)
	if err != nil {
		s.tracker.MarkStorage(false)
		return domain.RecommendationListResponse{}, err
	}
	s.tracker.MarkStorage(true)

	response := domain.RecommendationListResponse{}
	for _, rec := range recs {
		response.Recommendations = append(response.Recommendations, toResponse(rec))
	}
	return response, nil
}

func toResponse(rec *entities.Recommendation) domain.RecommendationResponse {
	return domain.RecommendationResponse{
		DiseaseKey: domain.DiseaseKey(rec.DiseaseKey),
		Title:      rec.Title,
		Steps:      SplitSteps(rec.Steps),
		Version:    rec.Version,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// SplitSteps unpacks the newline-separated steps column.
func SplitSteps(steps string) []string {
	var out []string
	for _, step := range strings.Split(steps, "\n") {
		if trimmed := strings.TrimSpace(step); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinSteps is the inverse of SplitSteps, used when seeding.
func JoinSteps(steps []string) string {
	return strings.Join(steps, "\n")
}
