package recommendation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"riceguard/domain"
	"riceguard/entities"
	"riceguard/pkg/health"
	"riceguard/pkg/recommendation"
)

type fakeRecommendationRepository struct {
	byKey map[string]*entities.Recommendation
	err   error
}

func (f *fakeRecommendationRepository) GetByDiseaseKey(ctx context.Context, diseaseKey string) (*entities.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.byKey[diseaseKey]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRecommendationRepository) GetAll(ctx context.Context) ([]*entities.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.Recommendation
	for _, rec := range f.byKey {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecommendationRepository) Insert(ctx context.Context, rec *entities.Recommendation) error {
	f.byKey[rec.DiseaseKey] = rec
	return nil
}

func (f *fakeRecommendationRepository) UpdateDiseaseKey(ctx context.Context, oldKey, newKey string) error {
	if rec, ok := f.byKey[oldKey]; ok {
		delete(f.byKey, oldKey)
		rec.DiseaseKey = newKey
		f.byKey[newKey] = rec
	}
	return nil
}

func seededRepository() *fakeRecommendationRepository {
	return &fakeRecommendationRepository{byKey: map[string]*entities.Recommendation{
		"brown_spot": {
			ID:         uuid.New(),
			DiseaseKey: "brown_spot",
			Title:      "Brown Spot - Management",
			Steps:      "Remove infected leaves\nImprove drainage",
			Version:    "1.1",
		},
		"healthy": {
			ID:         uuid.New(),
			DiseaseKey: "healthy",
			Title:      "Healthy - No Action Needed",
			Steps:      "Maintain good field hygiene and monitor crops regularly",
			Version:    "1.1",
		},
	}}
}

func TestResolveSeededKey(t *testing.T) {
	svc := recommendation.NewRecommendationService(seededRepository(), health.NewTracker(), zap.NewNop())

	res := svc.Resolve(context.Background(), domain.DiseaseBrownSpot)

	assert.Equal(t, domain.DiseaseBrownSpot, res.DiseaseKey)
	assert.Equal(t, "Brown Spot - Management", res.Title)
	assert.Equal(t, []string{"Remove infected leaves", "Improve drainage"}, res.Steps)
	assert.Equal(t, "1.1", res.Version)
	assert.False(t, res.Degraded)
}

func TestResolveUncertainIsFixedAdvisory(t *testing.T) {
	// uncertain is a handled state: fixed guidance, no store lookup needed.
	repo := &fakeRecommendationRepository{err: errors.New("store down")}
	svc := recommendation.NewRecommendationService(repo, health.NewTracker(), zap.NewNop())

	res := svc.Resolve(context.Background(), domain.DiseaseUncertain)

	assert.Equal(t, domain.DiseaseUncertain, res.DiseaseKey)
	assert.NotEmpty(t, res.Steps)
	assert.False(t, res.Degraded)
}

func TestResolveDegradesWhenStoreUnreachable(t *testing.T) {
	repo := &fakeRecommendationRepository{err: errors.New("connection refused")}
	tracker := health.NewTracker()
	svc := recommendation.NewRecommendationService(repo, tracker, zap.NewNop())

	res := svc.Resolve(context.Background(), domain.DiseaseBrownSpot)

	assert.Equal(t, domain.DiseaseBrownSpot, res.DiseaseKey)
	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Steps)
	assert.Equal(t, health.StatusUnreachable, tracker.StorageStatus())
}

func TestResolveNeverFailsForCanonicalKeys(t *testing.T) {
	// Even an empty store yields an advisory for every key in the closed set.
	repo := &fakeRecommendationRepository{byKey: map[string]*entities.Recommendation{}}
	svc := recommendation.NewRecommendationService(repo, health.NewTracker(), zap.NewNop())

	for _, key := range []domain.DiseaseKey{
		domain.DiseaseBacterialLeafBlight,
		domain.DiseaseBrownSpot,
		domain.DiseaseHealthy,
		domain.DiseaseLeafBlast,
		domain.DiseaseLeafScald,
		domain.DiseaseNarrowBrownSpot,
		domain.DiseaseUncertain,
	} {
		res := svc.Resolve(context.Background(), key)
		assert.Equal(t, key, res.DiseaseKey)
		assert.NotEmpty(t, res.Steps, key.String())
	}
}

func TestGetByKeyResolvesLegacyAlias(t *testing.T) {
	repo := seededRepository()
	repo.byKey["bacterial_leaf_blight"] = &entities.Recommendation{
		ID:         uuid.New(),
		DiseaseKey: "bacterial_leaf_blight",
		Title:      "Bacterial Leaf Blight - Management",
		Steps:      "Use clean seed",
		Version:    "1.1",
	}
	svc := recommendation.NewRecommendationService(repo, health.NewTracker(), zap.NewNop())

	res, err := svc.GetByKey(context.Background(), "blight")

	require.NoError(t, err)
	assert.Equal(t, domain.DiseaseBacterialLeafBlight, res.DiseaseKey)
}

func TestGetByKeyUnknownKey(t *testing.T) {
	svc := recommendation.NewRecommendationService(seededRepository(), health.NewTracker(), zap.NewNop())

	_, err := svc.GetByKey(context.Background(), "tungro")

	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
}

func TestGetAll(t *testing.T) {
	svc := recommendation.NewRecommendationService(seededRepository(), health.NewTracker(), zap.NewNop())

	res, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, res.Recommendations, 2)
}

func TestSplitJoinSteps(t *testing.T) {
	steps := []string{"first", "second", "third"}

	assert.Equal(t, steps, recommendation.SplitSteps(recommendation.JoinSteps(steps)))
	assert.Nil(t, recommendation.SplitSteps(""))
}
