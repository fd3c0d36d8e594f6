package recommendation

import (
	"context"

	"gorm.io/gorm"

	"riceguard/entities"
)

type (
	RecommendationRepository interface {
		GetByDiseaseKey(ctx context.Context, diseaseKey string) (*entities.Recommendation, error)
		GetAll(ctx context.Context) ([]*entities.Recommendation, error)
		Insert(ctx context.Context, recommendation *entities.Recommendation) error
		UpdateDiseaseKey(ctx context.Context, oldKey, newKey string) error
	}

	recommendationRepository struct {
		db *gorm.DB
	}
)

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) GetByDiseaseKey(ctx context.Context, diseaseKey string) (*entities.Recommendation, error) {
	var recommendation entities.Recommendation
	if err := r.db.WithContext(ctx).Where("disease_key = ?", diseaseKey).First(&recommendation).Error; err != nil {
		return nil, err
	}
	return &recommendation, nil
}

func (r *recommendationRepository) GetAll(ctx context.Context) ([]*entities.Recommendation, error) {
	var recommendations []*entities.Recommendation
	if err := r.db.WithContext(ctx).Order("disease_key asc").Find(&recommendations).Error; err != nil {
		return nil, err
	}
	return recommendations, nil
}

func (r *recommendationRepository) Insert(ctx context.Context, recommendation *entities.Recommendation) error {
	return r.db.WithContext(ctx).Create(recommendation).Error
}

func (r *recommendationRepository) UpdateDiseaseKey(ctx context.Context, oldKey, newKey string) error {
	return r.db.WithContext(ctx).Model(&entities.Recommendation{}).
		Where("disease_key = ?", oldKey).
		Update("disease_key", newKey).Error
}
