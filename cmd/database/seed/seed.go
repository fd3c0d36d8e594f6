package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riceguard/domain"
	"riceguard/entities"
	"riceguard/pkg/recommendation"
)

type defaultRecommendation struct {
	title   string
	steps   []string
	version string
}

var defaultRecommendations = map[domain.DiseaseKey]defaultRecommendation{
	domain.DiseaseBacterialLeafBlight: {
		title: "Bacterial Leaf Blight - Management",
		steps: []string{
			"Use clean, certified seed and remove volunteer rice plants and weeds",
			"Improve field sanitation and water management; avoid standing water for long periods",
			"Avoid excessive nitrogen during early growth; prefer split applications",
		},
		version: "1.1",
	},
	domain.DiseaseBrownSpot: {
		title: "Brown Spot - Management",
		steps: []string{
			"Remove severely infected leaves and crop residues after harvest",
			"Ensure proper field drainage and avoid water stress",
			"Apply balanced fertilizer (add potassium; avoid excess nitrogen)",
		},
		version: "1.1",
	},
	domain.DiseaseHealthy: {
		title: "Healthy - No Action Needed",
		steps: []string{
			"Maintain good field hygiene and monitor crops regularly",
			"Follow balanced fertilization and proper spacing to sustain plant vigor",
		},
		version: "1.1",
	},
	domain.DiseaseLeafBlast: {
		title: "Leaf Blast - Management",
		steps: []string{
			"Plant resistant or tolerant varieties when available",
			"Avoid late planting; synchronize planting to reduce inoculum pressure",
			"Improve airflow with proper spacing; avoid dense planting and excessive nitrogen",
		},
		version: "1.1",
	},
	domain.DiseaseLeafScald: {
		title: "Leaf Scald - Management",
		steps: []string{
			"Use balanced fertilization and avoid excess nitrogen",
			"Manage irrigation to reduce stress; maintain good drainage and avoid prolonged leaf wetness",
			"Remove crop debris after harvest; practice crop rotation if feasible",
		},
		version: "1.1",
	},
	domain.DiseaseNarrowBrownSpot: {
		title: "Narrow Brown Spot - Management",
		steps: []string{
			"Plant resistant varieties if available and use clean seed",
			"Apply balanced fertilization; potassium deficiency worsens the disease",
			"Remove infected residues after harvest to reduce carryover",
		},
		version: "1.1",
	},
}

// SeedRecommendations migrates legacy-keyed rows to their canonical keys and
// inserts any missing default recommendation. Existing rows are left alone so
// an externally curated store is never overwritten.
func SeedRecommendations(ctx context.Context, db *gorm.DB) error {
	repo := recommendation.NewRecommendationRepository(db)

	for oldKey, newKey := range domain.DiseaseKeyAliases {
		if _, err := repo.GetByDiseaseKey(ctx, newKey.String()); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := repo.UpdateDiseaseKey(ctx, oldKey, newKey.String()); err != nil {
			return err
		}
	}

	inserted := 0
	for key, rec := range defaultRecommendations {
		if _, err := repo.GetByDiseaseKey(ctx, key.String()); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entity := &entities.Recommendation{
			ID:         uuid.New(),
			DiseaseKey: key.String(),
			Title:      rec.title,
			Steps:      recommendation.JoinSteps(rec.steps),
			Version:    rec.version,
		}
		if err := repo.Insert(ctx, entity); err != nil {
			return err
		}
		inserted++
	}

	fmt.Printf("Recommendation seed complete (inserted %d)\n", inserted)
	return nil
}
