package entities

import (
	"github.com/google/uuid"
)

// Recommendation holds the current treatment guidance for one canonical
// disease key. Steps are stored newline-separated; exactly one row exists per
// key. Rows are seeded by cmd/database/seed and read-only at request time.
type Recommendation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DiseaseKey string    `gorm:"type:varchar(40);uniqueIndex" json:"disease_key"`
	Title      string    `json:"title"`
	Steps      string    `gorm:"type:text" json:"steps"`
	Version    string    `gorm:"type:varchar(20)" json:"version"`

	Timestamp
}
