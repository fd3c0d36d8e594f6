package entities

import (
	"github.com/google/uuid"
)

// ScanRecord is one analyzed leaf image. Label, confidence, model version and
// image URL are fixed at creation; only the note can change afterwards.
type ScanRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"index" json:"user_id"`
	ImageURL     string    `json:"image_url"`
	Label        string    `gorm:"type:varchar(40)" json:"label"`
	Confidence   float64   `json:"confidence"` // percent scale, original precision preserved
	ModelVersion string    `gorm:"type:varchar(40)" json:"model_version"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
