package domain

import "time"

type (
	HealthResponse struct {
		Status    string    `json:"status"`
		Inference string    `json:"inference"`
		Storage   string    `json:"storage"`
		CheckedAt time.Time `json:"checked_at"`
	}
)
