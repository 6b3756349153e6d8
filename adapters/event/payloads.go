package event

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	PortfolioEventTypeSaved EventType = "portfolio.saved"
	MediaEventTypeUploaded  EventType = "media.uploaded"
)

type PortfolioEventPayload struct {
	EventType      EventType `json:"event_type"`
	OwnerID        string    `json:"owner_id"`
	UpdatedAt      time.Time `json:"updated_at"`
	CompletedCount int       `json:"completed_count"`
	TotalCount     int       `json:"total_count"`
	TemplateID     string    `json:"template_id,omitempty"`
}

type MediaEventPayload struct {
	EventType        EventType `json:"event_type"`
	MediaID          uuid.UUID `json:"media_id"`
	OwnerID          string    `json:"owner_id"`
	Kind             string    `json:"kind"`
	Provider         string    `json:"provider"`
	OriginalURL      string    `json:"original_url"`
	OriginalPublicID string    `json:"original_public_id"`
}
