package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// StoreRequest payload for create and update.
type StoreRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// StoreResponse view.
type StoreResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"ownerUserId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewStoreResponse maps a domain store.
func NewStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID,
		OwnerUserID: s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ThemeResponse view. Settings are flattened next to the identifiers.
type ThemeResponse struct {
	ID      string `json:"id"`
	StoreID string `json:"storeId"`
	domain.ThemeSettings
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewThemeResponse maps a domain theme customization.
func NewThemeResponse(t *domain.ThemeCustomization) ThemeResponse {
	return ThemeResponse{
		ID:            t.ID,
		StoreID:       t.StoreID,
		ThemeSettings: t.Settings,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
