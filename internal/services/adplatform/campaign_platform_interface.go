package adplatform

import (
	"context"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// PlatformState is the operational state of a campaign as confirmed by the
// remote ad network. The lifecycle engine commits nothing the platform did
// not confirm.
type PlatformState struct {
	Status      models.PlatformStatus `json:"status"`
	ExternalRef string                `json:"external_ref"`
}

// CampaignPlatformInterface defines the operations every ad network adapter
// must provide. Activate, Pause and Delete are idempotent: requesting a state
// the campaign is already in succeeds without effect.
type CampaignPlatformInterface interface {
	// Lifecycle operations
	Activate(ctx context.Context, campaign *models.Campaign) (*PlatformState, error)
	Pause(ctx context.Context, campaign *models.Campaign) (*PlatformState, error)
	Delete(ctx context.Context, campaign *models.Campaign) (*PlatformState, error)

	// Content edits unrelated to lifecycle (text, budget, targeting)
	UpdateContent(ctx context.Context, campaign *models.Campaign, patch *models.UpdateCampaignContentRequest) (*PlatformState, error)

	// Platform info
	GetPlatformName() string
	RequiredFields() []string
}

// CampaignPlatformFactory resolves the adapter for a campaign's platform
type CampaignPlatformFactory interface {
	CreateCampaignPlatform(platform models.Platform) (CampaignPlatformInterface, error)
	GetSupportedPlatforms() []models.Platform
}
