package adplatform

import (
	"fmt"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// CampaignPlatformFactoryImpl implements CampaignPlatformFactory over a set
// of injected adapter instances. Implementations are registered at wiring
// time to keep this package free of adapter imports.
type CampaignPlatformFactoryImpl struct {
	platforms map[models.Platform]CampaignPlatformInterface
}

// NewCampaignPlatformFactory creates a factory over the given adapters
func NewCampaignPlatformFactory(platforms map[models.Platform]CampaignPlatformInterface) *CampaignPlatformFactoryImpl {
	return &CampaignPlatformFactoryImpl{platforms: platforms}
}

// CreateCampaignPlatform returns the adapter for a platform
func (f *CampaignPlatformFactoryImpl) CreateCampaignPlatform(platform models.Platform) (CampaignPlatformInterface, error) {
	adapter, ok := f.platforms[platform]
	if !ok {
		return nil, fmt.Errorf("unsupported ad platform: %s", platform)
	}
	return adapter, nil
}

// GetSupportedPlatforms returns the list of registered platforms
func (f *CampaignPlatformFactoryImpl) GetSupportedPlatforms() []models.Platform {
	platforms := make([]models.Platform, 0, len(f.platforms))
	for p := range f.platforms {
		platforms = append(platforms, p)
	}
	return platforms
}
