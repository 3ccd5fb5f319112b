package repository

import (
	"gorm.io/gorm"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

type CampaignEventRepository struct {
	db *gorm.DB
}

func NewCampaignEventRepository(db *gorm.DB) *CampaignEventRepository {
	return &CampaignEventRepository{db: db}
}

// Create appends a lifecycle event
func (r *CampaignEventRepository) Create(event *models.CampaignEvent) error {
	return r.db.Create(event).Error
}

// GetByCampaignID retrieves the activity feed for a campaign, newest first
func (r *CampaignEventRepository) GetByCampaignID(campaignID string) ([]*models.CampaignEvent, error) {
	var events []*models.CampaignEvent
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}
