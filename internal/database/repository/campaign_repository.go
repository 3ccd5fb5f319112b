package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
	"github.com/adlift/marketing-ops-backend/internal/models"
)

// CampaignRepository is the system of record for campaigns. All status
// writes go through Commit, which updates a single record atomically.
type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &campaign, nil
}

// List retrieves campaigns matching the filter, newest first
func (r *CampaignRepository) List(filter models.CampaignFilter, offset, limit int) ([]*models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}
	if filter.PlatformStatus != "" {
		query = query.Where("platform_status = ?", filter.PlatformStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []*models.Campaign
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&campaigns).Error
	return campaigns, total, err
}

// Commit applies a patch to a single campaign record atomically and returns
// the updated record
func (r *CampaignRepository) Commit(id string, patch map[string]interface{}) (*models.Campaign, error) {
	result := r.db.Model(&models.Campaign{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	return r.GetByID(id)
}
