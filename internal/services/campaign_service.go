package services

import (
	"time"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// CampaignService serves the dashboard's read side: lists, detail views and
// the activity feed. All mutation goes through the dispatcher and engine.
type CampaignService struct {
	store  CampaignStore
	events CampaignEventStore
}

func NewCampaignService(store CampaignStore, events CampaignEventStore) *CampaignService {
	return &CampaignService{
		store:  store,
		events: events,
	}
}

// GetCampaigns retrieves campaigns matching the filter with pagination
func (s *CampaignService) GetCampaigns(filter models.CampaignFilter, offset, limit int) ([]*models.CampaignResponse, int64, error) {
	campaigns, total, err := s.store.List(filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	return responses, total, nil
}

// exportBatchSize bounds each page pulled while building a report
const exportBatchSize = 1000

// GetCampaignsForExport pages through every campaign matching the filter so
// the report is never silently truncated
func (s *CampaignService) GetCampaignsForExport(filter models.CampaignFilter) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	for offset := 0; ; offset += exportBatchSize {
		batch, _, err := s.store.List(filter, offset, exportBatchSize)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, batch...)
		if len(batch) < exportBatchSize {
			return campaigns, nil
		}
	}
}

// GetCampaignByID retrieves a campaign by ID
func (s *CampaignService) GetCampaignByID(campaignID string) (*models.CampaignResponse, error) {
	campaign, err := s.store.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(campaign), nil
}

// GetCampaignEvents retrieves the activity feed for a campaign
func (s *CampaignService) GetCampaignEvents(campaignID string) ([]*models.CampaignEvent, error) {
	if _, err := s.store.GetByID(campaignID); err != nil {
		return nil, err
	}
	return s.events.GetByCampaignID(campaignID)
}

// ToResponse converts a Campaign model to its response DTO
func (s *CampaignService) ToResponse(campaign *models.Campaign) *models.CampaignResponse {
	return s.toResponse(campaign)
}

func (s *CampaignService) toResponse(campaign *models.Campaign) *models.CampaignResponse {
	return &models.CampaignResponse{
		ID:              campaign.ID,
		Platform:        campaign.Platform,
		ApprovalStatus:  campaign.ApprovalStatus,
		PlatformStatus:  campaign.PlatformStatus,
		Name:            campaign.Name,
		AdGroupName:     campaign.AdGroupName,
		Headline:        campaign.Headline,
		Description:     campaign.Description,
		DestinationURL:  campaign.DestinationURL,
		ImageRef:        campaign.ImageRef,
		Objective:       campaign.Objective,
		Keywords:        campaign.Keywords,
		Budget:          campaign.Budget,
		DailyBudget:     campaign.DailyBudget,
		TotalBudget:     campaign.TotalBudget,
		StartDate:       campaign.StartDate,
		EndDate:         campaign.EndDate,
		TargetLocation:  campaign.TargetLocation,
		TargetLanguage:  campaign.TargetLanguage,
		ExternalRef:     campaign.ExternalRef,
		RejectionReason: campaign.RejectionReason,
		ApprovedBy:      campaign.ApprovedBy,
		ApprovedAt:      campaign.ApprovedAt,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       campaign.UpdatedAt.Format(time.RFC3339),
	}
}
