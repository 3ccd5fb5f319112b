package services_test

import (
	"errors"
	"testing"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services"
)

func TestGetCampaigns_FiltersByPlatform(t *testing.T) {
	linkedin := linkedInCampaign(models.ApprovalPending, models.PlatformStatusDraft)
	google := googleCampaign(models.ApprovalApproved, models.PlatformStatusActive)
	service := services.NewCampaignService(newFakeStore(linkedin, google), &fakeEventStore{})

	responses, total, err := service.GetCampaigns(models.CampaignFilter{Platform: models.PlatformGoogleAds}, 0, 20)
	if err != nil {
		t.Fatalf("Expected list to succeed, got %v", err)
	}
	if total != 1 || len(responses) != 1 {
		t.Fatalf("Expected one Google campaign, got total=%d len=%d", total, len(responses))
	}
	if responses[0].ID != google.ID {
		t.Errorf("Expected %s, got %s", google.ID, responses[0].ID)
	}
}

func TestGetCampaignsForExport_PagesThroughEverything(t *testing.T) {
	// Well past one batch so the export has to page
	store := newFakeStore()
	for i := 0; i < 2350; i++ {
		campaign := googleCampaign(models.ApprovalPending, models.PlatformStatusDraft)
		store.campaigns[campaign.ID] = campaign
	}
	service := services.NewCampaignService(store, &fakeEventStore{})

	campaigns, err := service.GetCampaignsForExport(models.CampaignFilter{})
	if err != nil {
		t.Fatalf("Expected export listing to succeed, got %v", err)
	}
	if len(campaigns) != 2350 {
		t.Fatalf("Expected every campaign in the export, got %d of 2350", len(campaigns))
	}

	seen := make(map[string]bool, len(campaigns))
	for _, campaign := range campaigns {
		if seen[campaign.ID] {
			t.Fatalf("Campaign %s appears twice in the export", campaign.ID)
		}
		seen[campaign.ID] = true
	}
}

func TestGetCampaignByID_NotFound(t *testing.T) {
	service := services.NewCampaignService(newFakeStore(), &fakeEventStore{})

	_, err := service.GetCampaignByID("missing-id")
	var notFoundErr *apperrors.CampaignNotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("Expected CampaignNotFoundError, got %v", err)
	}
}

func TestGetCampaignEvents_ScopedToCampaign(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusActive)
	other := googleCampaign(models.ApprovalPending, models.PlatformStatusDraft)
	events := &fakeEventStore{}
	events.Create(&models.CampaignEvent{CampaignID: campaign.ID, Transition: models.TransitionApprove})
	events.Create(&models.CampaignEvent{CampaignID: campaign.ID, Transition: models.TransitionActivate})
	events.Create(&models.CampaignEvent{CampaignID: other.ID, Transition: models.TransitionApprove})
	service := services.NewCampaignService(newFakeStore(campaign, other), events)

	feed, err := service.GetCampaignEvents(campaign.ID)
	if err != nil {
		t.Fatalf("Expected event feed, got %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("Expected two events, got %d", len(feed))
	}
	for _, event := range feed {
		if event.CampaignID != campaign.ID {
			t.Errorf("Expected only this campaign's events, got %s", event.CampaignID)
		}
	}

	if _, err := service.GetCampaignEvents("missing-id"); err == nil {
		t.Error("Expected error for unknown campaign")
	}
}

func TestToResponse_CarriesDualState(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusPaused)
	campaign.ExternalRef = "li-5521"
	service := services.NewCampaignService(newFakeStore(campaign), &fakeEventStore{})

	response := service.ToResponse(campaign)
	if response.ApprovalStatus != models.ApprovalApproved || response.PlatformStatus != models.PlatformStatusPaused {
		t.Errorf("Expected both state axes carried, got %s / %s", response.ApprovalStatus, response.PlatformStatus)
	}
	if response.ExternalRef != "li-5521" {
		t.Errorf("Expected external ref carried, got %q", response.ExternalRef)
	}
}
