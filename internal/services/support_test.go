package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services/adplatform"
)

// fakeStore is an in-memory CampaignStore
type fakeStore struct {
	mu        sync.Mutex
	campaigns map[string]*models.Campaign
}

func newFakeStore(campaigns ...*models.Campaign) *fakeStore {
	s := &fakeStore{campaigns: make(map[string]*models.Campaign)}
	for _, c := range campaigns {
		copied := *c
		s.campaigns[c.ID] = &copied
	}
	return s
}

func (s *fakeStore) GetByID(id string) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	copied := *campaign
	return &copied, nil
}

func (s *fakeStore) List(filter models.CampaignFilter, offset, limit int) ([]*models.Campaign, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Campaign
	for _, campaign := range s.campaigns {
		if filter.Platform != "" && campaign.Platform != filter.Platform {
			continue
		}
		if filter.ApprovalStatus != "" && campaign.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		if filter.PlatformStatus != "" && campaign.PlatformStatus != filter.PlatformStatus {
			continue
		}
		copied := *campaign
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *fakeStore) Commit(id string, patch map[string]interface{}) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[id]
	if !ok {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	for column, value := range patch {
		switch column {
		case "approval_status":
			campaign.ApprovalStatus = value.(models.ApprovalStatus)
		case "platform_status":
			campaign.PlatformStatus = value.(models.PlatformStatus)
		case "rejection_reason":
			campaign.RejectionReason = value.(string)
		case "approved_by":
			campaign.ApprovedBy = value.(string)
		case "approved_at":
			campaign.ApprovedAt = value.(*time.Time)
		case "external_ref":
			campaign.ExternalRef = value.(string)
		case "name":
			campaign.Name = value.(string)
		case "daily_budget":
			campaign.DailyBudget = value.(*float64)
		}
	}
	campaign.UpdatedAt = time.Now()
	copied := *campaign
	return &copied, nil
}

// fakeEventStore records published events
type fakeEventStore struct {
	mu     sync.Mutex
	events []*models.CampaignEvent
}

func (s *fakeEventStore) Create(event *models.CampaignEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *fakeEventStore) GetByCampaignID(campaignID string) ([]*models.CampaignEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.CampaignEvent
	for _, e := range s.events {
		if e.CampaignID == campaignID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeAdapter is a scriptable CampaignPlatformInterface. When started and
// release are set, lifecycle calls signal started then wait on release,
// which lets tests hold a transition in flight.
type fakeAdapter struct {
	mu            sync.Mutex
	activateCalls int
	pauseCalls    int
	deleteCalls   int
	updateCalls   int
	err           error
	started       chan struct{}
	release       chan struct{}
	startOnce     sync.Once
}

func (a *fakeAdapter) call(counter *int, status models.PlatformStatus) (*adplatform.PlatformState, error) {
	if a.started != nil {
		a.startOnce.Do(func() { close(a.started) })
		<-a.release
	}
	a.mu.Lock()
	*counter++
	err := a.err
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &adplatform.PlatformState{Status: status, ExternalRef: "ext-123"}, nil
}

func (a *fakeAdapter) Activate(ctx context.Context, c *models.Campaign) (*adplatform.PlatformState, error) {
	return a.call(&a.activateCalls, models.PlatformStatusActive)
}

func (a *fakeAdapter) Pause(ctx context.Context, c *models.Campaign) (*adplatform.PlatformState, error) {
	return a.call(&a.pauseCalls, models.PlatformStatusPaused)
}

func (a *fakeAdapter) Delete(ctx context.Context, c *models.Campaign) (*adplatform.PlatformState, error) {
	return a.call(&a.deleteCalls, models.PlatformStatusDeleted)
}

func (a *fakeAdapter) UpdateContent(ctx context.Context, c *models.Campaign, patch *models.UpdateCampaignContentRequest) (*adplatform.PlatformState, error) {
	return a.call(&a.updateCalls, c.PlatformStatus)
}

func (a *fakeAdapter) GetPlatformName() string { return "fake" }

func (a *fakeAdapter) RequiredFields() []string {
	return []string{
		"Objective", "Daily Budget", "Total Budget", "Start Date",
		"End Date", "Target Location", "Target Language",
	}
}

func newFactory(adapter adplatform.CampaignPlatformInterface) adplatform.CampaignPlatformFactory {
	return adplatform.NewCampaignPlatformFactory(map[models.Platform]adplatform.CampaignPlatformInterface{
		models.PlatformGoogleAds:   adapter,
		models.PlatformLinkedInAds: adapter,
	})
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

var campaignCounter int

// linkedInCampaign builds a LinkedIn campaign with every required field set
func linkedInCampaign(approval models.ApprovalStatus, platform models.PlatformStatus) *models.Campaign {
	campaignCounter++
	return &models.Campaign{
		ID:             fmt.Sprintf("c-%04d", campaignCounter),
		Platform:       models.PlatformLinkedInAds,
		ApprovalStatus: approval,
		PlatformStatus: platform,
		Name:           "Q3 Brand Awareness",
		Objective:      "BRAND_AWARENESS",
		DailyBudget:    floatPtr(50),
		TotalBudget:    floatPtr(1500),
		StartDate:      timePtr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:        timePtr(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)),
		TargetLocation: "Germany",
		TargetLanguage: "de",
	}
}

// googleCampaign builds a Google Ads campaign with every required field set
func googleCampaign(approval models.ApprovalStatus, platform models.PlatformStatus) *models.Campaign {
	campaignCounter++
	return &models.Campaign{
		ID:             fmt.Sprintf("c-%04d", campaignCounter),
		Platform:       models.PlatformGoogleAds,
		ApprovalStatus: approval,
		PlatformStatus: platform,
		Name:           "Search: Running Shoes",
		AdGroupName:    "running-shoes-exact",
		Budget:         floatPtr(200),
		DestinationURL: "https://shop.example.com/running-shoes",
	}
}
