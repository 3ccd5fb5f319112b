package linkedinads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adlift/marketing-ops-backend/internal/config"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services/adplatform"
)

// Adapter implements campaign operations for the LinkedIn Campaign Manager API
type Adapter struct {
	cfg    *config.LinkedInAdsConfig
	client *http.Client
}

// NewAdapter creates a new LinkedIn Ads adapter
func NewAdapter() *Adapter {
	return NewAdapterWithConfig(config.GetLinkedInAdsConfig(), &http.Client{
		Timeout: config.PlatformTimeout(),
	})
}

// NewAdapterWithConfig creates an adapter with explicit config and client
func NewAdapterWithConfig(cfg *config.LinkedInAdsConfig, client *http.Client) *Adapter {
	return &Adapter{cfg: cfg, client: client}
}

// GetPlatformName returns the platform name
func (a *Adapter) GetPlatformName() string {
	return a.cfg.Name
}

// RequiredFields returns the field labels LinkedIn requires before a
// campaign can be approved, in declared order
func (a *Adapter) RequiredFields() []string {
	return []string{
		"Objective", "Daily Budget", "Total Budget", "Start Date",
		"End Date", "Target Location", "Target Language",
	}
}

// Activate sets the campaign ACTIVE on LinkedIn
func (a *Adapter) Activate(ctx context.Context, campaign *models.Campaign) (*adplatform.PlatformState, error) {
	return a.changeStatus(ctx, campaign, "activate_campaign", models.PlatformStatusActive)
}

// Pause sets the campaign PAUSED on LinkedIn
func (a *Adapter) Pause(ctx context.Context, campaign *models.Campaign) (*adplatform.PlatformState, error) {
	return a.changeStatus(ctx, campaign, "pause_campaign", models.PlatformStatusPaused)
}

// Delete archives the campaign on LinkedIn; archived campaigns cannot be restored
func (a *Adapter) Delete(ctx context.Context, campaign *models.Campaign) (*adplatform.PlatformState, error) {
	return a.changeStatus(ctx, campaign, "archive_campaign", models.PlatformStatusDeleted)
}

// UpdateContent pushes a content patch (text, budget, targeting) to LinkedIn
func (a *Adapter) UpdateContent(ctx context.Context, campaign *models.Campaign, patch *models.UpdateCampaignContentRequest) (*adplatform.PlatformState, error) {
	apiURL, err := a.routeURL("update_campaign", campaign)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content patch: %w", err)
	}

	return a.doRequest(ctx, http.MethodPut, apiURL, body, campaign.PlatformStatus)
}

func (a *Adapter) changeStatus(ctx context.Context, campaign *models.Campaign, route string, requested models.PlatformStatus) (*adplatform.PlatformState, error) {
	apiURL, err := a.routeURL(route, campaign)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{
		"campaign": a.remoteID(campaign),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return a.doRequest(ctx, http.MethodPost, apiURL, body, requested)
}

func (a *Adapter) routeURL(route string, campaign *models.Campaign) (string, error) {
	path, exists := a.cfg.Routes[route]
	if !exists {
		return "", fmt.Errorf("%s route not found in LinkedIn Ads config", route)
	}
	return a.cfg.BaseURL + strings.ReplaceAll(path, "{id}", a.remoteID(campaign)), nil
}

func (a *Adapter) remoteID(campaign *models.Campaign) string {
	if campaign.ExternalRef != "" {
		return campaign.ExternalRef
	}
	return campaign.ID
}

type statusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (a *Adapter) doRequest(ctx context.Context, method, apiURL string, body []byte, requested models.PlatformStatus) (*adplatform.PlatformState, error) {
	req, err := http.NewRequestWithContext(ctx, method, apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach LinkedIn Ads API: %w", err)
	}
	defer resp.Body.Close()

	// Already in the requested state; success, so retries stay harmless
	if resp.StatusCode == http.StatusConflict {
		return &adplatform.PlatformState{Status: requested, ExternalRef: ""}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("LinkedIn Ads API returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode LinkedIn Ads response: %w", err)
	}

	return &adplatform.PlatformState{
		Status:      mapRemoteStatus(parsed.Status, requested),
		ExternalRef: parsed.ID,
	}, nil
}

// mapRemoteStatus translates LinkedIn status vocabulary. LinkedIn exposes a
// DRAFT status that Google does not.
func mapRemoteStatus(remote string, requested models.PlatformStatus) models.PlatformStatus {
	switch strings.ToUpper(remote) {
	case "ACTIVE":
		return models.PlatformStatusActive
	case "PAUSED":
		return models.PlatformStatusPaused
	case "ARCHIVED", "CANCELED":
		return models.PlatformStatusDeleted
	case "DRAFT":
		return models.PlatformStatusDraft
	}
	return requested
}
