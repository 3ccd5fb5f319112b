package googleads

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

// Adapter implements campaign operations for the Google Ads management API
type Adapter struct {
	cfg    *config.GoogleAdsConfig
	client *http.Client
}

// NewAdapter creates a new Google Ads adapter
func NewAdapter() *Adapter {
	return NewAdapterWithConfig(config.GetGoogleAdsConfig(), &http.Client{
		Timeout: config.PlatformTimeout(),
	})
}

// NewAdapterWithConfig creates an adapter with explicit config and client
func NewAdapterWithConfig(cfg *config.GoogleAdsConfig, client *http.Client) *Adapter {
	return &Adapter{cfg: cfg, client: client}
}

// GetPlatformName returns the platform name
func (a *Adapter) GetPlatformName() string {
	return a.cfg.Name
}

// RequiredFields returns the field labels Google Ads requires before a
// campaign can be approved, in declared order
func (a *Adapter) RequiredFields() []string {
	return []string{"Campaign Name", "Ad Group Name", "Budget", "Destination URL"}
}

// Activate enables the campaign on Google Ads
func (a *Adapter) Activate(ctx context.Context, campaign *models.Campaign) (*adplatform.PlatformState, error) {
	return a.changeStatus(ctx, campaign, "activate_campaign", models.PlatformStatusActive)
}

// Pause pauses the campaign on Google Ads
func (a *Adapter) Pause(ctx context.Context, campaign *models.Campaign) (*adplatform.PlatformState, error) {
	return a.changeStatus(ctx, campaign, "pause_campaign", models.PlatformStatusPaused)
}

// Delete removes the campaign on Google Ads. Removal is terminal there.
func (a *Adapter) Delete(ctx context.Context, campaign *models.Campaign) (*adplatform.PlatformState, error) {
	return a.changeStatus(ctx, campaign, "remove_campaign", models.PlatformStatusDeleted)
}

// UpdateContent pushes a content patch (text, budget, targeting) to Google Ads
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

// changeStatus issues a lifecycle call and maps the confirmed remote status
func (a *Adapter) changeStatus(ctx context.Context, campaign *models.Campaign, route string, requested models.PlatformStatus) (*adplatform.PlatformState, error) {
	apiURL, err := a.routeURL(route, campaign)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{
		"campaign_id": a.remoteID(campaign),
		"name":        campaign.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return a.doRequest(ctx, http.MethodPost, apiURL, body, requested)
}

func (a *Adapter) routeURL(route string, campaign *models.Campaign) (string, error) {
	path, exists := a.cfg.Routes[route]
	if !exists {
		return "", fmt.Errorf("%s route not found in Google Ads config", route)
	}
	return a.cfg.BaseURL + strings.ReplaceAll(path, "{id}", a.remoteID(campaign)), nil
}

// remoteID prefers the platform's own reference; campaigns not yet known to
// Google Ads are addressed by our id
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

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Google Ads API: %w", err)
	}
	defer resp.Body.Close()

	// 409 means the campaign is already in the requested state. Treated as
	// success so replaying a transition after a local timeout is safe.
	if resp.StatusCode == http.StatusConflict {
		return &adplatform.PlatformState{Status: requested, ExternalRef: ""}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Google Ads API returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode Google Ads response: %w", err)
	}

	return &adplatform.PlatformState{
		Status:      mapRemoteStatus(parsed.Status, requested),
		ExternalRef: parsed.ID,
	}, nil
}

// mapRemoteStatus translates Google Ads status vocabulary to the uniform
// platform status. APPROVED (approved but not yet serving) counts as active
// for lifecycle purposes.
func mapRemoteStatus(remote string, requested models.PlatformStatus) models.PlatformStatus {
	switch strings.ToUpper(remote) {
	case "ENABLED", "APPROVED", "SERVING":
		return models.PlatformStatusActive
	case "PAUSED":
		return models.PlatformStatusPaused
	case "REMOVED":
		return models.PlatformStatusDeleted
	case "DRAFT", "UNSPECIFIED":
		return models.PlatformStatusDraft
	}
	return requested
}
