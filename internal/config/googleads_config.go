package config

// GoogleAdsConfig contains Google Ads management API configuration
type GoogleAdsConfig struct {
	Name    string            `json:"name"`
	BaseURL string            `json:"base_url"`
	Routes  map[string]string `json:"routes"`
}

// GetGoogleAdsConfig returns Google Ads configuration
func GetGoogleAdsConfig() *GoogleAdsConfig {
	return &GoogleAdsConfig{
		Name:    "Google Ads",
		BaseURL: GetEnv("GOOGLE_ADS_API_URL", "http://localhost:9081/google-ads"),
		Routes: map[string]string{
			// Campaign lifecycle
			"activate_campaign": "/v1/campaigns/{id}/enable",
			"pause_campaign":    "/v1/campaigns/{id}/pause",
			"remove_campaign":   "/v1/campaigns/{id}/remove",

			// Campaign content
			"update_campaign": "/v1/campaigns/{id}",
			"get_campaign":    "/v1/campaigns/{id}",
		},
	}
}
