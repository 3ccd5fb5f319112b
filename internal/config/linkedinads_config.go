package config

// LinkedInAdsConfig contains LinkedIn Campaign Manager API configuration
type LinkedInAdsConfig struct {
	Name    string            `json:"name"`
	BaseURL string            `json:"base_url"`
	Routes  map[string]string `json:"routes"`
}

// GetLinkedInAdsConfig returns LinkedIn Ads configuration
func GetLinkedInAdsConfig() *LinkedInAdsConfig {
	return &LinkedInAdsConfig{
		Name:    "LinkedIn Ads",
		BaseURL: GetEnv("LINKEDIN_ADS_API_URL", "http://localhost:9082/linkedin-ads"),
		Routes: map[string]string{
			// Campaign lifecycle. LinkedIn exposes a draft-visible status
			// that Google does not.
			"activate_campaign": "/v2/adCampaigns/{id}/activate",
			"pause_campaign":    "/v2/adCampaigns/{id}/pause",
			"archive_campaign":  "/v2/adCampaigns/{id}/archive",

			// Campaign content
			"update_campaign": "/v2/adCampaigns/{id}",
			"get_campaign":    "/v2/adCampaigns/{id}",
		},
	}
}
