package models

import (
	"time"
)

// Campaign represents one advertising campaign proposal/instance on exactly
// one ad network. Approval state and platform state are independent axes;
// the lifecycle service is the only writer of both.
type Campaign struct {
	ID       string   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Platform Platform `json:"platform" gorm:"type:varchar(50);not null;index"`

	ApprovalStatus ApprovalStatus `json:"approval_status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	PlatformStatus PlatformStatus `json:"platform_status" gorm:"type:varchar(20);not null;index;default:'draft'"`

	// Creative/targeting payload. Required-ness varies by platform; the
	// completeness validator is the authority on what must be set.
	Name           string     `json:"name" gorm:"type:varchar(255)"`
	AdGroupName    string     `json:"ad_group_name" gorm:"type:varchar(255)"`
	Headline       string     `json:"headline" gorm:"type:varchar(255)"`
	Description    string     `json:"description" gorm:"type:text"`
	DestinationURL string     `json:"destination_url" gorm:"type:text"`
	ImageRef       string     `json:"image_ref" gorm:"type:text"`
	Objective      string     `json:"objective" gorm:"type:varchar(100)"`
	Keywords       string     `json:"keywords" gorm:"type:text"`
	Budget         *float64   `json:"budget"`
	DailyBudget    *float64   `json:"daily_budget"`
	TotalBudget    *float64   `json:"total_budget"`
	StartDate      *time.Time `json:"start_date" gorm:"index"`
	EndDate        *time.Time `json:"end_date" gorm:"index"`
	TargetLocation string     `json:"target_location" gorm:"type:varchar(255)"`
	TargetLanguage string     `json:"target_language" gorm:"type:varchar(100)"`

	// Identifier of the campaign on the remote ad network, set once the
	// platform has acknowledged it.
	ExternalRef string `json:"external_ref,omitempty" gorm:"type:varchar(255)"`

	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"type:text"`
	ApprovedBy      string     `json:"approved_by,omitempty" gorm:"type:varchar(255)"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// Summary returns the short form shown on confirmation dialogs
func (c *Campaign) Summary() CampaignSummary {
	return CampaignSummary{
		ID:             c.ID,
		Name:           c.Name,
		Platform:       c.Platform,
		ApprovalStatus: c.ApprovalStatus,
		PlatformStatus: c.PlatformStatus,
	}
}

// CampaignFilter narrows campaign list queries
type CampaignFilter struct {
	Platform       Platform
	ApprovalStatus ApprovalStatus
	PlatformStatus PlatformStatus
}

// CampaignSummary is the condensed view carried on confirmation tickets
type CampaignSummary struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Platform       Platform       `json:"platform"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	PlatformStatus PlatformStatus `json:"platform_status"`
}

// UpdateCampaignContentRequest represents a content edit (text, budget,
// targeting). Only campaigns still pending approval accept edits.
type UpdateCampaignContentRequest struct {
	Name           *string    `json:"name,omitempty"`
	AdGroupName    *string    `json:"ad_group_name,omitempty"`
	Headline       *string    `json:"headline,omitempty"`
	Description    *string    `json:"description,omitempty"`
	DestinationURL *string    `json:"destination_url,omitempty"`
	ImageRef       *string    `json:"image_ref,omitempty"`
	Objective      *string    `json:"objective,omitempty"`
	Keywords       *string    `json:"keywords,omitempty"`
	Budget         *float64   `json:"budget,omitempty"`
	DailyBudget    *float64   `json:"daily_budget,omitempty"`
	TotalBudget    *float64   `json:"total_budget,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	TargetLocation *string    `json:"target_location,omitempty"`
	TargetLanguage *string    `json:"target_language,omitempty"`
}

// TransitionRequest represents a caller's intent to move a campaign through
// the lifecycle. RejectionReason is required for reject and ignored otherwise.
type TransitionRequest struct {
	Kind            TransitionKind `json:"kind" binding:"required" example:"approve"`
	RejectionReason string         `json:"rejection_reason,omitempty" example:"Budget exceeds Q3 allocation"`
}

// TransitionTicketResponse is returned when a transition has been requested
// and is awaiting explicit confirmation.
type TransitionTicketResponse struct {
	Token     string          `json:"token" example:"550e8400-e29b-41d4-a716-446655440000"`
	Kind      TransitionKind  `json:"kind" example:"approve"`
	Campaign  CampaignSummary `json:"campaign"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID              string         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Platform        Platform       `json:"platform" example:"linkedin_ads"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" example:"pending"`
	PlatformStatus  PlatformStatus `json:"platform_status" example:"draft"`
	Name            string         `json:"name" example:"Q3 Brand Awareness"`
	AdGroupName     string         `json:"ad_group_name,omitempty"`
	Headline        string         `json:"headline,omitempty"`
	Description     string         `json:"description,omitempty"`
	DestinationURL  string         `json:"destination_url,omitempty"`
	ImageRef        string         `json:"image_ref,omitempty"`
	Objective       string         `json:"objective,omitempty"`
	Keywords        string         `json:"keywords,omitempty"`
	Budget          *float64       `json:"budget,omitempty"`
	DailyBudget     *float64       `json:"daily_budget,omitempty"`
	TotalBudget     *float64       `json:"total_budget,omitempty"`
	StartDate       *time.Time     `json:"start_date,omitempty"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	TargetLocation  string         `json:"target_location,omitempty"`
	TargetLanguage  string         `json:"target_language,omitempty"`
	ExternalRef     string         `json:"external_ref,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ApprovedBy      string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	CreatedAt       string         `json:"created_at" example:"2026-01-09T10:30:00Z"`
	UpdatedAt       string         `json:"updated_at" example:"2026-01-09T10:30:00Z"`
}
