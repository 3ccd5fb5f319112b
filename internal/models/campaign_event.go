package models

import (
	"time"
)

// CampaignEvent is the append-only record of a committed lifecycle
// transition. It feeds the dashboard activity feed, the SSE stream and the
// outbound notification side-channel.
type CampaignEvent struct {
	ID         string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CampaignID string         `json:"campaign_id" gorm:"not null;index;type:uuid"`
	Platform   Platform       `json:"platform" gorm:"type:varchar(50);not null;index"`
	Transition TransitionKind `json:"transition" gorm:"type:varchar(20);not null"`

	FromApprovalStatus ApprovalStatus `json:"from_approval_status" gorm:"type:varchar(20);not null"`
	ToApprovalStatus   ApprovalStatus `json:"to_approval_status" gorm:"type:varchar(20);not null"`
	FromPlatformStatus PlatformStatus `json:"from_platform_status" gorm:"type:varchar(20);not null"`
	ToPlatformStatus   PlatformStatus `json:"to_platform_status" gorm:"type:varchar(20);not null"`

	Actor     string    `json:"actor" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the CampaignEvent model
func (CampaignEvent) TableName() string {
	return "campaign_events"
}
