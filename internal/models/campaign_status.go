package models

// Platform identifies the ad network a campaign runs on. Fixed at creation.
type Platform string

const (
	PlatformGoogleAds   Platform = "google_ads"
	PlatformLinkedInAds Platform = "linkedin_ads"
)

// IsValid checks whether the platform is one of the supported ad networks
func (p Platform) IsValid() bool {
	return p == PlatformGoogleAds || p == PlatformLinkedInAds
}

// ApprovalStatus represents the internal workflow state of a campaign proposal
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "pending"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalRejected  ApprovalStatus = "rejected"
	ApprovalCancelled ApprovalStatus = "cancelled"
)

// PlatformStatus represents the operational state of the campaign on the ad network
type PlatformStatus string

const (
	PlatformStatusDraft   PlatformStatus = "draft"
	PlatformStatusActive  PlatformStatus = "active"
	PlatformStatusPaused  PlatformStatus = "paused"
	PlatformStatusDeleted PlatformStatus = "deleted"
)

// TransitionKind identifies a lifecycle transition a caller can request
type TransitionKind string

const (
	TransitionApprove  TransitionKind = "approve"
	TransitionReject   TransitionKind = "reject"
	TransitionReset    TransitionKind = "reset"
	TransitionActivate TransitionKind = "activate"
	TransitionPause    TransitionKind = "pause"
	TransitionArchive  TransitionKind = "archive"
)

// IsValid checks whether the transition kind is one the engine knows about
func (t TransitionKind) IsValid() bool {
	switch t {
	case TransitionApprove, TransitionReject, TransitionReset,
		TransitionActivate, TransitionPause, TransitionArchive:
		return true
	}
	return false
}
