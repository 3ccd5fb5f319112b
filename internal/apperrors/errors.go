package apperrors

import (
	"fmt"
	"strings"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// ValidationFailedError reports the required fields a campaign is missing.
// Recoverable: the user fills in the fields and retries.
type ValidationFailedError struct {
	CampaignID string
	Missing    []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("campaign %s is missing required fields: %s",
		e.CampaignID, strings.Join(e.Missing, ", "))
}

// NewValidationFailed creates a validation error carrying the missing-field
// list in declared order
func NewValidationFailed(campaignID string, missing []string) error {
	return &ValidationFailedError{CampaignID: campaignID, Missing: missing}
}

// IllegalTransitionError reports a transition request that is not legal from
// the campaign's current dual state. Treated as a caller defect, not a user flow.
type IllegalTransitionError struct {
	CampaignID     string
	Requested      models.TransitionKind
	ApprovalStatus models.ApprovalStatus
	PlatformStatus models.PlatformStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transition %q is not legal for campaign %s in state (%s, %s)",
		e.Requested, e.CampaignID, e.ApprovalStatus, e.PlatformStatus)
}

// NewIllegalTransition creates an illegal-transition error from the current state
func NewIllegalTransition(c *models.Campaign, requested models.TransitionKind) error {
	return &IllegalTransitionError{
		CampaignID:     c.ID,
		Requested:      requested,
		ApprovalStatus: c.ApprovalStatus,
		PlatformStatus: c.PlatformStatus,
	}
}

// AdapterError wraps a remote ad-network failure. The stored campaign state
// is guaranteed untouched, so re-issuing the same transition is safe.
type AdapterError struct {
	Platform  models.Platform
	Operation string
	Err       error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Platform, e.Operation, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// NewAdapterError wraps a remote platform failure
func NewAdapterError(platform models.Platform, operation string, err error) error {
	return &AdapterError{Platform: platform, Operation: operation, Err: err}
}

// AlreadyInProgressError signals another transition for the same campaign is
// still in flight. Transient: retry after the current one completes.
type AlreadyInProgressError struct {
	CampaignID string
}

func (e *AlreadyInProgressError) Error() string {
	return fmt.Sprintf("a transition for campaign %s is already in progress", e.CampaignID)
}

// NewAlreadyInProgress creates an in-flight-lock rejection
func NewAlreadyInProgress(campaignID string) error {
	return &AlreadyInProgressError{CampaignID: campaignID}
}

// ConfirmationExpiredError signals a confirmation token that is unknown or
// past its TTL. The caller re-requests the transition.
type ConfirmationExpiredError struct {
	Token string
}

func (e *ConfirmationExpiredError) Error() string {
	return fmt.Sprintf("confirmation token %s is unknown or expired", e.Token)
}

// NewConfirmationExpired creates an expired-token error
func NewConfirmationExpired(token string) error {
	return &ConfirmationExpiredError{Token: token}
}

// CampaignNotFoundError is the typed not-found error for campaign lookups
type CampaignNotFoundError struct {
	CampaignID string
}

func (e *CampaignNotFoundError) Error() string {
	return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

// NewCampaignNotFound creates a campaign not-found error
func NewCampaignNotFound(id string) error {
	return &CampaignNotFoundError{CampaignID: id}
}
