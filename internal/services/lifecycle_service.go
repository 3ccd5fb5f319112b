package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
	"github.com/adlift/marketing-ops-backend/internal/config"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services/adplatform"
)

// CampaignStore is the record-store contract the lifecycle engine needs.
// Commit updates a single record atomically; the engine is its only writer
// for approval_status/platform_status.
type CampaignStore interface {
	GetByID(id string) (*models.Campaign, error)
	List(filter models.CampaignFilter, offset, limit int) ([]*models.Campaign, int64, error)
	Commit(id string, patch map[string]interface{}) (*models.Campaign, error)
}

// CampaignEventStore persists the committed-transition activity feed
type CampaignEventStore interface {
	Create(event *models.CampaignEvent) error
	GetByCampaignID(campaignID string) ([]*models.CampaignEvent, error)
}

// TransitionPayload carries the caller-supplied extras for a transition
type TransitionPayload struct {
	RejectionReason string
	Actor           string
}

// LifecycleService is the campaign state machine. Every transition loads the
// current record, checks the precondition, performs the remote effect through
// the platform adapter, and commits only what the platform confirmed.
type LifecycleService struct {
	store     CampaignStore
	platforms adplatform.CampaignPlatformFactory
}

func NewLifecycleService(store CampaignStore, platforms adplatform.CampaignPlatformFactory) *LifecycleService {
	return &LifecycleService{
		store:     store,
		platforms: platforms,
	}
}

// Apply executes one transition. On success it returns the committed
// campaign and the event describing what changed; on any failure the stored
// state is left untouched.
func (s *LifecycleService) Apply(ctx context.Context, campaignID string, kind models.TransitionKind, payload TransitionPayload) (*models.Campaign, *models.CampaignEvent, error) {
	campaign, err := s.store.GetByID(campaignID)
	if err != nil {
		return nil, nil, err
	}

	before := campaign.Summary()

	var updated *models.Campaign
	switch kind {
	case models.TransitionApprove:
		updated, err = s.approve(campaign, payload.Actor)
	case models.TransitionReject:
		updated, err = s.reject(campaign, payload.RejectionReason)
	case models.TransitionReset:
		updated, err = s.reset(campaign)
	case models.TransitionActivate:
		updated, err = s.remoteTransition(ctx, campaign, kind)
	case models.TransitionPause:
		updated, err = s.remoteTransition(ctx, campaign, kind)
	case models.TransitionArchive:
		updated, err = s.remoteTransition(ctx, campaign, kind)
	default:
		err = apperrors.NewIllegalTransition(campaign, kind)
	}
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":     campaignID,
		"transition":      kind,
		"approval_status": updated.ApprovalStatus,
		"platform_status": updated.PlatformStatus,
	}).Info("Campaign transition committed")

	event := &models.CampaignEvent{
		CampaignID:         campaignID,
		Platform:           campaign.Platform,
		Transition:         kind,
		FromApprovalStatus: before.ApprovalStatus,
		ToApprovalStatus:   updated.ApprovalStatus,
		FromPlatformStatus: before.PlatformStatus,
		ToPlatformStatus:   updated.PlatformStatus,
		Actor:              payload.Actor,
	}
	return updated, event, nil
}

// approve gates on field completeness; no remote effect, the campaign stays
// a platform draft until activated
func (s *LifecycleService) approve(campaign *models.Campaign, actor string) (*models.Campaign, error) {
	if campaign.ApprovalStatus != models.ApprovalPending {
		return nil, apperrors.NewIllegalTransition(campaign, models.TransitionApprove)
	}

	// The platform adapter is the authority on which fields its network
	// requires before anything can go live
	adapter, err := s.platforms.CreateCampaignPlatform(campaign.Platform)
	if err != nil {
		return nil, err
	}

	result := ValidateCompleteness(campaign, adapter.RequiredFields())
	if !result.OK {
		return nil, apperrors.NewValidationFailed(campaign.ID, result.Missing)
	}

	patch := map[string]interface{}{
		"approval_status": models.ApprovalApproved,
	}
	// approved_by/approved_at are stamped on the first approval only and
	// survive later pause/archive/reset cycles
	if campaign.ApprovedAt == nil {
		now := time.Now().UTC()
		patch["approved_by"] = actor
		patch["approved_at"] = &now
	}

	return s.store.Commit(campaign.ID, patch)
}

func (s *LifecycleService) reject(campaign *models.Campaign, reason string) (*models.Campaign, error) {
	if campaign.ApprovalStatus != models.ApprovalPending {
		return nil, apperrors.NewIllegalTransition(campaign, models.TransitionReject)
	}
	if reason == "" {
		return nil, apperrors.NewValidationFailed(campaign.ID, []string{"Rejection Reason"})
	}

	return s.store.Commit(campaign.ID, map[string]interface{}{
		"approval_status":  models.ApprovalRejected,
		"rejection_reason": reason,
	})
}

// reset returns a campaign to the pending workflow state so it can be edited
// and re-approved
func (s *LifecycleService) reset(campaign *models.Campaign) (*models.Campaign, error) {
	switch campaign.ApprovalStatus {
	case models.ApprovalApproved, models.ApprovalRejected, models.ApprovalCancelled:
	default:
		return nil, apperrors.NewIllegalTransition(campaign, models.TransitionReset)
	}

	return s.store.Commit(campaign.ID, map[string]interface{}{
		"approval_status":  models.ApprovalPending,
		"rejection_reason": "",
	})
}

// remoteTransition handles the transitions that require the ad network to
// confirm before anything is committed locally
func (s *LifecycleService) remoteTransition(ctx context.Context, campaign *models.Campaign, kind models.TransitionKind) (*models.Campaign, error) {
	if err := s.checkRemotePrecondition(campaign, kind); err != nil {
		return nil, err
	}

	adapter, err := s.platforms.CreateCampaignPlatform(campaign.Platform)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, config.PlatformTimeout())
	defer cancel()

	var state *adplatform.PlatformState
	var op string
	switch kind {
	case models.TransitionActivate:
		op = "activate"
		state, err = adapter.Activate(callCtx, campaign)
	case models.TransitionPause:
		op = "pause"
		state, err = adapter.Pause(callCtx, campaign)
	case models.TransitionArchive:
		op = "delete"
		state, err = adapter.Delete(callCtx, campaign)
	}
	if err != nil {
		// Stored state stays at its pre-transition value; the caller may
		// retry the same transition
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"platform":    adapter.GetPlatformName(),
			"operation":   op,
		}).Warnf("Ad platform call failed: %v", err)
		return nil, apperrors.NewAdapterError(campaign.Platform, op, err)
	}

	patch := map[string]interface{}{
		"platform_status": state.Status,
	}
	if state.ExternalRef != "" && state.ExternalRef != campaign.ExternalRef {
		patch["external_ref"] = state.ExternalRef
	}

	return s.store.Commit(campaign.ID, patch)
}

func (s *LifecycleService) checkRemotePrecondition(campaign *models.Campaign, kind models.TransitionKind) error {
	if campaign.ApprovalStatus != models.ApprovalApproved {
		return apperrors.NewIllegalTransition(campaign, kind)
	}

	switch kind {
	case models.TransitionActivate:
		if campaign.PlatformStatus == models.PlatformStatusDraft ||
			campaign.PlatformStatus == models.PlatformStatusPaused ||
			campaign.PlatformStatus == models.PlatformStatusActive {
			// activating an already-active campaign is a no-op success at
			// the adapter level
			return nil
		}
	case models.TransitionPause:
		if campaign.PlatformStatus == models.PlatformStatusActive {
			return nil
		}
	case models.TransitionArchive:
		if campaign.PlatformStatus == models.PlatformStatusActive ||
			campaign.PlatformStatus == models.PlatformStatusPaused {
			return nil
		}
	}
	return apperrors.NewIllegalTransition(campaign, kind)
}

// UpdateContent applies a content edit. Edits are only legal while the
// campaign is still pending approval; an approved campaign must be RESET
// first so a live campaign is never silently mutated.
func (s *LifecycleService) UpdateContent(ctx context.Context, campaignID string, req *models.UpdateCampaignContentRequest) (*models.Campaign, error) {
	campaign, err := s.store.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.ApprovalStatus != models.ApprovalPending {
		return nil, apperrors.NewIllegalTransition(campaign, models.TransitionKind("update_content"))
	}

	adapter, err := s.platforms.CreateCampaignPlatform(campaign.Platform)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, config.PlatformTimeout())
	defer cancel()

	if _, err := adapter.UpdateContent(callCtx, campaign, req); err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"platform":    adapter.GetPlatformName(),
			"operation":   "update_content",
		}).Warnf("Ad platform call failed: %v", err)
		return nil, apperrors.NewAdapterError(campaign.Platform, "update_content", err)
	}

	return s.store.Commit(campaignID, contentPatch(req))
}

// LegalTransitions returns the transitions currently legal for a campaign,
// in declared order, so the UI only offers valid actions
func (s *LifecycleService) LegalTransitions(campaign *models.Campaign) []models.TransitionKind {
	legal := []models.TransitionKind{}

	if campaign.ApprovalStatus == models.ApprovalPending {
		legal = append(legal, models.TransitionApprove, models.TransitionReject)
	}
	switch campaign.ApprovalStatus {
	case models.ApprovalApproved, models.ApprovalRejected, models.ApprovalCancelled:
		legal = append(legal, models.TransitionReset)
	}
	if campaign.ApprovalStatus == models.ApprovalApproved {
		switch campaign.PlatformStatus {
		case models.PlatformStatusDraft:
			legal = append(legal, models.TransitionActivate)
		case models.PlatformStatusPaused:
			legal = append(legal, models.TransitionActivate, models.TransitionArchive)
		case models.PlatformStatusActive:
			legal = append(legal, models.TransitionPause, models.TransitionArchive)
		}
	}
	return legal
}

func contentPatch(req *models.UpdateCampaignContentRequest) map[string]interface{} {
	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.AdGroupName != nil {
		patch["ad_group_name"] = *req.AdGroupName
	}
	if req.Headline != nil {
		patch["headline"] = *req.Headline
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.DestinationURL != nil {
		patch["destination_url"] = *req.DestinationURL
	}
	if req.ImageRef != nil {
		patch["image_ref"] = *req.ImageRef
	}
	if req.Objective != nil {
		patch["objective"] = *req.Objective
	}
	if req.Keywords != nil {
		patch["keywords"] = *req.Keywords
	}
	if req.Budget != nil {
		patch["budget"] = req.Budget
	}
	if req.DailyBudget != nil {
		patch["daily_budget"] = req.DailyBudget
	}
	if req.TotalBudget != nil {
		patch["total_budget"] = req.TotalBudget
	}
	if req.StartDate != nil {
		patch["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		patch["end_date"] = req.EndDate
	}
	if req.TargetLocation != nil {
		patch["target_location"] = *req.TargetLocation
	}
	if req.TargetLanguage != nil {
		patch["target_language"] = *req.TargetLanguage
	}
	return patch
}
