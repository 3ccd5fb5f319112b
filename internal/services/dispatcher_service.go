package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
	"github.com/adlift/marketing-ops-backend/internal/models"
)

// TransitionNotifier receives committed transitions for best-effort fan-out
type TransitionNotifier interface {
	Publish(event *models.CampaignEvent)
}

// confirmationTicket is one requested-but-unconfirmed transition
type confirmationTicket struct {
	Token      string
	CampaignID string
	Kind       models.TransitionKind
	Reason     string
	Summary    models.CampaignSummary
	ExpiresAt  time.Time
}

// DispatcherService mediates user-triggered transitions. It owns two
// guarantees: every consequential transition goes through an explicit
// confirm step, and at most one transition per campaign is in flight at any
// moment. Different campaigns proceed independently.
type DispatcherService struct {
	engine   *LifecycleService
	store    CampaignStore
	notifier TransitionNotifier

	mu       sync.Mutex
	inFlight map[string]struct{}
	tickets  map[string]*confirmationTicket

	ticketTTL time.Duration
}

func NewDispatcherService(engine *LifecycleService, store CampaignStore, notifier TransitionNotifier) *DispatcherService {
	return &DispatcherService{
		engine:    engine,
		store:     store,
		notifier:  notifier,
		inFlight:  make(map[string]struct{}),
		tickets:   make(map[string]*confirmationTicket),
		ticketTTL: 5 * time.Minute,
	}
}

// RequestTransition validates a transition intent and returns a confirmation
// ticket carrying the campaign's identity and current summary. Nothing is
// invoked until the ticket is confirmed.
func (d *DispatcherService) RequestTransition(campaignID string, req *models.TransitionRequest) (*models.TransitionTicketResponse, error) {
	if !req.Kind.IsValid() {
		campaign, err := d.store.GetByID(campaignID)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.NewIllegalTransition(campaign, req.Kind)
	}

	campaign, err := d.store.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	// A reject without a reason never reaches the engine
	if req.Kind == models.TransitionReject && req.RejectionReason == "" {
		return nil, apperrors.NewValidationFailed(campaignID, []string{"Rejection Reason"})
	}

	// Legality pre-check so the confirm step cannot be rendered for an
	// action that is already impossible. Activate is exempt while active:
	// replaying it is a sanctioned idempotent retry.
	if !d.isRequestable(campaign, req.Kind) {
		return nil, apperrors.NewIllegalTransition(campaign, req.Kind)
	}

	ticket := &confirmationTicket{
		Token:      uuid.NewString(),
		CampaignID: campaignID,
		Kind:       req.Kind,
		Reason:     req.RejectionReason,
		Summary:    campaign.Summary(),
		ExpiresAt:  time.Now().Add(d.ticketTTL),
	}

	d.mu.Lock()
	d.purgeExpiredLocked()
	d.tickets[ticket.Token] = ticket
	d.mu.Unlock()

	return &models.TransitionTicketResponse{
		Token:     ticket.Token,
		Kind:      ticket.Kind,
		Campaign:  ticket.Summary,
		ExpiresAt: ticket.ExpiresAt,
	}, nil
}

// ConfirmTransition resolves a ticket and executes the transition under the
// per-campaign in-flight lock. A second confirm for the same campaign while
// one is pending fails with AlreadyInProgress instead of queueing.
func (d *DispatcherService) ConfirmTransition(ctx context.Context, token, actor string) (*models.Campaign, error) {
	d.mu.Lock()
	ticket, ok := d.tickets[token]
	if ok {
		delete(d.tickets, token)
	}
	if !ok || time.Now().After(ticket.ExpiresAt) {
		d.mu.Unlock()
		return nil, apperrors.NewConfirmationExpired(token)
	}

	if _, busy := d.inFlight[ticket.CampaignID]; busy {
		d.mu.Unlock()
		return nil, apperrors.NewAlreadyInProgress(ticket.CampaignID)
	}
	d.inFlight[ticket.CampaignID] = struct{}{}
	d.mu.Unlock()

	// The marker comes off on every exit path, errors and panics included,
	// so a failed or timed-out transition can always be retried
	defer d.release(ticket.CampaignID)

	campaign, event, err := d.engine.Apply(ctx, ticket.CampaignID, ticket.Kind, TransitionPayload{
		RejectionReason: ticket.Reason,
		Actor:           actor,
	})
	if err != nil {
		return nil, err
	}

	if d.notifier != nil {
		// Best-effort side-channel, off the request path: a slow consumer
		// must not hold the in-flight marker or delay the response. The
		// remote platform call is the only blocking work under the lock.
		go d.notifier.Publish(event)
	}
	return campaign, nil
}

// LegalTransitions exposes the engine's legal-transition set so the UI can
// consult it before offering actions
func (d *DispatcherService) LegalTransitions(campaignID string) ([]models.TransitionKind, error) {
	campaign, err := d.store.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	return d.engine.LegalTransitions(campaign), nil
}

func (d *DispatcherService) release(campaignID string) {
	d.mu.Lock()
	delete(d.inFlight, campaignID)
	d.mu.Unlock()
}

func (d *DispatcherService) isRequestable(campaign *models.Campaign, kind models.TransitionKind) bool {
	if kind == models.TransitionActivate &&
		campaign.ApprovalStatus == models.ApprovalApproved &&
		campaign.PlatformStatus == models.PlatformStatusActive {
		return true
	}
	for _, legal := range d.engine.LegalTransitions(campaign) {
		if legal == kind {
			return true
		}
	}
	return false
}

func (d *DispatcherService) purgeExpiredLocked() {
	now := time.Now()
	for token, ticket := range d.tickets {
		if now.After(ticket.ExpiresAt) {
			logrus.Debugf("Dropping expired confirmation ticket %s for campaign %s", token, ticket.CampaignID)
			delete(d.tickets, token)
		}
	}
}
