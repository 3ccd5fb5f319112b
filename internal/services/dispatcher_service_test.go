package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services"
)

func newDispatcher(store *fakeStore, adapter *fakeAdapter) *services.DispatcherService {
	engine := services.NewLifecycleService(store, newFactory(adapter))
	return services.NewDispatcherService(engine, store, nil)
}

func TestRequestTransition_IssuesTicket(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalPending, models.PlatformStatusDraft)
	store := newFakeStore(campaign)
	dispatcher := newDispatcher(store, &fakeAdapter{})

	ticket, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionApprove})
	if err != nil {
		t.Fatalf("Expected ticket, got %v", err)
	}
	if ticket.Token == "" {
		t.Error("Expected a non-empty confirmation token")
	}
	if ticket.Kind != models.TransitionApprove {
		t.Errorf("Expected kind approve, got %s", ticket.Kind)
	}
	if ticket.Campaign.ID != campaign.ID || ticket.Campaign.Name != campaign.Name {
		t.Errorf("Expected ticket to carry the campaign summary, got %+v", ticket.Campaign)
	}
	if !ticket.ExpiresAt.After(time.Now()) {
		t.Errorf("Expected future expiry, got %v", ticket.ExpiresAt)
	}

	// Requesting alone must not execute anything
	stored, _ := store.GetByID(campaign.ID)
	if stored.ApprovalStatus != models.ApprovalPending {
		t.Errorf("Expected campaign untouched until confirm, got %s", stored.ApprovalStatus)
	}
}

func TestRequestTransition_RefusesIllegalIntent(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalPending, models.PlatformStatusDraft)
	dispatcher := newDispatcher(newFakeStore(campaign), &fakeAdapter{})

	_, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionPause})
	var illegalErr *apperrors.IllegalTransitionError
	if !errors.As(err, &illegalErr) {
		t.Fatalf("Expected IllegalTransitionError for pause on pending draft, got %v", err)
	}

	_, err = dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: "launch"})
	if !errors.As(err, &illegalErr) {
		t.Fatalf("Expected IllegalTransitionError for unknown kind, got %v", err)
	}
}

func TestRequestTransition_RejectNeedsReason(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalPending, models.PlatformStatusDraft)
	dispatcher := newDispatcher(newFakeStore(campaign), &fakeAdapter{})

	_, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionReject})
	var validationErr *apperrors.ValidationFailedError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationFailedError, got %v", err)
	}
}

func TestConfirmTransition_ExecutesOnce(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalPending, models.PlatformStatusDraft)
	store := newFakeStore(campaign)
	dispatcher := newDispatcher(store, &fakeAdapter{})

	ticket, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionApprove})
	if err != nil {
		t.Fatalf("Expected ticket, got %v", err)
	}

	updated, err := dispatcher.ConfirmTransition(context.Background(), ticket.Token, "reviewer@adlift.io")
	if err != nil {
		t.Fatalf("Expected confirm to succeed, got %v", err)
	}
	if updated.ApprovalStatus != models.ApprovalApproved {
		t.Errorf("Expected approved after confirm, got %s", updated.ApprovalStatus)
	}

	// Tokens are single-use
	_, err = dispatcher.ConfirmTransition(context.Background(), ticket.Token, "reviewer@adlift.io")
	var expiredErr *apperrors.ConfirmationExpiredError
	if !errors.As(err, &expiredErr) {
		t.Fatalf("Expected ConfirmationExpiredError on token reuse, got %v", err)
	}
}

func TestConfirmTransition_UnknownToken(t *testing.T) {
	dispatcher := newDispatcher(newFakeStore(), &fakeAdapter{})

	_, err := dispatcher.ConfirmTransition(context.Background(), "not-a-token", "ops@adlift.io")
	var expiredErr *apperrors.ConfirmationExpiredError
	if !errors.As(err, &expiredErr) {
		t.Fatalf("Expected ConfirmationExpiredError, got %v", err)
	}
}

func TestConfirmTransition_SecondConfirmWhileInFlight(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusDraft)
	store := newFakeStore(campaign)
	adapter := &fakeAdapter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	dispatcher := newDispatcher(store, adapter)

	first, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected first ticket, got %v", err)
	}
	second, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected second ticket, got %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = dispatcher.ConfirmTransition(context.Background(), first.Token, "ops@adlift.io")
	}()

	// Wait until the first confirm is inside the platform call, then try a
	// second confirm for the same campaign
	<-adapter.started
	_, err = dispatcher.ConfirmTransition(context.Background(), second.Token, "ops@adlift.io")
	var busyErr *apperrors.AlreadyInProgressError
	if !errors.As(err, &busyErr) {
		t.Fatalf("Expected AlreadyInProgressError while first confirm in flight, got %v", err)
	}

	close(adapter.release)
	wg.Wait()
	if firstErr != nil {
		t.Fatalf("Expected first confirm to succeed, got %v", firstErr)
	}

	stored, _ := store.GetByID(campaign.ID)
	if stored.PlatformStatus != models.PlatformStatusActive {
		t.Errorf("Expected active after first confirm, got %s", stored.PlatformStatus)
	}
	if adapter.activateCalls != 1 {
		t.Errorf("Expected exactly one platform call, got %d", adapter.activateCalls)
	}
}

func TestConfirmTransition_LockReleasedAfterFailure(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusDraft)
	store := newFakeStore(campaign)
	adapter := &fakeAdapter{err: errors.New("upstream 500")}
	dispatcher := newDispatcher(store, adapter)

	ticket, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected ticket, got %v", err)
	}
	_, err = dispatcher.ConfirmTransition(context.Background(), ticket.Token, "ops@adlift.io")
	var adapterErr *apperrors.AdapterError
	if !errors.As(err, &adapterErr) {
		t.Fatalf("Expected AdapterError, got %v", err)
	}

	// The failed attempt must not leave the campaign locked
	adapter.mu.Lock()
	adapter.err = nil
	adapter.mu.Unlock()

	retry, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected retry ticket, got %v", err)
	}
	updated, err := dispatcher.ConfirmTransition(context.Background(), retry.Token, "ops@adlift.io")
	if err != nil {
		t.Fatalf("Expected retry confirm to succeed, got %v", err)
	}
	if updated.PlatformStatus != models.PlatformStatusActive {
		t.Errorf("Expected active after retry, got %s", updated.PlatformStatus)
	}
}

func TestConfirmTransition_DifferentCampaignsProceedIndependently(t *testing.T) {
	first := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusDraft)
	second := googleCampaign(models.ApprovalApproved, models.PlatformStatusDraft)
	store := newFakeStore(first, second)
	dispatcher := newDispatcher(store, &fakeAdapter{})

	ticketA, err := dispatcher.RequestTransition(first.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected ticket for first campaign, got %v", err)
	}
	ticketB, err := dispatcher.RequestTransition(second.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected ticket for second campaign, got %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = dispatcher.ConfirmTransition(context.Background(), ticketA.Token, "ops@adlift.io")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = dispatcher.ConfirmTransition(context.Background(), ticketB.Token, "ops@adlift.io")
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Expected campaign %d confirm to succeed, got %v", i, err)
		}
	}
	for _, id := range []string{first.ID, second.ID} {
		stored, _ := store.GetByID(id)
		if stored.PlatformStatus != models.PlatformStatusActive {
			t.Errorf("Expected campaign %s active, got %s", id, stored.PlatformStatus)
		}
	}
}

// gateNotifier blocks inside Publish until released so tests can observe
// what the dispatcher does while a notification is still running
type gateNotifier struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (n *gateNotifier) Publish(event *models.CampaignEvent) {
	n.once.Do(func() { close(n.entered) })
	<-n.release
}

func TestConfirmTransition_NotificationOffRequestPath(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusDraft)
	store := newFakeStore(campaign)
	notifier := &gateNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	engine := services.NewLifecycleService(store, newFactory(&fakeAdapter{}))
	dispatcher := services.NewDispatcherService(engine, store, notifier)
	defer close(notifier.release)

	ticket, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionActivate})
	if err != nil {
		t.Fatalf("Expected ticket, got %v", err)
	}

	updated, err := dispatcher.ConfirmTransition(context.Background(), ticket.Token, "ops@adlift.io")
	if err != nil {
		t.Fatalf("Expected confirm to succeed, got %v", err)
	}
	if updated.PlatformStatus != models.PlatformStatusActive {
		t.Errorf("Expected active, got %s", updated.PlatformStatus)
	}

	// The notifier runs, but confirm already returned without waiting on it
	select {
	case <-notifier.entered:
	case <-time.After(time.Second):
		t.Fatal("Expected the notifier to be invoked")
	}

	// With the notification still blocked, the campaign must not be locked:
	// the next transition proceeds immediately
	pauseTicket, err := dispatcher.RequestTransition(campaign.ID, &models.TransitionRequest{Kind: models.TransitionPause})
	if err != nil {
		t.Fatalf("Expected pause ticket while notification in flight, got %v", err)
	}
	paused, err := dispatcher.ConfirmTransition(context.Background(), pauseTicket.Token, "ops@adlift.io")
	if err != nil {
		t.Fatalf("Expected pause confirm while notification in flight, got %v", err)
	}
	if paused.PlatformStatus != models.PlatformStatusPaused {
		t.Errorf("Expected paused, got %s", paused.PlatformStatus)
	}
}

func TestLegalTransitions_Passthrough(t *testing.T) {
	campaign := linkedInCampaign(models.ApprovalApproved, models.PlatformStatusPaused)
	dispatcher := newDispatcher(newFakeStore(campaign), &fakeAdapter{})

	kinds, err := dispatcher.LegalTransitions(campaign.ID)
	if err != nil {
		t.Fatalf("Expected legal transitions, got %v", err)
	}
	expected := []models.TransitionKind{models.TransitionReset, models.TransitionActivate, models.TransitionArchive}
	if len(kinds) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, kinds)
	}
	for i := range kinds {
		if kinds[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, kinds)
		}
	}

	_, err = dispatcher.LegalTransitions("missing-id")
	var notFoundErr *apperrors.CampaignNotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("Expected CampaignNotFoundError, got %v", err)
	}
}
