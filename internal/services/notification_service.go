package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/adlift/marketing-ops-backend/internal/config"
	"github.com/adlift/marketing-ops-backend/internal/models"
)

// NotificationService fans a committed transition out to the activity feed,
// the SSE hub, RabbitMQ and an optional outbound webhook. Everything here is
// best-effort: a failed notification is logged and captured, never allowed
// to affect the commit that already happened.
type NotificationService struct {
	events     CampaignEventStore
	sseHub     *SSEHub
	rabbitMQ   *RabbitMQService
	webhookURL string
	client     *http.Client
}

func NewNotificationService(events CampaignEventStore, sseHub *SSEHub, rabbitMQ *RabbitMQService) *NotificationService {
	return &NotificationService{
		events:     events,
		sseHub:     sseHub,
		rabbitMQ:   rabbitMQ,
		webhookURL: config.GetEnv("LIFECYCLE_WEBHOOK_URL", ""),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Publish records the event and notifies all side-channels
func (s *NotificationService) Publish(event *models.CampaignEvent) {
	if s.events != nil {
		if err := s.events.Create(event); err != nil {
			logrus.Errorf("Failed to persist campaign event: %v", err)
			sentry.CaptureException(err)
		}
	}

	if s.sseHub != nil {
		s.sseHub.BroadcastEvent(event)
	}

	if s.rabbitMQ != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.rabbitMQ.PublishMessage(ctx, LifecycleQueue, event); err != nil {
			logrus.Errorf("Failed to publish campaign event to RabbitMQ: %v", err)
			sentry.CaptureException(err)
		}
	}

	if s.webhookURL != "" {
		s.postWebhook(event)
	}
}

func (s *NotificationService) postWebhook(event *models.CampaignEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		logrus.Errorf("Failed to marshal webhook payload: %v", err)
		return
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		logrus.Warnf("Lifecycle webhook delivery failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logrus.Warnf("Lifecycle webhook returned %d for campaign %s", resp.StatusCode, event.CampaignID)
	}
}
