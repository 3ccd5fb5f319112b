package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// SSEHub manages Server-Sent Events connections so dashboard clients see
// committed lifecycle transitions live
type SSEHub struct {
	// Key format: "campaign:<id>" or "platform:<platform>"
	clients map[string]map[chan []byte]bool
	mu      sync.RWMutex
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]map[chan []byte]bool),
	}
}

// RegisterClient registers a new SSE client for a subscription key
func (h *SSEHub) RegisterClient(scope, id string) chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := fmt.Sprintf("%s:%s", scope, id)
	clientChan := make(chan []byte, 10)

	if h.clients[key] == nil {
		h.clients[key] = make(map[chan []byte]bool)
	}
	h.clients[key][clientChan] = true

	logrus.Infof("SSE client registered for %s (total clients: %d)", key, len(h.clients[key]))
	return clientChan
}

// UnregisterClient unregisters an SSE client
func (h *SSEHub) UnregisterClient(scope, id string, clientChan chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := fmt.Sprintf("%s:%s", scope, id)
	if h.clients[key] != nil {
		delete(h.clients[key], clientChan)
		close(clientChan)

		if len(h.clients[key]) == 0 {
			delete(h.clients, key)
		}
	}

	logrus.Infof("SSE client unregistered for %s (remaining clients: %d)", key, len(h.clients[key]))
}

// BroadcastEvent broadcasts a committed transition to campaign-scoped and
// platform-scoped subscribers
func (h *SSEHub) BroadcastEvent(event *models.CampaignEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	campaignKey := fmt.Sprintf("campaign:%s", event.CampaignID)
	h.broadcastToKeyLocked(campaignKey, event, h.clients[campaignKey])

	platformKey := fmt.Sprintf("platform:%s", event.Platform)
	h.broadcastToKeyLocked(platformKey, event, h.clients[platformKey])
}

// broadcastToKeyLocked sends the event to clients (assumes lock is held)
func (h *SSEHub) broadcastToKeyLocked(key string, event *models.CampaignEvent, clients map[chan []byte]bool) {
	if len(clients) == 0 {
		return
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		logrus.Errorf("Failed to marshal event for SSE: %v", err)
		return
	}

	message := fmt.Sprintf("event: transition\ndata: %s\n\n", string(eventJSON))

	for clientChan := range clients {
		select {
		case clientChan <- []byte(message):
		default:
			// Channel is full, skip this client
			logrus.Warnf("SSE client channel full, skipping: %s", key)
		}
	}
}

// SendHeartbeat sends a heartbeat message to keep connections alive
func (h *SSEHub) SendHeartbeat(scope, id string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	key := fmt.Sprintf("%s:%s", scope, id)
	clients, exists := h.clients[key]
	if !exists {
		return
	}

	heartbeat := fmt.Sprintf(": heartbeat %s\n\n", time.Now().Format(time.RFC3339))
	for clientChan := range clients {
		select {
		case clientChan <- []byte(heartbeat):
		default:
		}
	}
}
