package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/adlift/marketing-ops-backend/internal/services"
)

// heartbeatInterval keeps idle SSE connections alive through proxies that
// reap silent streams
const heartbeatInterval = 30 * time.Second

type EventStreamHandler struct {
	sseHub *services.SSEHub
}

func NewEventStreamHandler(sseHub *services.SSEHub) *EventStreamHandler {
	return &EventStreamHandler{sseHub: sseHub}
}

// StreamCampaignEvents godoc
// @Summary Stream campaign lifecycle events via SSE
// @Description Stream committed lifecycle transitions for a campaign in real time
// @Tags campaigns
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 "SSE stream"
// @Router /api/v1/campaigns/{id}/events/stream [get]
func (h *EventStreamHandler) StreamCampaignEvents(c *gin.Context) {
	campaignID := c.Param("id")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable buffering for nginx

	clientChan := h.sseHub.RegisterClient("campaign", campaignID)
	defer h.sseHub.UnregisterClient("campaign", campaignID, clientChan)

	c.SSEvent("connected", gin.H{
		"campaign_id": campaignID,
		"message":     "Connected to lifecycle event stream",
	})
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			logrus.Infof("SSE client disconnected: campaign %s", campaignID)
			return
		case <-heartbeat.C:
			h.sseHub.SendHeartbeat("campaign", campaignID)
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(message); err != nil {
				logrus.Errorf("Failed to write SSE message: %v", err)
				return
			}
			c.Writer.Flush()
		}
	}
}
