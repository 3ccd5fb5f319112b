package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services"
)

type LifecycleHandler struct {
	dispatcher *services.DispatcherService
}

func NewLifecycleHandler(dispatcher *services.DispatcherService) *LifecycleHandler {
	return &LifecycleHandler{dispatcher: dispatcher}
}

// GetLegalTransitions godoc
// @Summary Get legal transitions
// @Description Return the lifecycle actions currently legal for a campaign so the UI only offers valid ones
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/actions [get]
func (h *LifecycleHandler) GetLegalTransitions(c *gin.Context) {
	transitions, err := h.dispatcher.LegalTransitions(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transitions": transitions})
}

// RequestTransition godoc
// @Summary Request a lifecycle transition
// @Description Register the intent to approve/reject/reset/activate/pause/archive a campaign. Returns a confirmation ticket; nothing executes until confirmed.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.TransitionRequest true "Transition request"
// @Success 200 {object} models.TransitionTicketResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/transitions [post]
func (h *LifecycleHandler) RequestTransition(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	ticket, err := h.dispatcher.RequestTransition(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ConfirmTransition godoc
// @Summary Confirm a requested transition
// @Description Execute the transition referenced by a confirmation token. At most one transition per campaign runs at a time.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param token path string true "Confirmation token"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 410 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/campaigns/transitions/{token}/confirm [post]
func (h *LifecycleHandler) ConfirmTransition(c *gin.Context) {
	actor, _ := c.Get("user_name")
	actorName, _ := actor.(string)

	campaign, err := h.dispatcher.ConfirmTransition(c.Request.Context(), c.Param("token"), actorName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}
