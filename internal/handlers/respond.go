package handlers

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/adlift/marketing-ops-backend/internal/apperrors"
)

// respondError maps the lifecycle error taxonomy onto HTTP statuses. The
// retryable flag tells the dashboard whether to offer a retry affordance.
func respondError(c *gin.Context, err error) {
	var validation *apperrors.ValidationFailedError
	if errors.As(err, &validation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Validation failed",
			"missing": validation.Missing,
		})
		return
	}

	var illegal *apperrors.IllegalTransitionError
	if errors.As(err, &illegal) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           "Illegal transition",
			"requested":       illegal.Requested,
			"approval_status": illegal.ApprovalStatus,
			"platform_status": illegal.PlatformStatus,
		})
		return
	}

	var inProgress *apperrors.AlreadyInProgressError
	if errors.As(err, &inProgress) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Another transition for this campaign is in progress",
			"retryable": true,
		})
		return
	}

	var adapter *apperrors.AdapterError
	if errors.As(err, &adapter) {
		sentry.CaptureException(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "Ad platform request failed",
			"platform":  adapter.Platform,
			"details":   adapter.Error(),
			"retryable": true,
		})
		return
	}

	var expired *apperrors.ConfirmationExpiredError
	if errors.As(err, &expired) {
		c.JSON(http.StatusGone, gin.H{"error": "Confirmation expired, request the action again"})
		return
	}

	var notFound *apperrors.CampaignNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	sentry.CaptureException(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
}
