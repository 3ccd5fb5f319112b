package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adlift/marketing-ops-backend/internal/database/repository"
	"github.com/adlift/marketing-ops-backend/internal/models"
	"github.com/adlift/marketing-ops-backend/internal/services"
	"github.com/adlift/marketing-ops-backend/internal/services/export"
	"github.com/adlift/marketing-ops-backend/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	lifecycle       *services.LifecycleService
	exportService   *export.Service
}

func NewCampaignHandler(db *gorm.DB, lifecycle *services.LifecycleService) *CampaignHandler {
	campaignRepo := repository.NewCampaignRepository(db)
	eventRepo := repository.NewCampaignEventRepository(db)

	return &CampaignHandler{
		campaignService: services.NewCampaignService(campaignRepo, eventRepo),
		lifecycle:       lifecycle,
		exportService:   export.NewExcelService(),
	}
}

// GetCampaigns godoc
// @Summary List campaigns
// @Description List campaigns filtered by platform and status, paginated
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param platform query string false "Platform filter" Enums(google_ads, linkedin_ads)
// @Param approval_status query string false "Approval status filter"
// @Param platform_status query string false "Platform status filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	filter := models.CampaignFilter{
		Platform:       models.Platform(c.Query("platform")),
		ApprovalStatus: models.ApprovalStatus(c.Query("approval_status")),
		PlatformStatus: models.PlatformStatus(c.Query("platform_status")),
	}

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	offset := utils.CalculateOffset(page, pageSize)

	campaigns, total, err := h.campaignService.GetCampaigns(filter, offset, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns":  campaigns,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}

// GetCampaignByID godoc
// @Summary Get campaign by ID
// @Description Get a specific campaign by ID
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaignContent godoc
// @Summary Update campaign content
// @Description Edit campaign content (text, budget, targeting). Only pending campaigns accept edits; approved ones require a reset first.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignContentRequest true "Content patch"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaignContent(c *gin.Context) {
	var req models.UpdateCampaignContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.lifecycle.UpdateContent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.campaignService.ToResponse(campaign))
}

// GetCampaignEvents godoc
// @Summary Get campaign activity feed
// @Description List committed lifecycle transitions for a campaign, newest first
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} models.CampaignEvent
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/events [get]
func (h *CampaignHandler) GetCampaignEvents(c *gin.Context) {
	events, err := h.campaignService.GetCampaignEvents(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// ExportCampaigns godoc
// @Summary Export campaign report
// @Description Download the filtered campaign list as an .xlsx workbook
// @Tags campaigns
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param platform query string false "Platform filter"
// @Param approval_status query string false "Approval status filter"
// @Param platform_status query string false "Platform status filter"
// @Success 200 "xlsx file"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/export [get]
func (h *CampaignHandler) ExportCampaigns(c *gin.Context) {
	filter := models.CampaignFilter{
		Platform:       models.Platform(c.Query("platform")),
		ApprovalStatus: models.ApprovalStatus(c.Query("approval_status")),
		PlatformStatus: models.PlatformStatus(c.Query("platform_status")),
	}

	campaigns, err := h.campaignService.GetCampaignsForExport(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, filename, err := h.exportService.BuildCampaignReport(campaigns)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
