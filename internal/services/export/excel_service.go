package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// Service builds the campaign report workbook the dashboard offers for
// download
type Service struct{}

// NewExcelService creates a new Excel export service instance
func NewExcelService() *Service {
	return &Service{}
}

var reportHeaders = []string{
	"ID", "Platform", "Name", "Approval Status", "Platform Status",
	"Budget", "Daily Budget", "Total Budget", "Start Date", "End Date",
	"Approved By", "Approved At", "Rejection Reason", "Created At",
}

// BuildCampaignReport renders campaigns into an .xlsx workbook and returns
// its bytes along with a timestamped filename
func (s *Service) BuildCampaignReport(campaigns []*models.Campaign) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Campaigns"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, campaign := range campaigns {
		values := []interface{}{
			campaign.ID,
			string(campaign.Platform),
			campaign.Name,
			string(campaign.ApprovalStatus),
			string(campaign.PlatformStatus),
			floatOrEmpty(campaign.Budget),
			floatOrEmpty(campaign.DailyBudget),
			floatOrEmpty(campaign.TotalBudget),
			dateOrEmpty(campaign.StartDate),
			dateOrEmpty(campaign.EndDate),
			campaign.ApprovedBy,
			dateOrEmpty(campaign.ApprovedAt),
			campaign.RejectionReason,
			campaign.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("campaign-report-%s.xlsx", time.Now().Format("2006-01-02-150405"))
	return buf, filename, nil
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func dateOrEmpty(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
