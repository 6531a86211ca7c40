package services

import (
	"bytes"
	"fmt"
	"time"

	"legal_cms_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	reportCasesSheet   = "Cases"
	reportSummarySheet = "Summary"
)

var reportCaseHeaders = []string{
	"Case ID", "Case Number", "Title", "Type", "Status", "Priority",
	"Petitioner", "Respondent", "Advocate", "Judge", "Court Room",
	"Filing Date", "Next Hearing",
}

var reportColumnWidths = []float64{16, 18, 40, 12, 20, 10, 28, 28, 24, 24, 18, 14, 20}

// ExportCasesWorkbook renders every case visible to user as an xlsx workbook
// with a Cases sheet and a Summary sheet of counts by status and type
func ExportCasesWorkbook(db *gorm.DB, user *models.User, now time.Time) (*bytes.Buffer, error) {
	var cases []models.Case
	err := db.Model(&models.Case{}).Scopes(CaseScope(user)).
		Preload("Advocate").
		Order("cases.filing_date ASC").Order("cases.id ASC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportCasesSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(reportSummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range reportCaseHeaders {
		if err := setReportCell(f, reportCasesSheet, i+1, 1, header); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(reportCasesSheet, col, col, reportColumnWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reportCaseHeaders), 1)
	if err := f.SetCellStyle(reportCasesSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	byStatus := make(map[string]int)
	byType := make(map[string]int)
	var typeOrder []string

	for i, c := range cases {
		advocate := ""
		if c.Advocate != nil {
			advocate = c.Advocate.Name
		}
		row := []interface{}{
			c.DisplayID(),
			c.CaseNumber,
			c.Title,
			c.CaseType,
			c.Status,
			c.Priority,
			c.Petitioner,
			c.Respondent,
			advocate,
			derefOrEmpty(c.Judge),
			derefOrEmpty(c.CourtRoomName),
			derefOrEmpty(models.FormatDate(&c.FilingDate)),
			derefOrEmpty(models.FormatDateTime(c.NextHearing)),
		}
		for col, value := range row {
			if err := setReportCell(f, reportCasesSheet, col+1, i+2, value); err != nil {
				return nil, err
			}
		}

		byStatus[c.Status]++
		if _, seen := byType[c.CaseType]; !seen {
			typeOrder = append(typeOrder, c.CaseType)
		}
		byType[c.CaseType]++
	}

	if err := f.SetPanes(reportCasesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	// Summary
	summary := [][]interface{}{
		{"Generated", now.UTC().Format(models.DateTimeLayout)},
		{"Total Cases", len(cases)},
		{},
		{"Status", "Cases"},
	}
	statuses := []string{
		models.CaseStatusFiled, models.CaseStatusUnderReview, models.CaseStatusHearingScheduled,
		models.CaseStatusInProgress, models.CaseStatusJudgmentReserved, models.CaseStatusClosed,
		models.CaseStatusDismissed,
	}
	for _, s := range statuses {
		summary = append(summary, []interface{}{s, byStatus[s]})
	}
	summary = append(summary, []interface{}{}, []interface{}{"Case Type", "Cases"})
	typeHeaderRow := len(summary)
	for _, t := range typeOrder {
		summary = append(summary, []interface{}{t, byType[t]})
	}

	for r, values := range summary {
		for c, value := range values {
			if err := setReportCell(f, reportSummarySheet, c+1, r+1, value); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(reportSummarySheet, "A", "B", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	for _, row := range []int{4, typeHeaderRow} {
		cell := fmt.Sprintf("B%d", row)
		if err := f.SetCellStyle(reportSummarySheet, fmt.Sprintf("A%d", row), cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

func setReportCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
