package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"legal_cms_go/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	importInstructionsSheet = "Instructions"
	importCasesSheet        = "Cases"
	// maxImportRows bounds a single workbook import
	maxImportRows = 500
)

// Cases sheet columns, in order
var importHeaders = []string{
	"Case Number",
	"Title*",
	"Description",
	"Case Type",
	"Priority",
	"Petitioner*",
	"Respondent*",
	"Advocate Email",
	"Judge",
	"Court Room",
	"Filing Date",
}

// ImportResult summarizes a bulk case import
type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	SuccessCount   int      `json:"successCount"`
	FailedCount    int      `json:"failedCount"`
	SkippedCount   int      `json:"skippedCount"`
	Errors         []string `json:"errors"`
}

// GenerateImportTemplate builds the xlsx template accepted by ImportCases
func GenerateImportTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", importInstructionsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	instructions := []string{
		"Bulk case import",
		"",
		"Fill one case per row in the Cases sheet. Columns marked * are required.",
		"- Case Number is generated when left empty and must be unique otherwise.",
		"- Case Type defaults to " + models.DefaultCaseType + ".",
		"- Priority is one of high, medium, low and defaults to medium.",
		"- Advocate Email must belong to a registered advocate.",
		"- Filing Date uses the YYYY-MM-DD format and defaults to today.",
		fmt.Sprintf("- At most %d rows are imported per file.", maxImportRows),
	}
	for i, line := range instructions {
		if err := f.SetCellValue(importInstructionsSheet, fmt.Sprintf("A%d", i+1), line); err != nil {
			return nil, fmt.Errorf("failed to write instructions: %w", err)
		}
	}
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	f.SetCellStyle(importInstructionsSheet, "A1", "A1", titleStyle)
	f.SetColWidth(importInstructionsSheet, "A", "A", 80)

	if _, err := f.NewSheet(importCasesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	for i, header := range importHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(importCasesSheet, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(importHeaders), 1)
	lastCol, _ := excelize.ColumnNumberToName(len(importHeaders))
	f.SetColWidth(importCasesSheet, "A", lastCol, 20)

	example := []string{
		"", "Property Dispute - Sharma vs Patel", "Ownership of commercial property",
		"Civil", "high", "Rajesh Kumar", "Patel Industries Ltd.", "priya@example.com",
		"Justice R. Krishnan", "Court Room 1", "2024-03-15",
	}
	for i, value := range example {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(importCasesSheet, cell, value)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(importCasesSheet, "A1", lastHeader, headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// ImportCases files one case per row of the workbook's Cases sheet. Rows are
// independent: a failing row is reported and the rest still import.
func ImportCases(db *gorm.DB, user *models.User, file io.Reader) (*ImportResult, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can import cases")
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, BadRequest("Invalid Excel file")
	}
	defer f.Close()

	sheet := importCasesSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		sheet = sheets[len(sheets)-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, BadRequest("Failed to read %s sheet", sheet)
	}

	result := &ImportResult{Errors: []string{}}
	advocates := make(map[string]uint)

	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		if result.TotalProcessed >= maxImportRows {
			result.SkippedCount++
			continue
		}
		result.TotalProcessed++

		input, err := importRowInput(db, row, advocates)
		if err == nil {
			_, err = CreateCase(db, user, *input)
		}
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, importErrorMessage(err)))
			continue
		}
		result.SuccessCount++
	}

	zap.L().Info("case import finished",
		zap.Uint("user_id", user.ID),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailedCount),
	)
	return result, nil
}

func importRowInput(db *gorm.DB, row []string, advocates map[string]uint) (*CaseInput, error) {
	input := &CaseInput{
		CaseNumber: cell(row, 0),
		Title:      cell(row, 1),
		CaseType:   cell(row, 3),
		Priority:   strings.ToLower(cell(row, 4)),
		Petitioner: cell(row, 5),
		Respondent: cell(row, 6),
	}
	if input.Title == "" || input.Petitioner == "" || input.Respondent == "" {
		return nil, BadRequest("Title, petitioner and respondent are required")
	}
	if v := cell(row, 2); v != "" {
		input.Description = &v
	}
	if v := cell(row, 8); v != "" {
		input.Judge = &v
	}
	if v := cell(row, 9); v != "" {
		input.CourtRoom = &v
	}

	if v := cell(row, 10); v != "" {
		filed, err := models.ParseDate(v)
		if err != nil {
			return nil, BadRequest("Invalid filing date %q", v)
		}
		input.FilingDate = &filed
	}

	if email := NormalizeEmail(cell(row, 7)); email != "" {
		id, ok := advocates[email]
		if !ok {
			var advocate models.User
			err := db.Where("email = ? AND role = ?", email, models.RoleAdvocate).First(&advocate).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, BadRequest("Advocate %s not found", email)
				}
				return nil, fmt.Errorf("failed to load advocate: %w", err)
			}
			id = advocate.ID
			advocates[email] = id
		}
		input.AdvocateID = &id
	}

	return input, nil
}

func importErrorMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	zap.L().Warn("case import row failed", zap.Error(err))
	return "Failed to save case"
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
