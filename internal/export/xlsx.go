// Package export renders a user's test history as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dmello/typetrack/internal/models"
)

const sheetName = "History"

var historyHeader = []any{
	"Test ID", "Date", "Mode", "WPM", "Raw WPM", "Accuracy (%)", "Consistency (%)",
	"Error Rate (%)", "Total Chars", "Correct Chars", "Incorrect Chars", "Duration (s)",
}

// HistoryXLSX writes the user's test records as an xlsx workbook. Records
// are written in the order given, one row per test under a header row.
func HistoryXLSX(w io.Writer, user *models.User, records []models.TestRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &historyHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		var consistency any
		if rec.Consistency != nil {
			consistency = *rec.Consistency
		}
		row := []any{
			rec.ID,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.TestMode,
			rec.WPM,
			rec.RawWPM,
			rec.Accuracy,
			consistency,
			rec.ErrorRate,
			rec.TotalCharacters,
			rec.CorrectCharacters,
			rec.IncorrectCharacters,
			rec.ActualDuration,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Filename returns the attachment name for a user's history export.
func Filename(user *models.User) string {
	return fmt.Sprintf("typing-history-%s.xlsx", user.ExternalID)
}
