package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/sectionsheets/internal/model"
)

const (
	placementsSheet = "Placements"
	failuresSheet   = "Failures"
)

var placementHeaders = []string{"Sheet", "Section", "Room", "Tag", "Center X", "Center Y", "Width", "Height"}
var failureHeaders = []string{"Kind", "Room", "Tag", "Viewport", "Message"}

// ExportScheduleXLSX writes a viewport schedule workbook: one row per placed
// viewport on the "Placements" sheet and one row per failure on "Failures".
func ExportScheduleXLSX(path string, plan model.PlanResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(failuresSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	var rows [][]interface{}
	for _, sheet := range plan.Sheets {
		for _, p := range sheet.Page.Placements {
			room, tag := "", ""
			if s := plan.SectionByRect(p.RectID); s != nil {
				room, tag = s.RoomName, s.Orientation.Tag()
			}
			rows = append(rows, []interface{}{sheet.Number, p.Label, room, tag, p.CenterX, p.CenterY, p.Width, p.Height})
		}
	}
	if err := writeTable(f, placementsSheet, placementHeaders, rows, header); err != nil {
		return err
	}

	rows = rows[:0]
	for _, fl := range plan.Failures {
		rows = append(rows, []interface{}{string(fl.Kind), fl.Room, fl.Tag, fl.RectID, fl.Message})
	}
	if err := writeTable(f, failuresSheet, failureHeaders, rows, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeTable writes a styled header row followed by rows.
func writeTable(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
		}
	}
	return nil
}
