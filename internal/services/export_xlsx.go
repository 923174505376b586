package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxCyclesSheet     = "Cycles"
	xlsxMilestonesSheet = "Milestones"
	xlsxRecordsSheet    = "Intimacy"
)

var (
	xlsxCycleHeaders     = []string{"Period start", "Period end", "Fertile start", "Ovulation", "Fertile end", "Next period"}
	xlsxMilestoneHeaders = []string{"Week", "Date", "Category", "Key"}
	xlsxRecordHeaders    = []string{"Date", "Probability (%)", "Note"}
)

// XLSX renders the bundle as a workbook with one sheet per surface.
func (bundle ExportBundle) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FCE4EC"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cycleRows := make([][]any, 0, len(bundle.Cycles))
	for _, cycle := range bundle.Cycles {
		cycleRows = append(cycleRows, []any{
			cycle.PeriodStart, cycle.PeriodEnd, cycle.FertileStart,
			cycle.OvulationDate, cycle.FertileEnd, cycle.NextPeriodStart,
		})
	}
	milestoneRows := make([][]any, 0)
	if bundle.Pregnancy != nil {
		for _, milestone := range bundle.Pregnancy.Milestones {
			milestoneRows = append(milestoneRows, []any{milestone.Week, milestone.Date, milestone.Category, milestone.Key})
		}
	}
	recordRows := make([][]any, 0, len(bundle.Records))
	for _, record := range bundle.Records {
		recordRows = append(recordRows, []any{record.Date, record.Probability, record.Note})
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{xlsxCyclesSheet, xlsxCycleHeaders, cycleRows},
		{xlsxMilestonesSheet, xlsxMilestoneHeaders, milestoneRows},
		{xlsxRecordsSheet, xlsxRecordHeaders, recordRows},
	}
	for index, sheet := range sheets {
		if index == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		if err := writeXLSXSheet(f, sheet.name, sheet.headers, sheet.rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSXSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}
	}
	for rowIndex, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
