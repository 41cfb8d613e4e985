package export

import (
	"fmt"

	"github.com/millworks/cutlist/internal/model"
	"github.com/xuri/excelize/v2"
)

// CostingWorkbook writes the summary as an XLSX workbook with a costing
// sheet (boards, edging, backer, totals) and a placements sheet listing
// every cut. This is the artifact the estimating side imports.
func CostingWorkbook(path string, summary model.CutlistSummary, snap model.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	const costSheet = "Costing"
	f.SetSheetName("Sheet1", costSheet)

	headers := []string{"Item", "Size", "Sheets Used", "Billable", "Unit Cost", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(costSheet, cell, h)
	}

	row := 2
	var grandTotal float64

	writeRow := func(item, size string, used interface{}, billable, unitCost, total float64) {
		f.SetCellValue(costSheet, fmt.Sprintf("A%d", row), item)
		f.SetCellValue(costSheet, fmt.Sprintf("B%d", row), size)
		f.SetCellValue(costSheet, fmt.Sprintf("C%d", row), used)
		f.SetCellValue(costSheet, fmt.Sprintf("D%d", row), billable)
		f.SetCellValue(costSheet, fmt.Sprintf("E%d", row), unitCost)
		f.SetCellValue(costSheet, fmt.Sprintf("F%d", row), total)
		grandTotal += total
		row++
	}

	for _, m := range summary.Materials {
		board, _ := snap.BoardByID(m.MaterialID)
		writeRow(
			board.Name,
			fmt.Sprintf("%.0f x %.0f mm", board.SheetLengthMM, board.SheetWidthMM),
			m.SheetsUsed,
			m.SheetsBillable,
			board.CostPerSheet,
			m.SheetsBillable*board.CostPerSheet,
		)
	}

	if summary.Backer != nil {
		board, _ := snap.BoardByID(summary.Backer.MaterialID)
		writeRow(
			board.Name+" (backer)",
			fmt.Sprintf("%.0f x %.0f mm", board.SheetLengthMM, board.SheetWidthMM),
			summary.Backer.SheetsUsed,
			summary.Backer.SheetsBillable,
			board.CostPerSheet,
			summary.Backer.SheetsBillable*board.CostPerSheet,
		)
	}

	for _, e := range summary.EdgingByMaterial {
		meters := e.LengthMM / 1000.0
		writeRow(
			fmt.Sprintf("%s edging", e.Name),
			fmt.Sprintf("%gmm", e.ThicknessMM),
			meters,
			meters,
			e.CostPerMeter,
			meters*e.CostPerMeter,
		)
	}

	row++
	f.SetCellValue(costSheet, fmt.Sprintf("A%d", row), "Grand Total")
	f.SetCellValue(costSheet, fmt.Sprintf("F%d", row), grandTotal)

	const placeSheet = "Placements"
	if _, err := f.NewSheet(placeSheet); err != nil {
		return err
	}
	placeHeaders := []string{"Material", "Sheet", "Part", "X (mm)", "Y (mm)", "Length (mm)", "Width (mm)", "Rotated"}
	for i, h := range placeHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(placeSheet, cell, h)
	}

	prow := 2
	for _, m := range summary.Materials {
		for _, sheet := range m.Sheets {
			for _, p := range sheet.Placements {
				f.SetCellValue(placeSheet, fmt.Sprintf("A%d", prow), m.MaterialName)
				f.SetCellValue(placeSheet, fmt.Sprintf("B%d", prow), sheet.Index+1)
				f.SetCellValue(placeSheet, fmt.Sprintf("C%d", prow), p.Label)
				f.SetCellValue(placeSheet, fmt.Sprintf("D%d", prow), p.X)
				f.SetCellValue(placeSheet, fmt.Sprintf("E%d", prow), p.Y)
				f.SetCellValue(placeSheet, fmt.Sprintf("F%d", prow), p.LengthUsed)
				f.SetCellValue(placeSheet, fmt.Sprintf("G%d", prow), p.WidthUsed)
				f.SetCellValue(placeSheet, fmt.Sprintf("H%d", prow), p.Rotated)
				prow++
			}
		}
	}

	return f.SaveAs(path)
}
