// Package export renders computed cutlist summaries into the artifacts the
// costing boundary hands on: PDF layout diagrams, QR part labels, and an
// XLSX costing workbook.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/millworks/cutlist/internal/model"
)

type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// LayoutPDF renders each sheet of every material on its own page, followed by
// a summary page with the billable counts and edging totals.
func LayoutPDF(path string, summary model.CutlistSummary, snap model.Snapshot) error {
	if len(summary.Materials) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, m := range summary.Materials {
		board, _ := snap.BoardByID(m.MaterialID)
		for _, sheet := range m.Sheets {
			pdf.AddPage()
			renderSheetPage(pdf, m, board, sheet)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, summary, snap)

	return pdf.OutputFileAndClose(path)
}

func renderSheetPage(pdf *fpdf.Fpdf, m model.MaterialLayout, board model.BoardMaterial, sheet model.SheetLayout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s — sheet %d of %d (%.0f x %.0f mm)",
		m.MaterialName, sheet.Index+1, m.SheetsUsed, board.SheetLengthMM, board.SheetWidthMM)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	fill := 0.0
	if a := board.SheetArea(); a > 0 {
		fill = sheet.UsedArea() / a * 100
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %.0f mm2 | Fill: %.1f%%",
		len(sheet.Placements), sheet.UsedArea(), fill)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / board.SheetLengthMM
	scaleY := drawHeight / board.SheetWidthMM
	scale := math.Min(scaleX, scaleY)

	canvasW := board.SheetLengthMM * scale
	canvasH := board.SheetWidthMM * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Placements {
		col := partColors[i%len(partColors)]
		pw := p.LengthUsed * scale
		ph := p.WidthUsed * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Label
			dims := fmt.Sprintf("%.0fx%.0f", p.LengthUsed, p.WidthUsed)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, board, scale, offsetX, offsetY, canvasW, canvasH)
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, board model.BoardMaterial, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", board.SheetLengthMM)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", board.SheetWidthMM)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func renderSummaryPage(pdf *fpdf.Fpdf, summary model.CutlistSummary, snap model.Snapshot) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutlist Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Board Usage", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{70, 45, 35, 35, 40}
	headers := []string{"Material", "Sheet Size", "Used", "Billable", "Cost"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, m := range summary.Materials {
		board, _ := snap.BoardByID(m.MaterialID)
		row := []string{
			m.MaterialName,
			fmt.Sprintf("%.0f x %.0f mm", board.SheetLengthMM, board.SheetWidthMM),
			fmt.Sprintf("%d", m.SheetsUsed),
			fmt.Sprintf("%.3f", m.SheetsBillable),
			fmt.Sprintf("%.2f", m.SheetsBillable*board.CostPerSheet),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if summary.Backer != nil {
		board, _ := snap.BoardByID(summary.Backer.MaterialID)
		pdf.SetFillColor(255, 255, 255)
		row := []string{
			summary.Backer.MaterialName + " (backer)",
			fmt.Sprintf("%.0f x %.0f mm", board.SheetLengthMM, board.SheetWidthMM),
			fmt.Sprintf("%d", summary.Backer.SheetsUsed),
			fmt.Sprintf("%.3f", summary.Backer.SheetsBillable),
			fmt.Sprintf("%.2f", summary.Backer.SheetsBillable*board.CostPerSheet),
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(summary.EdgingByMaterial) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Edge Banding", "", 0, "L", false, 0, "")
		y += 9

		pdf.SetFont("Helvetica", "", 9)
		for _, e := range summary.EdgingByMaterial {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("%s (%gmm): %.2f m", e.Name, e.ThicknessMM, e.LengthMM/1000.0)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cutlist", "", 0, "C", false, 0, "")
}

func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
