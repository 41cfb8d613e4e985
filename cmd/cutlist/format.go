package main

import (
	"fmt"
	"io"

	"github.com/millworks/cutlist/internal/model"
)

// printSummary writes a human-readable compute summary: per-material sheet
// usage, edge banding totals, and the backer row when lamination is on.
func printSummary(out io.Writer, summary model.CutlistSummary, snap *model.Snapshot) {
	fmt.Fprintf(out, "Priority: %s   Kerf: %.1f mm\n\n", snap.Priority, snap.KerfMM)

	fmt.Fprintln(out, "Boards:")
	for _, m := range summary.Materials {
		fmt.Fprintf(out, "  %-30s sheets used %d, billable %.3f\n",
			m.MaterialName, m.SheetsUsed, m.SheetsBillable)
		for _, sheet := range m.Sheets {
			fmt.Fprintf(out, "    sheet %d: %d parts, %.2f m2 used\n",
				sheet.Index+1, len(sheet.Placements), sheet.UsedArea()/1e6)
		}
	}
	fmt.Fprintf(out, "  Primary billable total: %.3f sheets\n", summary.PrimarySheetsBillable)

	if summary.Backer != nil {
		b := summary.Backer
		fmt.Fprintf(out, "\nBacker (%s): panel area %.2f m2, sheets used %d, billable %.3f\n",
			b.MaterialName, b.PanelAreaMM2/1e6, b.SheetsUsed, b.SheetsBillable)
	}

	if len(summary.EdgingByMaterial) > 0 {
		fmt.Fprintln(out, "\nEdge banding:")
		for _, e := range summary.EdgingByMaterial {
			fmt.Fprintf(out, "  %-30s %.2f m\n", e.Name, e.LengthMM/1000)
		}
	}
	if summary.Edgebanding16MM > 0 || summary.Edgebanding32MM > 0 {
		fmt.Fprintf(out, "  16mm tape: %.2f m   32mm tape: %.2f m\n",
			summary.Edgebanding16MM/1000, summary.Edgebanding32MM/1000)
	}
}

// printImportResult reports imported parts plus any row-level diagnostics.
func printImportResult(out io.Writer, parts int, errors, warnings []string) {
	fmt.Fprintf(out, "Imported %d parts\n", parts)
	for _, w := range warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	for _, e := range errors {
		fmt.Fprintf(out, "  error: %s\n", e)
	}
}
