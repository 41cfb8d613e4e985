package model

import "math"

// round3 rounds to three decimal places, the resolution billable sheet counts
// are quoted at.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// SheetBillable returns the billable fraction for a single sheet given its
// fill ratio and billing policy. Overrides win over the global flag.
func SheetBillable(fillRatio float64, override SheetBillingMode, hasOverride, globalFull bool) float64 {
	if hasOverride {
		if override == BillFull {
			return 1.0
		}
		return round3(fillRatio)
	}
	if globalFull {
		return 1.0
	}
	return round3(fillRatio)
}

// ResolveBilling converts a material's actual sheet usage into its billable
// sheet count.
//
// Default policy: every fully-consumed sheet bills as exactly 1.0 and only the
// final, partially filled sheet bills at its fill ratio. A sheet is treated as
// full whenever it is not the last opened sheet — the packer only opens a new
// sheet once the previous ones cannot take the next part, so earlier sheets
// are billed whole rather than prorated on residual slack.
//
// Overrides pin individual sheets to full (1.0) or to their computed fill
// ratio; GlobalFullBoard bills every sheet as 1.0.
func ResolveBilling(layout MaterialLayout, board BoardMaterial, overrides map[int]SheetBillingMode, globalFull bool) float64 {
	sheetArea := board.SheetArea()
	if sheetArea <= 0 || layout.SheetsUsed == 0 {
		return 0
	}

	var billable float64
	last := layout.SheetsUsed - 1

	for _, sheet := range layout.Sheets {
		fill := round3(sheet.UsedArea() / sheetArea)
		if fill > 1.0 {
			fill = 1.0
		}

		override, hasOverride := overrides[sheet.Index]

		switch {
		case hasOverride:
			billable += SheetBillable(fill, override, true, globalFull)
		case globalFull:
			billable += 1.0
		case sheet.Index < last:
			billable += 1.0
		default:
			billable += fill
		}
	}

	return round3(billable)
}

// ResolveBackerBilling bills the synthetic backer layout: whole sheets are
// integers and the final sheet carries the fractional remainder of the area
// ratio, subject to the backer's own overrides and global flag.
func ResolveBackerBilling(res BackerResult, board BoardMaterial, overrides map[int]SheetBillingMode, globalFull bool) float64 {
	sheetArea := board.SheetArea()
	if sheetArea <= 0 || res.SheetsUsed == 0 {
		return 0
	}

	exact := res.PanelAreaMM2 / sheetArea
	var billable float64

	for i := 0; i < res.SheetsUsed; i++ {
		fill := 1.0
		if i == res.SheetsUsed-1 {
			fill = exact - float64(res.SheetsUsed-1)
			if fill > 1.0 {
				fill = 1.0
			}
		}

		override, hasOverride := overrides[i]

		switch {
		case hasOverride:
			billable += SheetBillable(fill, override, true, globalFull)
		case globalFull:
			billable += 1.0
		default:
			billable += round3(fill)
		}
	}

	return round3(billable)
}
