package engine

import (
	"sort"

	"github.com/millworks/cutlist/internal/model"
)

// instance is one placement candidate: a single copy of a part, with an
// optional rotation preference used by the deep search.
type instance struct {
	part          model.Part
	preferRotated bool
}

// expandInstances expands parts by quantity into single-copy instances and
// orders them for greedy packing: descending area, then part id ascending so
// equal-area parts place in a reproducible order.
func expandInstances(parts []model.Part) []instance {
	var out []instance
	for _, p := range parts {
		cp := p
		cp.Quantity = 1
		for i := 0; i < p.Quantity; i++ {
			out = append(out, instance{part: cp})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].part.Area(), out[j].part.Area()
		if ai != aj {
			return ai > aj
		}
		return out[i].part.ID < out[j].part.ID
	})
	return out
}

// orientation is a concrete footprint choice for an instance.
type orientation struct {
	w, h    float64 // w along the sheet length axis, h along the width axis
	rotated bool
}

// orientations lists the allowed footprints of a part, preferred first.
func orientations(inst instance) []orientation {
	normal := orientation{w: inst.part.LengthMM, h: inst.part.WidthMM}
	if inst.part.GrainLocked || inst.part.LengthMM == inst.part.WidthMM {
		return []orientation{normal}
	}
	rotated := orientation{w: inst.part.WidthMM, h: inst.part.LengthMM, rotated: true}
	if inst.preferRotated {
		return []orientation{rotated, normal}
	}
	return []orientation{normal, rotated}
}

// fitsSheet reports whether the instance fits an empty sheet of the board in
// any allowed orientation, kerf included.
func fitsSheet(inst instance, board model.BoardMaterial, kerf float64) bool {
	for _, o := range orientations(inst) {
		if o.w+kerf <= board.SheetLengthMM+packEps && o.h+kerf <= board.SheetWidthMM+packEps {
			return true
		}
	}
	return false
}

// packMaterial places all instances onto sheets of a single board material.
//
// With reuseOffcuts false (the fast strategy) only the most recently opened
// sheet is considered, so packing is a single greedy pass. With reuseOffcuts
// true (the offcut strategy) every opened sheet's leftover rectangles are
// scanned first, best fit wins, and a new sheet opens only when no leftover
// can take the part. Leftovers are per material by construction: each call
// packs one material's parts onto that material's sheets.
func packMaterial(insts []instance, board model.BoardMaterial, kerf float64, reuseOffcuts bool) ([]model.SheetLayout, error) {
	var packers []*sheetPacker
	var sheets []model.SheetLayout

	for _, inst := range insts {
		if !fitsSheet(inst, board, kerf) {
			return nil, model.PartExceedsSheetError{PartID: inst.part.ID, MaterialID: board.ID}
		}

		bestSheet := -1
		bestLeftover := float64(-1)
		var bestOrient orientation

		probeFrom := len(packers) - 1
		if reuseOffcuts {
			probeFrom = 0
		}
		if probeFrom < 0 {
			probeFrom = 0
		}

		for si := probeFrom; si < len(packers); si++ {
			for _, o := range orientations(inst) {
				leftover := packers[si].bestFit(o.w, o.h)
				if leftover < 0 {
					continue
				}
				if bestSheet < 0 || leftover < bestLeftover {
					bestSheet = si
					bestLeftover = leftover
					bestOrient = o
				}
			}
		}

		if bestSheet < 0 {
			packers = append(packers, newSheetPacker(board.SheetLengthMM, board.SheetWidthMM, kerf))
			sheets = append(sheets, model.SheetLayout{Index: len(sheets)})
			bestSheet = len(packers) - 1
			bestOrient = orientations(inst)[0]
		}

		ok, x, y := packers[bestSheet].insert(bestOrient.w, bestOrient.h)
		if !ok {
			// A fresh sheet refusing a feasibility-checked part means the
			// preferred orientation alone does not fit; fall through the
			// remaining ones.
			for _, o := range orientations(inst)[1:] {
				if ok, x, y = packers[bestSheet].insert(o.w, o.h); ok {
					bestOrient = o
					break
				}
			}
			if !ok {
				return nil, model.PartExceedsSheetError{PartID: inst.part.ID, MaterialID: board.ID}
			}
		}

		sheets[bestSheet].Placements = append(sheets[bestSheet].Placements, model.Placement{
			PartID:     inst.part.ID,
			Label:      inst.part.Label,
			X:          x,
			Y:          y,
			Rotated:    bestOrient.rotated,
			LengthUsed: bestOrient.w,
			WidthUsed:  bestOrient.h,
		})
	}

	return sheets, nil
}
