// Package engine implements the 2D packing strategies and the compute
// pipeline that turns an input snapshot into a cutlist summary.
package engine

// rect is an axis-aligned free area on a sheet, in mm.
type rect struct {
	x, y, w, h float64
}

// sheetPacker tracks the free rectangles of a single opened sheet and places
// parts into them. It keeps maximal free rectangles: every placement splits
// all overlapping free rects into their largest remaining strips, which lets
// later parts reuse leftovers that span earlier cuts.
type sheetPacker struct {
	freeRects []rect
	kerf      float64
}

// newSheetPacker opens a sheet of the given usable dimensions. The kerf is
// consumed on the trailing edges of each placement, which also reserves the
// trim against the sheet boundary.
func newSheetPacker(length, width, kerf float64) *sheetPacker {
	return &sheetPacker{
		freeRects: []rect{{0, 0, length, width}},
		kerf:      kerf,
	}
}

const packEps = 0.001

// bestFit returns the leftover area of the tightest free rect that can take a
// w x h placement, or -1 when nothing fits. It does not modify the packer.
func (sp *sheetPacker) bestFit(w, h float64) float64 {
	wk := w + sp.kerf
	hk := h + sp.kerf
	best := float64(-1)

	for _, r := range sp.freeRects {
		if wk <= r.w+packEps && hk <= r.h+packEps {
			leftover := (r.w * r.h) - (w * h)
			if best < 0 || leftover < best {
				best = leftover
			}
		}
	}
	return best
}

// insert places a w x h part using best-area-fit and returns its position.
// Ties between equally tight free rects break on the lowest rect index so the
// result is reproducible for identical input.
func (sp *sheetPacker) insert(w, h float64) (bool, float64, float64) {
	bestIdx := -1
	bestLeftover := float64(-1)
	wk := w + sp.kerf
	hk := h + sp.kerf

	for i, r := range sp.freeRects {
		if wk <= r.w+packEps && hk <= r.h+packEps {
			leftover := (r.w * r.h) - (w * h)
			if bestIdx < 0 || leftover < bestLeftover {
				bestIdx = i
				bestLeftover = leftover
			}
		}
	}

	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := sp.freeRects[bestIdx]
	px, py := chosen.x, chosen.y
	sp.splitAroundPlacement(rect{x: px, y: py, w: wk, h: hk})
	return true, px, py
}

// splitAroundPlacement removes every free rect overlapping the placed rect
// and replaces it with the maximal strips left around the placement, then
// prunes rects fully contained in another.
func (sp *sheetPacker) splitAroundPlacement(placed rect) {
	var next []rect

	for _, r := range sp.freeRects {
		if !rectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}

		if placed.x > r.x+packEps {
			next = append(next, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		if placed.x+placed.w < r.x+r.w-packEps {
			next = append(next, rect{x: placed.x + placed.w, y: r.y, w: (r.x + r.w) - (placed.x + placed.w), h: r.h})
		}
		if placed.y > r.y+packEps {
			next = append(next, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h-packEps {
			next = append(next, rect{x: r.x, y: placed.y + placed.h, w: r.w, h: (r.y + r.h) - (placed.y + placed.h)})
		}
	}

	sp.freeRects = pruneContained(next)
}

// rectsOverlap reports whether two rects overlap by more than a touch.
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-packEps && a.x+a.w > b.x+packEps &&
		a.y < b.y+b.h-packEps && a.y+a.h > b.y+packEps
}

// pruneContained drops any rect fully contained within another.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsRect(b, a) {
				// Identical rects keep only the first occurrence.
				if !(containsRect(a, b) && i < j) {
					contained = true
					break
				}
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+packEps && outer.y <= inner.y+packEps &&
		outer.x+outer.w >= inner.x+inner.w-packEps &&
		outer.y+outer.h >= inner.y+inner.h-packEps
}
