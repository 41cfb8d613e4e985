package engine

import (
	"context"
	"sort"

	"github.com/millworks/cutlist/internal/model"
)

// Options tunes a compute run. The zero value uses the defaults.
type Options struct {
	DeepBudget int // Candidate decodes per material for the deep strategy
}

// Compute runs the full pipeline: normalize, pack per material, aggregate
// edge banding, match the backer, resolve billing, and assemble the summary.
// It is pure and deterministic: identical snapshots always produce summaries
// that compare structurally equal. The context is only consulted by the deep
// strategy, which returns its best candidate so far on cancellation.
func Compute(ctx context.Context, snap model.Snapshot) (model.CutlistSummary, error) {
	return ComputeWithOptions(ctx, snap, Options{})
}

func ComputeWithOptions(ctx context.Context, snap model.Snapshot, opts Options) (model.CutlistSummary, error) {
	norm, err := model.Normalize(snap)
	if err != nil {
		return model.CutlistSummary{}, err
	}

	summary := model.CutlistSummary{
		LaminationOn: norm.LaminationOn,
	}

	// Group parts by board material. Offcut reuse never crosses material
	// boundaries: each group packs onto its own sheets.
	byMaterial := make(map[string][]model.Part)
	for _, p := range norm.Parts {
		byMaterial[p.MaterialID] = append(byMaterial[p.MaterialID], p)
	}
	materialIDs := make([]string, 0, len(byMaterial))
	for id := range byMaterial {
		materialIDs = append(materialIDs, id)
	}
	sort.Strings(materialIDs)

	for _, id := range materialIDs {
		board, _ := norm.BoardByID(id)
		insts := expandInstances(byMaterial[id])

		var sheets []model.SheetLayout
		switch norm.Priority {
		case model.PriorityOffcut:
			sheets, err = packMaterial(insts, board, norm.KerfMM, true)
		case model.PriorityDeep:
			sheets, err = packDeep(ctx, insts, board, norm.KerfMM, opts.DeepBudget)
		default:
			sheets, err = packMaterial(insts, board, norm.KerfMM, false)
		}
		if err != nil {
			return model.CutlistSummary{}, err
		}

		layout := model.MaterialLayout{
			MaterialID:   board.ID,
			MaterialName: board.Name,
			SheetsUsed:   len(sheets),
			Sheets:       sheets,
		}
		layout.SheetsBillable = model.ResolveBilling(layout, board, norm.SheetOverrides[board.ID], norm.GlobalFullBoard)
		summary.Materials = append(summary.Materials, layout)
		summary.PrimarySheetsBillable += layout.SheetsBillable
	}

	banding := model.AggregateEdgeBanding(norm)
	summary.EdgingByMaterial = banding.ByMaterial
	summary.Edgebanding16MM = banding.Total16MM
	summary.Edgebanding32MM = banding.Total32MM

	if norm.LaminationOn {
		backerBoard, err := model.ResolveBackerBoard(norm)
		if err != nil {
			return model.CutlistSummary{}, err
		}
		res := model.MatchBacker(summary.Materials, backerBoard)
		res.SheetsBillable = model.ResolveBackerBilling(res, backerBoard, norm.BackerSheetOverrides, norm.BackerGlobalFullBoard)
		summary.Backer = &res
		summary.BackerSheetsBillable = res.SheetsBillable
	}

	return summary, nil
}
