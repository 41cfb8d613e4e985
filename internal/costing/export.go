package costing

import (
	"fmt"

	"github.com/millworks/cutlist/internal/model"
)

// ExportMode selects how an export treats the item's prior lines.
type ExportMode string

const (
	ModeReplace ExportMode = "replace" // Remove this item's prior lines, write new ones
	ModeAppend  ExportMode = "append"  // Keep prior lines, write additional ones
)

// Slot names. One slot per material/role per item.
const (
	SlotBacker = "backer"
	SlotBand16 = "band16"
	SlotBand32 = "band32"
)

func SlotPrimary(materialID string) string { return "primary_" + materialID }
func SlotEdging(materialID string) string  { return "edging_" + materialID }

// BuildLines derives the quote lines for a computed summary. Board lines are
// quantified in billable sheets, edging lines in meters. The legacy band16/
// band32 aggregate slots are only emitted when they carry length, and carry
// no cost of their own (the per-material edging lines are the costed ones).
func BuildLines(itemID string, summary model.CutlistSummary, snap model.Snapshot) []Line {
	var lines []Line

	for _, m := range summary.Materials {
		board, _ := snap.BoardByID(m.MaterialID)
		lines = append(lines, Line{
			ItemID:       itemID,
			Slot:         SlotPrimary(m.MaterialID),
			Description:  fmt.Sprintf("%s %.0fx%.0fmm", board.Name, board.SheetLengthMM, board.SheetWidthMM),
			ComponentRef: board.ComponentRef,
			Quantity:     m.SheetsBillable,
			Unit:         "sheet",
			UnitCost:     board.CostPerSheet,
			TotalCost:    m.SheetsBillable * board.CostPerSheet,
		})
	}

	for _, e := range summary.EdgingByMaterial {
		edging, _ := snap.EdgingByID(e.MaterialID)
		meters := e.LengthMM / 1000.0
		lines = append(lines, Line{
			ItemID:       itemID,
			Slot:         SlotEdging(e.MaterialID),
			Description:  fmt.Sprintf("%s edging %gmm", e.Name, e.ThicknessMM),
			ComponentRef: edging.ComponentRef,
			Quantity:     meters,
			Unit:         "m",
			UnitCost:     e.CostPerMeter,
			TotalCost:    meters * e.CostPerMeter,
		})
	}

	if summary.Backer != nil {
		board, _ := snap.BoardByID(summary.Backer.MaterialID)
		lines = append(lines, Line{
			ItemID:       itemID,
			Slot:         SlotBacker,
			Description:  fmt.Sprintf("%s backer %.0fx%.0fmm", board.Name, board.SheetLengthMM, board.SheetWidthMM),
			ComponentRef: board.ComponentRef,
			Quantity:     summary.Backer.SheetsBillable,
			Unit:         "sheet",
			UnitCost:     board.CostPerSheet,
			TotalCost:    summary.Backer.SheetsBillable * board.CostPerSheet,
		})
	}

	if summary.Edgebanding16MM > 0 {
		lines = append(lines, Line{
			ItemID:      itemID,
			Slot:        SlotBand16,
			Description: "Edge banding 16mm (aggregate)",
			Quantity:    summary.Edgebanding16MM / 1000.0,
			Unit:        "m",
		})
	}
	if summary.Edgebanding32MM > 0 {
		lines = append(lines, Line{
			ItemID:      itemID,
			Slot:        SlotBand32,
			Description: "Edge banding 32mm (aggregate)",
			Quantity:    summary.Edgebanding32MM / 1000.0,
			Unit:        "m",
		})
	}

	return lines
}

// Export writes the summary's lines against the quote store and returns the
// slot references for future re-export. Replace removes the item's prior
// lines first; Append keeps them. The write is transactional: a failed export
// leaves the store untouched.
func (s *Store) Export(itemID string, summary model.CutlistSummary, snap model.Snapshot, mode ExportMode) (map[string]int64, error) {
	lines := BuildLines(itemID, summary, snap)

	tx, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if mode == ModeReplace {
		if _, err := tx.Exec(`DELETE FROM line_items WHERE item_id = ?`, itemID); err != nil {
			return nil, fmt.Errorf("clear prior lines for %s: %w", itemID, err)
		}
	}

	refs := make(map[string]int64, len(lines))
	for _, l := range lines {
		id, err := s.insert(tx, l)
		if err != nil {
			return nil, err
		}
		refs[l.Slot] = id
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return refs, nil
}
