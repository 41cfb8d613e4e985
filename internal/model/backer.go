package model

import "math"

// ResolveBackerBoard returns the board the lamination backer is cut from:
// the explicitly selected board if set, otherwise the board marked default
// for the backer role.
func ResolveBackerBoard(snap Snapshot) (BoardMaterial, error) {
	if snap.BackerMaterialID != "" {
		if b, ok := snap.BoardByID(snap.BackerMaterialID); ok {
			return b, nil
		}
		return BoardMaterial{}, NoBackerMaterialError{}
	}
	if b, ok := snap.DefaultBoard(RoleBacker); ok {
		return b, nil
	}
	return BoardMaterial{}, NoBackerMaterialError{}
}

// MatchBacker derives the backer-sheet requirement from the primary layouts.
// The backer is not a 1:1 physical overlay of the primary cut pattern: backer
// boards usually come in different standard sizes, so the requirement is the
// primary's total placed panel area measured against the backer board's own
// sheet area.
func MatchBacker(primary []MaterialLayout, backer BoardMaterial) BackerResult {
	var panelArea float64
	for _, m := range primary {
		panelArea += m.TotalUsedArea()
	}

	res := BackerResult{
		MaterialID:   backer.ID,
		MaterialName: backer.Name,
		PanelAreaMM2: panelArea,
	}

	sheetArea := backer.SheetArea()
	if panelArea <= 0 || sheetArea <= 0 {
		return res
	}

	res.SheetsUsed = int(math.Ceil(panelArea / sheetArea))
	return res
}
