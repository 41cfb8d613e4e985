package model

// Placement is a single part instance placed on a sheet. Coordinates are mm
// from the sheet's top-left corner; LengthUsed/WidthUsed are the footprint on
// the sheet after rotation, kerf excluded.
type Placement struct {
	PartID     string  `json:"part_id"`
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Rotated    bool    `json:"rotated"`
	LengthUsed float64 `json:"length_used"`
	WidthUsed  float64 `json:"width_used"`
}

// SheetLayout is one opened sheet of a material with its placements.
type SheetLayout struct {
	Index      int         `json:"index"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total part area placed on the sheet.
func (s SheetLayout) UsedArea() float64 {
	var total float64
	for _, p := range s.Placements {
		total += p.LengthUsed * p.WidthUsed
	}
	return total
}

// MaterialLayout is the packing result for one board material.
type MaterialLayout struct {
	MaterialID     string        `json:"material_id"`
	MaterialName   string        `json:"material_name"`
	SheetsUsed     int           `json:"sheets_used"`
	SheetsBillable float64       `json:"sheets_billable"`
	Sheets         []SheetLayout `json:"sheets"`
}

// TotalUsedArea returns the part area placed across all of the material's sheets.
func (m MaterialLayout) TotalUsedArea() float64 {
	var total float64
	for _, s := range m.Sheets {
		total += s.UsedArea()
	}
	return total
}

// EdgingUsage is the aggregated banding requirement for one edging material.
type EdgingUsage struct {
	MaterialID   string  `json:"material_id"`
	Name         string  `json:"name"`
	ThicknessMM  float64 `json:"thickness_mm"`
	LengthMM     float64 `json:"length_mm"`
	CostPerMeter float64 `json:"cost_per_meter"`
}

// BackerResult is the derived backer-sheet requirement when lamination is on.
type BackerResult struct {
	MaterialID     string  `json:"material_id"`
	MaterialName   string  `json:"material_name"`
	SheetsUsed     int     `json:"sheets_used"`
	SheetsBillable float64 `json:"sheets_billable"`
	PanelAreaMM2   float64 `json:"panel_area_mm2"` // Primary panel area the backer must cover
}

// CutlistSummary is the immutable compute result. It is regenerated wholesale
// on every run and never mutated in place.
type CutlistSummary struct {
	Materials        []MaterialLayout `json:"materials"`
	EdgingByMaterial []EdgingUsage    `json:"edging_by_material"`
	Backer           *BackerResult    `json:"backer,omitempty"`

	PrimarySheetsBillable float64 `json:"primary_sheets_billable"`
	BackerSheetsBillable  float64 `json:"backer_sheets_billable"`
	LaminationOn          bool    `json:"lamination_on"`

	// Legacy aggregates for callers that do not need the per-material
	// breakdown: total banding length grouped by nominal tape thickness.
	Edgebanding16MM float64 `json:"edgebanding16mm"`
	Edgebanding32MM float64 `json:"edgebanding32mm"`
}

// MaterialByID returns the layout for a board material id.
func (s CutlistSummary) MaterialByID(id string) (MaterialLayout, bool) {
	for _, m := range s.Materials {
		if m.MaterialID == id {
			return m, true
		}
	}
	return MaterialLayout{}, false
}

// TotalSheetsUsed returns the number of primary sheets opened across materials.
func (s CutlistSummary) TotalSheetsUsed() int {
	total := 0
	for _, m := range s.Materials {
		total += m.SheetsUsed
	}
	return total
}

// TotalEdgingLengthMM returns the summed banding length across all edging
// materials.
func (s CutlistSummary) TotalEdgingLengthMM() float64 {
	var total float64
	for _, e := range s.EdgingByMaterial {
		total += e.LengthMM
	}
	return total
}
