package model

import "sort"

// Nominal tape thicknesses for the legacy aggregate totals.
const (
	nominal16 = 16.0
	nominal32 = 32.0
)

// EdgeBandingTotals holds the aggregated banding requirement of a run.
type EdgeBandingTotals struct {
	ByMaterial []EdgingUsage
	Total16MM  float64 // Summed length across all 16mm-nominal edgings
	Total32MM  float64 // Summed length across all 32mm-nominal edgings
}

// AggregateEdgeBanding sums the required banding length per edging material
// from the normalized parts' edge flags. Banding flags ride logical edges, so
// each banded edge contributes the part-local edge length times quantity; the
// placement rotation of individual instances never changes the total.
func AggregateEdgeBanding(snap Snapshot) EdgeBandingTotals {
	lengths := make(map[string]float64)

	for _, p := range snap.Parts {
		if !p.Banding.HasAny() {
			continue
		}
		for _, e := range Edges {
			be := p.Banding.Edge(e)
			if !be.Banded {
				continue
			}
			lengths[be.MaterialID] += p.EdgeLengthMM(e) * float64(p.Quantity)
		}
	}

	totals := EdgeBandingTotals{}
	ids := make([]string, 0, len(lengths))
	for id := range lengths {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		mat, ok := snap.EdgingByID(id)
		if !ok {
			// Normalization guarantees resolvable ids; an unknown id here
			// would mean the snapshot was not normalized.
			continue
		}
		totals.ByMaterial = append(totals.ByMaterial, EdgingUsage{
			MaterialID:   mat.ID,
			Name:         mat.Name,
			ThicknessMM:  mat.ThicknessMM,
			LengthMM:     lengths[id],
			CostPerMeter: mat.CostPerMeter,
		})
		switch nominalThickness(mat.ThicknessMM) {
		case nominal16:
			totals.Total16MM += lengths[id]
		case nominal32:
			totals.Total32MM += lengths[id]
		}
	}

	return totals
}

// nominalThickness buckets a tape thickness into the legacy 16/32 groups.
// Anything at or below 16mm counts as 16, anything above as 32.
func nominalThickness(t float64) float64 {
	if t <= nominal16 {
		return nominal16
	}
	return nominal32
}
