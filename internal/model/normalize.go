package model

import "math"

// Normalize validates a snapshot and resolves its implicit references,
// returning an internally consistent copy or the first validation failure.
// The input is never mutated.
//
// Resolution rules:
//   - A part with no MaterialID gets the board marked default for the
//     primary role.
//   - A banded edge with no MaterialID gets the edging marked default for
//     the part's thickness.
//
// Feasibility rules:
//   - All part dimensions, thicknesses and quantities must be positive, as
//     must every board's sheet dimensions.
//   - Kerf must be non-negative and strictly smaller than the smallest part
//     dimension; a kerf at or above it could never place that part.
func Normalize(in Snapshot) (Snapshot, error) {
	out := in
	out.Parts = make([]Part, len(in.Parts))
	copy(out.Parts, in.Parts)

	if in.KerfMM < 0 {
		return Snapshot{}, KerfTooLargeError{KerfMM: in.KerfMM}
	}

	for _, b := range in.Boards {
		if b.SheetLengthMM <= 0 {
			return Snapshot{}, InvalidDimensionError{PartID: b.ID, Field: "sheet_length_mm", Value: b.SheetLengthMM}
		}
		if b.SheetWidthMM <= 0 {
			return Snapshot{}, InvalidDimensionError{PartID: b.ID, Field: "sheet_width_mm", Value: b.SheetWidthMM}
		}
	}

	minDim := math.Inf(1)
	minDimPart := ""

	for i, p := range out.Parts {
		switch {
		case p.LengthMM <= 0:
			return Snapshot{}, InvalidDimensionError{PartID: p.ID, Field: "length_mm", Value: p.LengthMM}
		case p.WidthMM <= 0:
			return Snapshot{}, InvalidDimensionError{PartID: p.ID, Field: "width_mm", Value: p.WidthMM}
		case p.ThicknessMM <= 0:
			return Snapshot{}, InvalidDimensionError{PartID: p.ID, Field: "thickness_mm", Value: p.ThicknessMM}
		}
		if p.Quantity <= 0 {
			return Snapshot{}, InvalidQuantityError{PartID: p.ID, Quantity: p.Quantity}
		}

		if p.MaterialID == "" {
			def, ok := in.DefaultBoard(RolePrimary)
			if !ok {
				return Snapshot{}, NoDefaultMaterialError{PartID: p.ID, Kind: "board"}
			}
			out.Parts[i].MaterialID = def.ID
		} else if _, ok := in.BoardByID(p.MaterialID); !ok {
			return Snapshot{}, NoDefaultMaterialError{PartID: p.ID, Kind: "board"}
		}

		for _, e := range Edges {
			be := p.Banding.Edge(e)
			if !be.Banded {
				continue
			}
			if be.MaterialID == "" {
				def, ok := in.DefaultEdgingForThickness(p.ThicknessMM)
				if !ok {
					return Snapshot{}, NoDefaultMaterialError{PartID: p.ID, Kind: "edging", ThicknessMM: p.ThicknessMM}
				}
				be.MaterialID = def.ID
				out.Parts[i].Banding.SetEdge(e, be)
			} else if _, ok := in.EdgingByID(be.MaterialID); !ok {
				return Snapshot{}, NoDefaultMaterialError{PartID: p.ID, Kind: "edging", ThicknessMM: p.ThicknessMM}
			}
		}

		if d := math.Min(p.LengthMM, p.WidthMM); d < minDim {
			minDim = d
			minDimPart = p.ID
		}
	}

	if len(out.Parts) > 0 && in.KerfMM >= minDim {
		return Snapshot{}, KerfTooLargeError{KerfMM: in.KerfMM, MinPartDim: minDim, LimitPartID: minDimPart}
	}

	return out, nil
}
