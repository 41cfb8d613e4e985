package model

import "fmt"

// Validation and feasibility failures are returned as typed values so callers
// can present them individually; none of them is used for control flow inside
// the engine.

// InvalidDimensionError reports a non-positive part or sheet dimension.
type InvalidDimensionError struct {
	PartID string
	Field  string
	Value  float64
}

func (e InvalidDimensionError) Error() string {
	return fmt.Sprintf("part %s: %s must be positive, got %g", e.PartID, e.Field, e.Value)
}

// InvalidQuantityError reports a non-positive part quantity.
type InvalidQuantityError struct {
	PartID   string
	Quantity int
}

func (e InvalidQuantityError) Error() string {
	return fmt.Sprintf("part %s: quantity must be positive, got %d", e.PartID, e.Quantity)
}

// KerfTooLargeError reports a kerf that is negative or not strictly smaller
// than the smallest part dimension.
type KerfTooLargeError struct {
	KerfMM      float64
	MinPartDim  float64
	LimitPartID string
}

func (e KerfTooLargeError) Error() string {
	return fmt.Sprintf("kerf %gmm must be >= 0 and smaller than the smallest part dimension %gmm (part %s)",
		e.KerfMM, e.MinPartDim, e.LimitPartID)
}

// NoDefaultMaterialError reports a missing default material resolution.
type NoDefaultMaterialError struct {
	PartID      string
	Kind        string // "board" or "edging"
	ThicknessMM float64
}

func (e NoDefaultMaterialError) Error() string {
	if e.Kind == "edging" {
		return fmt.Sprintf("part %s: no default edging material for thickness %gmm", e.PartID, e.ThicknessMM)
	}
	return fmt.Sprintf("part %s: no board material assigned and no default primary board", e.PartID)
}

// PartExceedsSheetError reports a part that cannot fit its material's sheet in
// any allowed orientation.
type PartExceedsSheetError struct {
	PartID     string
	MaterialID string
}

func (e PartExceedsSheetError) Error() string {
	return fmt.Sprintf("part %s exceeds the sheet dimensions of material %s", e.PartID, e.MaterialID)
}

// NoBackerMaterialError reports lamination enabled without a resolvable
// backer board.
type NoBackerMaterialError struct{}

func (e NoBackerMaterialError) Error() string {
	return "lamination enabled but no backer material is specified or marked default"
}
