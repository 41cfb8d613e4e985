// Package model defines the cutlist input snapshot, the derived summary, and
// the pure domain calculations (normalization, edge banding, billing, backer
// matching) that operate on them.
package model

import "github.com/google/uuid"

// BoardRole distinguishes primary boards from lamination backer boards.
type BoardRole string

const (
	RolePrimary BoardRole = "primary"
	RoleBacker  BoardRole = "backer"
)

// OptimizationPriority selects the packing strategy.
type OptimizationPriority string

const (
	PriorityFast   OptimizationPriority = "fast"   // Greedy single-pass, lowest latency
	PriorityOffcut OptimizationPriority = "offcut" // Greedy with leftover-rectangle reuse
	PriorityDeep   OptimizationPriority = "deep"   // Bounded search for a lower sheet count
)

// Edge identifies one of the four logical edges of a part. Logical edges are
// fixed to the part, not to its placed orientation: Top and Bottom always run
// along the part's length, Left and Right along its width.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "T"
	case EdgeBottom:
		return "B"
	case EdgeLeft:
		return "L"
	default:
		return "R"
	}
}

// Edges lists the four logical edges in fixed order.
var Edges = [4]Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}

// BandedEdge marks one logical edge for banding. An empty MaterialID resolves
// during normalization to the edging material marked default for the part's
// thickness.
type BandedEdge struct {
	Banded     bool   `json:"banded"`
	MaterialID string `json:"material_id,omitempty"`
}

// EdgeBanding holds the per-edge banding flags of a part.
type EdgeBanding struct {
	Top    BandedEdge `json:"top"`
	Bottom BandedEdge `json:"bottom"`
	Left   BandedEdge `json:"left"`
	Right  BandedEdge `json:"right"`
}

// Edge returns the banding state of a logical edge.
func (b EdgeBanding) Edge(e Edge) BandedEdge {
	switch e {
	case EdgeTop:
		return b.Top
	case EdgeBottom:
		return b.Bottom
	case EdgeLeft:
		return b.Left
	default:
		return b.Right
	}
}

// SetEdge replaces the banding state of a logical edge.
func (b *EdgeBanding) SetEdge(e Edge, be BandedEdge) {
	switch e {
	case EdgeTop:
		b.Top = be
	case EdgeBottom:
		b.Bottom = be
	case EdgeLeft:
		b.Left = be
	default:
		b.Right = be
	}
}

// HasAny reports whether any edge is banded.
func (b EdgeBanding) HasAny() bool {
	return b.Top.Banded || b.Bottom.Banded || b.Left.Banded || b.Right.Banded
}

// EdgeCount returns the number of banded edges.
func (b EdgeBanding) EdgeCount() int {
	n := 0
	for _, e := range Edges {
		if b.Edge(e).Banded {
			n++
		}
	}
	return n
}

// String renders the banded edges compactly, e.g. "T+B+L+R".
func (b EdgeBanding) String() string {
	s := ""
	for _, e := range Edges {
		if !b.Edge(e).Banded {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += e.String()
	}
	return s
}

// Part is one required rectangular piece to be cut.
type Part struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	LengthMM    float64     `json:"length_mm"`
	WidthMM     float64     `json:"width_mm"`
	ThicknessMM float64     `json:"thickness_mm"`
	Quantity    int         `json:"quantity"`
	MaterialID  string      `json:"material_id,omitempty"` // Empty resolves to the default primary board
	GrainLocked bool        `json:"grain_locked"`          // Forbids 90 degree rotation
	Banding     EdgeBanding `json:"banding"`
}

func NewPart(label string, length, width, thickness float64, qty int) Part {
	return Part{
		ID:          uuid.New().String()[:8],
		Label:       label,
		LengthMM:    length,
		WidthMM:     width,
		ThicknessMM: thickness,
		Quantity:    qty,
	}
}

// Area returns the part area in square mm.
func (p Part) Area() float64 {
	return p.LengthMM * p.WidthMM
}

// EdgeLengthMM returns the physical length of a logical edge. Top/Bottom run
// along the length, Left/Right along the width; placement rotation never
// changes this.
func (p Part) EdgeLengthMM(e Edge) float64 {
	if e == EdgeTop || e == EdgeBottom {
		return p.LengthMM
	}
	return p.WidthMM
}

// BoardMaterial is a standard sheet material parts are cut from.
type BoardMaterial struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SheetLengthMM float64   `json:"sheet_length_mm"`
	SheetWidthMM  float64   `json:"sheet_width_mm"`
	ThicknessMM   float64   `json:"thickness_mm"`
	CostPerSheet  float64   `json:"cost_per_sheet"`
	ComponentRef  string    `json:"component_ref,omitempty"` // External costing id, opaque here
	Role          BoardRole `json:"role"`
	IsDefault     bool      `json:"is_default"` // At most one default per role
}

func NewBoardMaterial(name string, length, width, thickness float64) BoardMaterial {
	return BoardMaterial{
		ID:            uuid.New().String()[:8],
		Name:          name,
		SheetLengthMM: length,
		SheetWidthMM:  width,
		ThicknessMM:   thickness,
		Role:          RolePrimary,
	}
}

// SheetArea returns the full sheet area in square mm.
func (b BoardMaterial) SheetArea() float64 {
	return b.SheetLengthMM * b.SheetWidthMM
}

// EdgingMaterial is an edge-banding tape material.
type EdgingMaterial struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	ThicknessMM           float64 `json:"thickness_mm"`
	CostPerMeter          float64 `json:"cost_per_meter"`
	ComponentRef          string  `json:"component_ref,omitempty"`
	IsDefaultForThickness bool    `json:"is_default_for_thickness"` // At most one per distinct thickness
}

func NewEdgingMaterial(name string, thickness float64) EdgingMaterial {
	return EdgingMaterial{
		ID:          uuid.New().String()[:8],
		Name:        name,
		ThicknessMM: thickness,
	}
}

// SheetBillingMode pins a sheet's billing regardless of the global policy.
type SheetBillingMode string

const (
	BillFull       SheetBillingMode = "full"       // Bill as exactly one sheet
	BillFractional SheetBillingMode = "fractional" // Bill at computed usage
)

// SnapshotVersion is the current input snapshot document version. Older or
// missing versions are treated as "no saved data", never migrated.
const SnapshotVersion = 2

// Snapshot is the complete optimizer input, owned by the caller and persisted
// verbatim as a versioned document.
type Snapshot struct {
	Version  int                  `json:"version"`
	Parts    []Part               `json:"parts"`
	Boards   []BoardMaterial      `json:"boards"`
	Edgings  []EdgingMaterial     `json:"edgings"`
	KerfMM   float64              `json:"kerf_mm"`
	Priority OptimizationPriority `json:"priority"`

	// Billing policy for primary sheets. SheetOverrides is keyed by material
	// id, then by sheet index within that material's layout.
	SheetOverrides  map[string]map[int]SheetBillingMode `json:"sheet_overrides,omitempty"`
	GlobalFullBoard bool                                `json:"global_full_board"`

	// Lamination.
	LaminationOn          bool                     `json:"lamination_on"`
	BackerMaterialID      string                   `json:"backer_material_id,omitempty"`
	BackerSheetOverrides  map[int]SheetBillingMode `json:"backer_sheet_overrides,omitempty"`
	BackerGlobalFullBoard bool                     `json:"backer_global_full_board"`
}

// NewSnapshot returns an empty snapshot at the current document version.
func NewSnapshot() Snapshot {
	return Snapshot{
		Version:  SnapshotVersion,
		Parts:    []Part{},
		Boards:   []BoardMaterial{},
		Edgings:  []EdgingMaterial{},
		KerfMM:   3.2,
		Priority: PriorityFast,
	}
}

// BoardByID returns the board material with the given id.
func (s Snapshot) BoardByID(id string) (BoardMaterial, bool) {
	for _, b := range s.Boards {
		if b.ID == id {
			return b, true
		}
	}
	return BoardMaterial{}, false
}

// EdgingByID returns the edging material with the given id.
func (s Snapshot) EdgingByID(id string) (EdgingMaterial, bool) {
	for _, e := range s.Edgings {
		if e.ID == id {
			return e, true
		}
	}
	return EdgingMaterial{}, false
}

// DefaultBoard returns the board marked default for the given role.
func (s Snapshot) DefaultBoard(role BoardRole) (BoardMaterial, bool) {
	for _, b := range s.Boards {
		if b.Role == role && b.IsDefault {
			return b, true
		}
	}
	return BoardMaterial{}, false
}

// DefaultEdgingForThickness returns the edging marked default for a thickness.
func (s Snapshot) DefaultEdgingForThickness(thickness float64) (EdgingMaterial, bool) {
	for _, e := range s.Edgings {
		if e.IsDefaultForThickness && e.ThicknessMM == thickness {
			return e, true
		}
	}
	return EdgingMaterial{}, false
}
