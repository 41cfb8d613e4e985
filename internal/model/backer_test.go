package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBackerBoard_ExplicitSelection(t *testing.T) {
	snap := NewSnapshot()
	snap.Boards = []BoardMaterial{
		{ID: "hdf", Name: "HDF 3", Role: RoleBacker, IsDefault: true},
		{ID: "ply", Name: "Ply 4", Role: RoleBacker},
	}
	snap.BackerMaterialID = "ply"

	b, err := ResolveBackerBoard(snap)
	require.NoError(t, err)
	assert.Equal(t, "ply", b.ID)
}

func TestResolveBackerBoard_FallsBackToDefault(t *testing.T) {
	snap := NewSnapshot()
	snap.Boards = []BoardMaterial{
		{ID: "mfc", Role: RolePrimary, IsDefault: true},
		{ID: "hdf", Role: RoleBacker, IsDefault: true},
	}

	b, err := ResolveBackerBoard(snap)
	require.NoError(t, err)
	assert.Equal(t, "hdf", b.ID)
}

func TestResolveBackerBoard_Missing(t *testing.T) {
	snap := NewSnapshot()
	snap.Boards = []BoardMaterial{{ID: "mfc", Role: RolePrimary, IsDefault: true}}

	_, err := ResolveBackerBoard(snap)
	var target NoBackerMaterialError
	assert.ErrorAs(t, err, &target)

	// An explicit id that resolves to nothing is the same failure.
	snap.BackerMaterialID = "gone"
	_, err = ResolveBackerBoard(snap)
	assert.ErrorAs(t, err, &target)
}

func TestMatchBacker_SheetsFromAreaRatio(t *testing.T) {
	backer := BoardMaterial{ID: "hdf", Name: "HDF 3", SheetLengthMM: 2440, SheetWidthMM: 1220}
	sheetArea := backer.SheetArea()

	primary := []MaterialLayout{
		{Sheets: []SheetLayout{{Placements: []Placement{
			{LengthUsed: 2000, WidthUsed: 1000},
			{LengthUsed: 1000, WidthUsed: 500},
		}}}},
		{Sheets: []SheetLayout{{Placements: []Placement{
			{LengthUsed: 1200, WidthUsed: 600},
		}}}},
	}

	res := MatchBacker(primary, backer)

	wantArea := 2000.0*1000 + 1000*500 + 1200*600
	assert.Equal(t, wantArea, res.PanelAreaMM2)
	assert.Equal(t, 2, res.SheetsUsed) // 3.22m2 over 2.98m2 sheets
	assert.Greater(t, float64(res.SheetsUsed)*sheetArea, wantArea)
	assert.Equal(t, "HDF 3", res.MaterialName)
}

func TestMatchBacker_GrowsWithPanelArea(t *testing.T) {
	backer := BoardMaterial{ID: "hdf", SheetLengthMM: 1000, SheetWidthMM: 1000}

	layoutWithArea := func(area float64) []MaterialLayout {
		return []MaterialLayout{{Sheets: []SheetLayout{{Placements: []Placement{
			{LengthUsed: area / 100, WidthUsed: 100},
		}}}}}
	}

	assert.Equal(t, 1, MatchBacker(layoutWithArea(999_999), backer).SheetsUsed)
	assert.Equal(t, 1, MatchBacker(layoutWithArea(1_000_000), backer).SheetsUsed)
	assert.Equal(t, 2, MatchBacker(layoutWithArea(1_000_001), backer).SheetsUsed)
	assert.Equal(t, 5, MatchBacker(layoutWithArea(4_200_000), backer).SheetsUsed)
}

func TestMatchBacker_EmptyPrimary(t *testing.T) {
	backer := BoardMaterial{ID: "hdf", SheetLengthMM: 1000, SheetWidthMM: 1000}
	res := MatchBacker(nil, backer)
	assert.Zero(t, res.SheetsUsed)
	assert.Zero(t, res.PanelAreaMM2)
}
