package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/millworks/cutlist/internal/model"
)

func testBoard() model.BoardMaterial {
	return model.BoardMaterial{
		ID: "b1", Name: "MFC White",
		SheetLengthMM: 2750, SheetWidthMM: 1830,
		Role: model.RolePrimary, IsDefault: true,
	}
}

func testPart(id string, length, width float64, qty int) model.Part {
	return model.Part{
		ID: id, Label: id, LengthMM: length, WidthMM: width,
		ThicknessMM: 18, Quantity: qty, MaterialID: "b1",
	}
}

// checkLayout asserts the structural invariants of a packing result: every
// instance placed exactly once, all placements inside the sheet, and no two
// placements overlapping.
func checkLayout(t *testing.T, sheets []model.SheetLayout, board model.BoardMaterial, wantPlacements int) {
	t.Helper()

	placed := 0
	for _, sheet := range sheets {
		require.NotEmpty(t, sheet.Placements, "sheet %d opened but empty", sheet.Index)
		for i, p := range sheet.Placements {
			placed++
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.LessOrEqual(t, p.X+p.LengthUsed, board.SheetLengthMM+packEps,
				"placement %s exceeds sheet length", p.PartID)
			assert.LessOrEqual(t, p.Y+p.WidthUsed, board.SheetWidthMM+packEps,
				"placement %s exceeds sheet width", p.PartID)

			for j := i + 1; j < len(sheet.Placements); j++ {
				q := sheet.Placements[j]
				overlap := p.X < q.X+q.LengthUsed-packEps && p.X+p.LengthUsed > q.X+packEps &&
					p.Y < q.Y+q.WidthUsed-packEps && p.Y+p.WidthUsed > q.Y+packEps
				assert.False(t, overlap, "placements %s and %s overlap on sheet %d", p.PartID, q.PartID, sheet.Index)
			}
		}
	}
	assert.Equal(t, wantPlacements, placed)
}

func TestExpandInstances_QuantityAndOrder(t *testing.T) {
	parts := []model.Part{
		testPart("small", 300, 200, 2),
		testPart("big", 1200, 800, 1),
		testPart("mid", 600, 400, 3),
	}

	insts := expandInstances(parts)

	require.Len(t, insts, 6)
	assert.Equal(t, "big", insts[0].part.ID)
	assert.Equal(t, "mid", insts[1].part.ID)
	assert.Equal(t, "mid", insts[3].part.ID)
	assert.Equal(t, "small", insts[4].part.ID)
	for _, inst := range insts {
		assert.Equal(t, 1, inst.part.Quantity)
	}
}

func TestExpandInstances_EqualAreaBreaksOnID(t *testing.T) {
	parts := []model.Part{
		testPart("zz", 400, 300, 1),
		testPart("aa", 600, 200, 1),
	}

	insts := expandInstances(parts)
	require.Len(t, insts, 2)
	assert.Equal(t, "aa", insts[0].part.ID)
	assert.Equal(t, "zz", insts[1].part.ID)
}

func TestOrientations_GrainLockAndSquare(t *testing.T) {
	free := instance{part: testPart("p", 600, 400, 1)}
	assert.Len(t, orientations(free), 2)

	locked := free
	locked.part.GrainLocked = true
	require.Len(t, orientations(locked), 1)
	assert.False(t, orientations(locked)[0].rotated)

	square := instance{part: testPart("sq", 500, 500, 1)}
	assert.Len(t, orientations(square), 1)

	preferred := free
	preferred.preferRotated = true
	assert.True(t, orientations(preferred)[0].rotated)
}

func TestPackMaterial_SinglePart(t *testing.T) {
	board := testBoard()
	insts := expandInstances([]model.Part{testPart("p1", 600, 400, 1)})

	sheets, err := packMaterial(insts, board, 3, false)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	checkLayout(t, sheets, board, 1)
	assert.Equal(t, 0.0, sheets[0].Placements[0].X)
}

func TestPackMaterial_ManyPartsInvariants(t *testing.T) {
	board := testBoard()
	parts := []model.Part{
		testPart("door", 700, 450, 6),
		testPart("side", 1900, 560, 4),
		testPart("shelf", 900, 350, 10),
		testPart("strip", 2400, 120, 5),
	}
	insts := expandInstances(parts)

	for _, reuse := range []bool{false, true} {
		sheets, err := packMaterial(insts, board, 3.2, reuse)
		require.NoError(t, err)
		checkLayout(t, sheets, board, 25)
	}
}

func TestPackMaterial_RotationPlacesOversizeFootprint(t *testing.T) {
	// 1700x300 strips fit a 1000-wide sheet only rotated once the length
	// axis is exhausted; rotation must be allowed and recorded.
	board := model.BoardMaterial{ID: "b1", SheetLengthMM: 2000, SheetWidthMM: 1800}
	insts := expandInstances([]model.Part{{
		ID: "strip", LengthMM: 1900, WidthMM: 300, ThicknessMM: 18, Quantity: 1, MaterialID: "b1",
	}})
	// Force the rotated orientation to be the only fit.
	board.SheetLengthMM = 500
	board.SheetWidthMM = 1950

	sheets, err := packMaterial(insts, board, 0, false)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Len(t, sheets[0].Placements, 1)
	p := sheets[0].Placements[0]
	assert.True(t, p.Rotated)
	assert.Equal(t, 300.0, p.LengthUsed)
	assert.Equal(t, 1900.0, p.WidthUsed)
}

func TestPackMaterial_GrainLockedNeverRotates(t *testing.T) {
	board := testBoard()
	part := testPart("panel", 1200, 600, 8)
	part.GrainLocked = true

	sheets, err := packMaterial(expandInstances([]model.Part{part}), board, 3, true)
	require.NoError(t, err)
	for _, sheet := range sheets {
		for _, p := range sheet.Placements {
			assert.False(t, p.Rotated)
			assert.Equal(t, 1200.0, p.LengthUsed)
			assert.Equal(t, 600.0, p.WidthUsed)
		}
	}
}

func TestPackMaterial_PartExceedsSheet(t *testing.T) {
	board := testBoard()
	insts := expandInstances([]model.Part{testPart("huge", 3000, 2000, 1)})

	_, err := packMaterial(insts, board, 3, false)
	var target model.PartExceedsSheetError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "huge", target.PartID)
	assert.Equal(t, "b1", target.MaterialID)
}

func TestPackMaterial_GrainLockedExceedsSheet(t *testing.T) {
	// Fits only rotated, but the grain lock forbids that.
	board := model.BoardMaterial{ID: "b1", SheetLengthMM: 500, SheetWidthMM: 1950}
	part := model.Part{ID: "strip", LengthMM: 1900, WidthMM: 300, ThicknessMM: 18, Quantity: 1, MaterialID: "b1", GrainLocked: true}

	_, err := packMaterial(expandInstances([]model.Part{part}), board, 0, false)
	var target model.PartExceedsSheetError
	assert.ErrorAs(t, err, &target)
}

func TestPackMaterial_OffcutReusesEarlierSheets(t *testing.T) {
	// The big parts land on their own sheets; the locked strip then only fits
	// the first sheet's leftover. Fast probes the newest sheet alone and must
	// open a third; offcut walks back and reuses the first.
	board := model.BoardMaterial{ID: "b1", SheetLengthMM: 1000, SheetWidthMM: 1000}
	mk := func(id string, l, w float64, locked bool) model.Part {
		return model.Part{ID: id, Label: id, LengthMM: l, WidthMM: w,
			ThicknessMM: 18, Quantity: 1, MaterialID: "b1", GrainLocked: locked}
	}
	parts := []model.Part{
		mk("big1", 900, 990, false),
		mk("big2", 950, 900, false),
		mk("strip", 60, 950, true),
	}
	insts := expandInstances(parts)

	fast, err := packMaterial(insts, board, 0, false)
	require.NoError(t, err)
	offcut, err := packMaterial(insts, board, 0, true)
	require.NoError(t, err)

	assert.Len(t, fast, 3)
	assert.Len(t, offcut, 2)
	checkLayout(t, fast, board, 3)
	checkLayout(t, offcut, board, 3)
}

func TestPackMaterial_Deterministic(t *testing.T) {
	board := testBoard()
	parts := []model.Part{
		testPart("a", 700, 450, 5),
		testPart("b", 1900, 560, 3),
		testPart("c", 900, 350, 7),
	}
	insts := expandInstances(parts)

	first, err := packMaterial(insts, board, 3.2, true)
	require.NoError(t, err)
	second, err := packMaterial(insts, board, 3.2, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPackMaterial_LargerKerfNeverHelps(t *testing.T) {
	board := testBoard()
	parts := []model.Part{testPart("p", 910, 600, 9)}
	insts := expandInstances(parts)

	thin, err := packMaterial(insts, board, 0, false)
	require.NoError(t, err)
	thick, err := packMaterial(insts, board, 10, false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(thick), len(thin))
}
