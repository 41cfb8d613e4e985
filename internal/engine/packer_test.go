package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetPacker_InsertAtOrigin(t *testing.T) {
	sp := newSheetPacker(1000, 600, 0)

	ok, x, y := sp.insert(400, 300)
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestSheetPacker_RejectsOversize(t *testing.T) {
	sp := newSheetPacker(1000, 600, 0)

	assert.Equal(t, -1.0, sp.bestFit(1001, 100))
	assert.Equal(t, -1.0, sp.bestFit(100, 601))

	ok, _, _ := sp.insert(1001, 100)
	assert.False(t, ok)
}

func TestSheetPacker_KerfConsumesSpace(t *testing.T) {
	// Two 500-wide parts fit a 1000 sheet only without kerf: the cut between
	// them eats into the second slot.
	sp := newSheetPacker(1000, 600, 3)

	ok, _, _ := sp.insert(500, 594)
	require.True(t, ok)
	ok, _, _ = sp.insert(500, 594)
	assert.False(t, ok)

	sp = newSheetPacker(1000, 600, 0)
	ok, _, _ = sp.insert(500, 600)
	require.True(t, ok)
	ok, _, _ = sp.insert(500, 600)
	assert.True(t, ok)
}

func TestSheetPacker_FillsExactly(t *testing.T) {
	// Four quadrants tile the sheet completely with zero kerf.
	sp := newSheetPacker(1000, 600, 0)

	positions := make(map[[2]float64]bool)
	for i := 0; i < 4; i++ {
		ok, x, y := sp.insert(500, 300)
		require.True(t, ok, "placement %d", i)
		positions[[2]float64{x, y}] = true
	}
	assert.Len(t, positions, 4)

	ok, _, _ := sp.insert(1, 1)
	assert.False(t, ok, "sheet should be exhausted")
}

func TestSheetPacker_BestFitPrefersTightestRect(t *testing.T) {
	sp := newSheetPacker(1000, 600, 0)

	// Leaves a 1000x200 strip above and a 600x400 block to the right.
	ok, _, _ := sp.insert(400, 400)
	require.True(t, ok)

	// A 550x150 part fits both leftovers; the tighter one is the top strip.
	ok, x, y := sp.insert(550, 150)
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 400.0, y)
}

func TestSheetPacker_BestFitDoesNotMutate(t *testing.T) {
	sp := newSheetPacker(1000, 600, 0)
	before := len(sp.freeRects)

	require.Positive(t, sp.bestFit(400, 300))
	assert.Equal(t, before, len(sp.freeRects))
}

func TestPruneContained_DropsNestedAndDuplicateRects(t *testing.T) {
	rects := []rect{
		{0, 0, 100, 100},
		{10, 10, 20, 20},  // inside the first
		{0, 0, 100, 100},  // duplicate of the first
		{200, 0, 50, 300}, // disjoint
	}

	kept := pruneContained(rects)

	require.Len(t, kept, 2)
	assert.Equal(t, rect{0, 0, 100, 100}, kept[0])
	assert.Equal(t, rect{200, 0, 50, 300}, kept[1])
}

func TestRectsOverlap_TouchIsNotOverlap(t *testing.T) {
	a := rect{0, 0, 100, 100}
	assert.False(t, rectsOverlap(a, rect{100, 0, 50, 100}))
	assert.False(t, rectsOverlap(a, rect{0, 100, 100, 50}))
	assert.True(t, rectsOverlap(a, rect{99, 99, 10, 10}))
}
