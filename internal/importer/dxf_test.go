package importer

import (
	"math"
	"path/filepath"
	"testing"
)

func TestChainSegs_ClosesRectangle(t *testing.T) {
	// Four loose lines forming a 100x50 rectangle, deliberately out of order.
	segs := []seg{
		{start: point{0, 0}, end: point{100, 0}},
		{start: point{100, 50}, end: point{0, 50}},
		{start: point{100, 0}, end: point{100, 50}},
		{start: point{0, 50}, end: point{0, 0}},
	}

	outlines := chainSegs(segs, 0.01)

	if len(outlines) != 1 {
		t.Fatalf("expected 1 closed outline, got %d", len(outlines))
	}
	if len(outlines[0]) < 4 {
		t.Errorf("expected at least 4 corner points, got %d", len(outlines[0]))
	}

	minP, maxP := boundingBox(outlines[0])
	if maxP.x-minP.x != 100 || maxP.y-minP.y != 50 {
		t.Errorf("unexpected bounding box: %v to %v", minP, maxP)
	}
}

func TestChainSegs_ReversedSegmentsConnect(t *testing.T) {
	// The second segment runs backwards; chaining must flip it.
	segs := []seg{
		{start: point{0, 0}, end: point{10, 0}},
		{start: point{10, 10}, end: point{10, 0}},
		{start: point{10, 10}, end: point{0, 0}},
	}

	outlines := chainSegs(segs, 0.01)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
}

func TestChainSegs_LargestFirst(t *testing.T) {
	square := func(origin, size float64) []seg {
		return []seg{
			{start: point{origin, origin}, end: point{origin + size, origin}},
			{start: point{origin + size, origin}, end: point{origin + size, origin + size}},
			{start: point{origin + size, origin + size}, end: point{origin, origin + size}},
			{start: point{origin, origin + size}, end: point{origin, origin}},
		}
	}

	segs := append(square(0, 10), square(100, 200)...)
	outlines := chainSegs(segs, 0.01)

	if len(outlines) != 2 {
		t.Fatalf("expected 2 outlines, got %d", len(outlines))
	}
	if polygonArea(outlines[0]) < polygonArea(outlines[1]) {
		t.Error("outlines must be ordered largest first")
	}
}

func TestPolygonArea(t *testing.T) {
	rect := []point{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	if got := polygonArea(rect); got != 5000 {
		t.Errorf("polygonArea = %g, want 5000", got)
	}

	triangle := []point{{0, 0}, {10, 0}, {0, 10}}
	if got := polygonArea(triangle); got != 50 {
		t.Errorf("polygonArea = %g, want 50", got)
	}

	if got := polygonArea([]point{{0, 0}, {1, 1}}); got != 0 {
		t.Errorf("degenerate polygon area = %g, want 0", got)
	}
}

func TestCirclePoints_BoundingBox(t *testing.T) {
	// A 64-gon approximating a circle must stay inside the true circle and
	// come close to its bounding box.
	pts := make([]point, 0, 64)
	for i := 0; i < 64; i++ {
		angle := 2 * math.Pi * float64(i) / 64
		pts = append(pts, point{x: 50 + 25*math.Cos(angle), y: 50 + 25*math.Sin(angle)})
	}

	minP, maxP := boundingBox(pts)
	if maxP.x-minP.x > 50.001 || maxP.y-minP.y > 50.001 {
		t.Errorf("polygon exceeds circle bounds: %v to %v", minP, maxP)
	}
	if maxP.x-minP.x < 49.5 {
		t.Errorf("polygon far smaller than circle: %v to %v", minP, maxP)
	}
}

func TestBulgePoints_SemicircleBulge(t *testing.T) {
	// A bulge of 1 is a half circle: from (0,0) to (10,0) it must reach
	// 5mm off the chord at its apex.
	pts := bulgePoints(point{0, 0}, point{10, 0}, 1, 32)

	if len(pts) != 33 {
		t.Fatalf("expected 33 interpolated points, got %d", len(pts))
	}

	maxDist := 0.0
	for _, p := range pts {
		if d := math.Abs(p.y); d > maxDist {
			maxDist = d
		}
	}
	if math.Abs(maxDist-5) > 0.01 {
		t.Errorf("apex distance = %g, want 5", maxDist)
	}
}

func TestImportDXF_MissingFile(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
	if len(result.Parts) != 0 {
		t.Fatalf("expected no parts, got %d", len(result.Parts))
	}
}
