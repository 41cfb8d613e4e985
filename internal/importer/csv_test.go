package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectCSVDelimiter(t *testing.T) {
	cases := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "label,length,width\nA,600,400\nB,500,300\n", ','},
		{"semicolon", "label;length;width\nA;600;400\nB;500;300\n", ';'},
		{"tab", "label\tlength\twidth\nA\t600\t400\n", '\t'},
		{"pipe", "label|length|width\nA|600|400\n", '|'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tc.data)); got != tc.want {
				t.Errorf("DetectCSVDelimiter = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDetectColumns_HeaderAliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Qty", "Part Name", "L", "W", "Thick", "Grain"})

	if !hasHeader {
		t.Fatal("expected header row to be recognized")
	}
	if mapping.Quantity != 0 || mapping.Label != 1 || mapping.Length != 2 ||
		mapping.Width != 3 || mapping.Thickness != 4 || mapping.Grain != 5 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_PositionalFallback(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Shelf", "600", "400", "18", "2"})

	if hasHeader {
		t.Fatal("data row must not be treated as a header")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 ||
		mapping.Thickness != 3 || mapping.Quantity != 4 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

func TestImportCSVData_WithHeader(t *testing.T) {
	data := "Label,Length,Width,Thickness,Qty,Grain\n" +
		"Side,720,560,18,2,locked\n" +
		"Shelf,564,500,18,4,no\n"

	result := ImportCSVData([]byte(data))

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}

	side := result.Parts[0]
	if side.Label != "Side" || side.LengthMM != 720 || side.WidthMM != 560 ||
		side.ThicknessMM != 18 || side.Quantity != 2 {
		t.Errorf("unexpected part: %+v", side)
	}
	if !side.GrainLocked {
		t.Error("expected grain-locked part")
	}
	if result.Parts[1].GrainLocked {
		t.Error("second part must not be grain locked")
	}
	if side.ID == "" || side.ID == result.Parts[1].ID {
		t.Error("parts must get distinct generated ids")
	}
}

func TestImportCSVData_SemicolonNoHeader(t *testing.T) {
	data := "Door;700;450;18;2\nPlinth;2000;120;18;1\n"

	result := ImportCSVData([]byte(data))

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	if result.Parts[1].LengthMM != 2000 || result.Parts[1].Quantity != 1 {
		t.Errorf("unexpected part: %+v", result.Parts[1])
	}
}

func TestImportCSVData_RowDiagnostics(t *testing.T) {
	data := "Label,Length,Width,Qty\n" +
		"Good,600,400,2\n" +
		"NoLength,,400,1\n" +
		"BadWidth,600,abc,1\n" +
		"Negative,-5,400,1\n" +
		"BadQty,600,400,zero\n"

	result := ImportCSVData([]byte(data))

	if len(result.Parts) != 1 {
		t.Fatalf("expected only the valid row to import, got %d parts", len(result.Parts))
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected 4 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
	// Thickness was absent; the default applies without a warning.
	if result.Parts[0].ThicknessMM != 18 {
		t.Errorf("expected default thickness 18, got %g", result.Parts[0].ThicknessMM)
	}
}

func TestImportCSVData_Warnings(t *testing.T) {
	data := "Label,Length,Width,Thickness,Qty,Grain\n" +
		"Odd,600,400,wood,2,diagonal\n"

	result := ImportCSVData([]byte(data))

	if len(result.Parts) != 1 {
		t.Fatalf("expected part despite warnings, got %d", len(result.Parts))
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warnings for bad thickness and grain values")
	}
	if result.Parts[0].ThicknessMM != 18 {
		t.Errorf("invalid thickness should fall back to 18, got %g", result.Parts[0].ThicknessMM)
	}
	if result.Parts[0].GrainLocked {
		t.Error("unknown grain value must stay unlocked")
	}
}

func TestImportCSVData_SkipsEmptyRows(t *testing.T) {
	data := "Label,Length,Width,Qty\nA,600,400,1\n,,,\n\nB,500,300,1\n"

	result := ImportCSVData([]byte(data))
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d (errors: %v)", len(result.Parts), result.Errors)
	}
}

func TestImportCSVData_EmptyFile(t *testing.T) {
	result := ImportCSVData(nil)
	if len(result.Errors) == 0 {
		t.Fatal("expected error for empty input")
	}
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	data := "Label,Length,Width,Qty\nSide,720,560,2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d (errors: %v)", len(result.Parts), result.Errors)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
}

func TestParseGrainLocked(t *testing.T) {
	for _, s := range []string{"locked", "Yes", "TRUE", "1", "y"} {
		locked, ok := parseGrainLocked(s)
		if !ok || !locked {
			t.Errorf("parseGrainLocked(%q) = %v,%v want locked", s, locked, ok)
		}
	}
	for _, s := range []string{"", "none", "No", "0", "-"} {
		locked, ok := parseGrainLocked(s)
		if !ok || locked {
			t.Errorf("parseGrainLocked(%q) = %v,%v want unlocked", s, locked, ok)
		}
	}
	if _, ok := parseGrainLocked("diagonal"); ok {
		t.Error("unknown grain marker must not be recognized")
	}
}
