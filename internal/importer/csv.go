// Package importer reads part lists from CSV, XLSX, and DXF files into
// snapshot parts. CSV import detects the delimiter automatically; CSV and
// XLSX map columns by case-insensitive header aliases; DXF import reduces
// each closed shape to its rectangular bounding box.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/millworks/cutlist/internal/model"
)

// ImportResult holds the parts and diagnostics of an import operation.
type ImportResult struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Grain     int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"label":     {"label", "name", "part", "part name", "description", "desc", "piece", "item"},
	"length":    {"length", "len", "l", "x"},
	"width":     {"width", "w", "y"},
	"thickness": {"thickness", "thick", "t", "board", "mm"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"grain":     {"grain", "grain direction", "direction", "grain dir", "grain locked"},
}

// DetectCSVDelimiter determines the most likely delimiter among comma,
// semicolon, tab, and pipe: the one producing the most consistent multi-column
// row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns matches a header row against the known aliases. When no
// header is recognized it falls back to the positional order
// Label, Length, Width, Thickness, Quantity, Grain and reports false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Length: -1, Width: -1, Thickness: -1, Quantity: -1, Grain: -1}

	set := func(dst *int, i int) {
		if *dst == -1 {
			*dst = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					set(&mapping.Label, i)
				case "length":
					set(&mapping.Length, i)
				case "width":
					set(&mapping.Width, i)
				case "thickness":
					set(&mapping.Thickness, i)
				case "quantity":
					set(&mapping.Quantity, i)
				case "grain":
					set(&mapping.Grain, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Length: 1, Width: 2, Thickness: 3, Quantity: 4, Grain: 5}, false
	}
	return mapping, true
}

// parseGrainLocked recognizes grain-lock markers. Unrecognized values report
// false in the second return.
func parseGrainLocked(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "locked", "yes", "y", "true", "1":
		return true, true
	case "", "none", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow extracts a Part from a row using the given column mapping.
// Returns the part, an error message, and a warning message (either may be
// empty).
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.Part, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Part %d", partCount+1)
	}

	parseDim := func(idx int, name string) (float64, string) {
		s := getCell(row, idx)
		if s == "" {
			return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
		}
		return v, ""
	}

	length, msg := parseDim(mapping.Length, "length")
	if msg != "" {
		return model.Part{}, msg, ""
	}
	width, msg := parseDim(mapping.Width, "width")
	if msg != "" {
		return model.Part{}, msg, ""
	}

	thickness := 18.0
	var warning string
	if s := getCell(row, mapping.Thickness); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid thickness '%s', defaulting to 18mm", rowLabel, s)
		} else {
			thickness = v
		}
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if length <= 0 || width <= 0 || qty <= 0 {
		return model.Part{}, fmt.Sprintf("%s: Length, width, and quantity must be positive", rowLabel), ""
	}

	part := model.NewPart(label, length, width, thickness, qty)

	if s := getCell(row, mapping.Grain); s != "" {
		locked, ok := parseGrainLocked(s)
		if ok {
			part.GrainLocked = locked
		} else if warning == "" {
			warning = fmt.Sprintf("%s: Unknown grain value '%s', treating as unlocked", rowLabel, s)
		}
	}

	return part, "", warning
}

// ImportCSV imports parts from a CSV file with automatic delimiter detection
// and header mapping.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	return ImportCSVData(data)
}

// ImportCSVData imports parts from in-memory CSV content.
func ImportCSVData(data []byte) ImportResult {
	result := ImportResult{}

	delim := DetectCSVDelimiter(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importRows(records)
}

// importRows is the shared row-parsing path for CSV and XLSX data: detect
// the column mapping from the first row, then parse each non-empty row into
// a part, collecting per-row diagnostics.
func importRows(rows [][]string) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("Row %d", i+1)
		part, errMsg, warnMsg := parseRow(row, mapping, rowLabel, len(result.Parts))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warnMsg != "" {
			result.Warnings = append(result.Warnings, warnMsg)
		}
		result.Parts = append(result.Parts, part)
	}

	return result
}
