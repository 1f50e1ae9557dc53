// Package importer reads room lists from CSV, Excel and DXF files. Tabular
// input supports automatic delimiter detection, flexible column mapping and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/sectionsheets/internal/geom"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// ImportResult holds the rooms read from a file along with per-row problems.
// Rows listed in Errors were skipped; Warnings did not stop a row.
type ImportResult struct {
	Rooms    []model.Room
	Errors   []string
	Warnings []string
}

func (r *ImportResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ImportResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// failed returns a result carrying a single error.
func failed(format string, args ...any) ImportResult {
	var r ImportResult
	r.errorf(format, args...)
	return r
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 means the column is absent.
type ColumnMapping struct {
	ID     int
	Number int
	Name   int
	Phase  int
	Area   int
	MinX   int
	MinY   int
	MinZ   int
	MaxX   int
	MaxY   int
	MaxZ   int
}

var boundNames = [6]string{"min_x", "min_y", "min_z", "max_x", "max_y", "max_z"}

func (m ColumnMapping) bounds() [6]int {
	return [6]int{m.MinX, m.MinY, m.MinZ, m.MaxX, m.MaxY, m.MaxZ}
}

// roles returns a pointer to each field keyed by canonical column name.
func (m *ColumnMapping) roles() map[string]*int {
	return map[string]*int{
		"id": &m.ID, "number": &m.Number, "name": &m.Name,
		"phase": &m.Phase, "area": &m.Area,
		"min_x": &m.MinX, "min_y": &m.MinY, "min_z": &m.MinZ,
		"max_x": &m.MaxX, "max_y": &m.MaxY, "max_z": &m.MaxZ,
	}
}

// missingBounds names the bounding box columns the mapping lacks.
func (m ColumnMapping) missingBounds() []string {
	var missing []string
	for i, idx := range m.bounds() {
		if idx < 0 {
			missing = append(missing, boundNames[i])
		}
	}
	return missing
}

// headerAliases maps each canonical column name to its accepted spellings (lowercase).
var headerAliases = map[string][]string{
	"id":     {"id", "element id", "elementid", "guid", "uid"},
	"number": {"number", "no", "nr", "room number", "room no", "num"},
	"name":   {"name", "room", "room name", "label", "description"},
	"phase":  {"phase", "phase created", "layer"},
	"area":   {"area", "room area", "floor area"},
	"min_x":  {"min_x", "minx", "xmin", "x_min", "min x", "x1"},
	"min_y":  {"min_y", "miny", "ymin", "y_min", "min y", "y1"},
	"min_z":  {"min_z", "minz", "zmin", "z_min", "min z", "z1"},
	"max_x":  {"max_x", "maxx", "xmax", "x_max", "max x", "x2"},
	"max_y":  {"max_y", "maxy", "ymax", "y_max", "max y", "y2"},
	"max_z":  {"max_z", "maxz", "zmax", "z_max", "max z", "z2"},
}

// aliasRole is headerAliases inverted: spelling to canonical name.
var aliasRole = func() map[string]string {
	m := make(map[string]string)
	for role, aliases := range headerAliases {
		for _, a := range aliases {
			m[a] = role
		}
	}
	return m
}()

// positionalMapping is used when the first row is not a header:
// number, name, min_x, min_y, min_z, max_x, max_y, max_z.
var positionalMapping = ColumnMapping{
	ID: -1, Number: 0, Name: 1, Phase: -1, Area: -1,
	MinX: 2, MinY: 3, MinZ: 4, MaxX: 5, MaxY: 6, MaxZ: 7,
}

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and
// pipe that splits the data into the most consistent multi-column rows.
// Comma wins when nothing scores.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		if score := delimiterScore(data, delim); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// delimiterScore weights the number of rows matching the first row's column
// count heavily, then the column count itself. Single-column splits score 0.
func delimiterScore(data []byte, delim rune) int {
	records, err := readCSV(bytes.NewReader(data), delim)
	if err != nil || len(records) == 0 || len(records[0]) < 2 {
		return 0
	}
	width := len(records[0])
	consistent := 0
	for _, row := range records {
		if len(row) == width {
			consistent++
		}
	}
	return consistent*10 + width
}

// DetectColumns maps a header row to column roles by case-insensitive alias
// match; the first column matching a role wins. When no cell matches any
// alias the row is data and the positional mapping is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ID: -1, Number: -1, Name: -1, Phase: -1, Area: -1,
		MinX: -1, MinY: -1, MinZ: -1, MaxX: -1, MaxY: -1, MaxZ: -1,
	}
	roles := mapping.roles()

	found := false
	for i, cell := range row {
		role, ok := aliasRole[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		found = true
		if idx := roles[role]; *idx == -1 {
			*idx = i
		}
	}

	if !found {
		return positionalMapping, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow turns one data row into a Room. A non-empty errMsg means the row
// is rejected; warnings are informational.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (room model.Room, errMsg string, warnings []string) {
	var c [6]float64
	for i, idx := range mapping.bounds() {
		s := getCell(row, idx)
		if s == "" {
			return model.Room{}, fmt.Sprintf("%s: Missing %s value", rowLabel, boundNames[i]), nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Room{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, boundNames[i], s), nil
		}
		c[i] = v
	}

	lo, hi := geom.V(c[0], c[1], c[2]), geom.V(c[3], c[4], c[5])
	bbox := geom.NewBoundingBox(lo, hi)
	room = model.NewRoom(getCell(row, mapping.Number), getCell(row, mapping.Name), &bbox)
	if id := getCell(row, mapping.ID); id != "" {
		room.ID = id
	}
	room.Phase = getCell(row, mapping.Phase)

	if s := getCell(row, mapping.Area); s != "" {
		area, err := strconv.ParseFloat(s, 64)
		if err == nil && !math.IsNaN(area) && !math.IsInf(area, 0) {
			room.Area, room.AreaSet = area, true
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid area '%s', using footprint", rowLabel, s))
		}
	}
	if bbox.Min != lo {
		warnings = append(warnings, fmt.Sprintf("%s: Bounding box corners were swapped", rowLabel))
	}
	return room, "", warnings
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports rooms from a CSV file, detecting the delimiter and
// mapping columns by header names.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return failed("File is empty")
	}

	delimiter := DetectCSVDelimiter(data)
	var notes []string
	if delimiter != ',' {
		notes = append(notes, fmt.Sprintf("Detected %s delimiter", delimiterNames[delimiter]))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	return importFromRows(records, "Line", notes)
}

// ImportCSVFromReader imports rooms from r using a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// ImportExcel imports rooms from the first sheet of an .xlsx workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return failed("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return failed("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return failed("Cannot read Excel data: %v", err)
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is shared by the CSV and Excel readers. rowPrefix labels
// row numbers in messages ("Line 3", "Row 3").
func importFromRows(rows [][]string, rowPrefix string, notes []string) ImportResult {
	result := ImportResult{Warnings: notes}
	if len(rows) == 0 {
		result.errorf("File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	switch {
	case hasHeader:
		if missing := mapping.missingBounds(); len(missing) > 0 {
			result.errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
			return result
		}
		start = 1
	case len(rows[0]) > mapping.MinX:
		// An unrecognized header still has a non-numeric coordinate column
		if _, err := strconv.ParseFloat(getCell(rows[0], mapping.MinX), 64); err != nil {
			start = 1
		}
	}
	if start == 1 {
		result.warnf("Detected header row, skipping")
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		room, errMsg, warnings := parseRow(rows[i], mapping, fmt.Sprintf("%s %d", rowPrefix, i+1))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Rooms = append(result.Rooms, room)
	}
	return result
}
