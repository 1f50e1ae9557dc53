package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/sectionsheets/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Number,Name,MinX,MinY,MinZ,MaxX,MaxY,MaxZ\n101,Office,0,0,0,4000,2000,3000\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Number;Name;MinX;MinY;MinZ;MaxX;MaxY;MaxZ\n101;Office;0;0;0;4000,5;2000;3000\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Number\tName\tMinX\n101\tOffice\t0\n102\tHall\t5\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Number|Name|MinX\n101|Office|0\n102|Hall|5\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"ID", "Number", "Name", "Phase", "Area", "min_x", "min_y", "min_z", "max_x", "max_y", "max_z"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{ID: 0, Number: 1, Name: 2, Phase: 3, Area: 4, MinX: 5, MinY: 6, MinZ: 7, MaxX: 8, MaxY: 9, MaxZ: 10}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Room Name", "XMIN", "YMin", "zmin", "XMax", "ymax", "ZMAX", "Room No"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 0 {
		t.Errorf("expected Name at 0, got %d", mapping.Name)
	}
	if mapping.MinX != 1 || mapping.MaxZ != 6 {
		t.Errorf("unexpected bounds mapping %+v", mapping)
	}
	if mapping.Number != 7 {
		t.Errorf("expected Number at 7, got %d", mapping.Number)
	}
	if mapping.ID != -1 || mapping.Area != -1 || mapping.Phase != -1 {
		t.Errorf("expected absent optional columns, got %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"101", "Office", "0", "0", "0", "4000", "2000", "3000"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	csv := "id,number,name,phase,area,min_x,min_y,min_z,max_x,max_y,max_z\n" +
		"r-1,101,Office,New Construction,7.5,0,0,0,4000,2000,3000\n" +
		"r-2,102,Meeting Room,Existing,,4000,0,0,7000,5000,3000\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}

	office := result.Rooms[0]
	if office.ID != "r-1" || office.Number != "101" || office.Name != "Office" {
		t.Errorf("unexpected identity %+v", office)
	}
	if office.Phase != "New Construction" {
		t.Errorf("expected phase 'New Construction', got %q", office.Phase)
	}
	if office.Area != 7.5 || !office.AreaSet {
		t.Errorf("expected reported area 7.5, got %f (set %v)", office.Area, office.AreaSet)
	}
	if office.BBox == nil || office.BBox.Max.X != 4000 || office.BBox.Max.Z != 3000 {
		t.Errorf("unexpected bbox %+v", office.BBox)
	}

	// Area falls back to the footprint when the cell is empty
	if got := result.Rooms[1].Area; got != 3000*5000 {
		t.Errorf("expected footprint area, got %f", got)
	}
	if result.Rooms[1].AreaSet {
		t.Error("footprint area must not count as reported")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	csv := "101,Office,0,0,0,4000,2000,3000\n102,Hall,4000,0,0,9000,1500,3000\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d (errors: %v)", len(result.Rooms), result.Errors)
	}
	if result.Rooms[1].Name != "Hall" || result.Rooms[1].Number != "102" {
		t.Errorf("unexpected room %+v", result.Rooms[1])
	}
	if len(result.Rooms[0].ID) != 8 {
		t.Errorf("expected generated 8-char id, got %q", result.Rooms[0].ID)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	csv := "Nummer,Bezeichnung,A,B,C,D,E,F\n101,Office,0,0,0,4000,2000,3000\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d (errors: %v)", len(result.Rooms), result.Errors)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	csv := "101;Office;0;0;0;4000;2000;3000\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ';')

	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d (errors: %v)", len(result.Rooms), result.Errors)
	}
}

func TestImportCSVFromReader_SwappedCorners(t *testing.T) {
	csv := "101,Office,4000,2000,3000,0,0,0\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(result.Rooms))
	}
	bb := result.Rooms[0].BBox
	if bb.Min.X != 0 || bb.Max.X != 4000 {
		t.Errorf("expected normalized bbox, got %+v", bb)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about swapped corners")
	}
}

func TestImportCSVFromReader_InvalidCoordinate(t *testing.T) {
	csv := "101,Office,0,0,abc,4000,2000,3000\n102,Hall,0,0,0,1,1,1\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "min_z") {
		t.Errorf("expected error to name min_z, got %q", result.Errors[0])
	}
	if len(result.Rooms) != 1 {
		t.Errorf("expected the valid row to be kept, got %d rooms", len(result.Rooms))
	}
}

func TestImportCSVFromReader_MissingCoordinate(t *testing.T) {
	csv := "101,Office,0,0,0,4000,2000\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Missing max_z") {
		t.Errorf("expected missing max_z error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidAreaWarns(t *testing.T) {
	csv := "name,area,min_x,min_y,min_z,max_x,max_y,max_z\nOffice,n/a,0,0,0,2,3,1\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(result.Rooms))
	}
	if result.Rooms[0].Area != 6 {
		t.Errorf("expected footprint area 6, got %f", result.Rooms[0].Area)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Invalid area") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected invalid area warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_NonFiniteCoordinate(t *testing.T) {
	csv := "1,A,0,0,0,NaN,2,3,abc\n2,B,0,0,-Inf,1,1,1\n3,C,0,0,0,1,1,1\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 1: Invalid max_x 'NaN'") {
		t.Errorf("unexpected error %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "Line 2: Invalid min_z '-Inf'") {
		t.Errorf("unexpected error %q", result.Errors[1])
	}
	if len(result.Rooms) != 1 || result.Rooms[0].Name != "C" {
		t.Errorf("expected only room C, got %+v", result.Rooms)
	}
}

func TestImportCSVFromReader_AllRowWarningsKept(t *testing.T) {
	csv := "name,area,min_x,min_y,min_z,max_x,max_y,max_z\nOffice,Inf,2,3,1,0,0,0\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d (errors: %v)", len(result.Rooms), result.Errors)
	}
	want := []string{
		"Detected header row, skipping",
		"Line 2: Invalid area 'Inf', using footprint",
		"Line 2: Bounding box corners were swapped",
	}
	if strings.Join(result.Warnings, "|") != strings.Join(want, "|") {
		t.Errorf("expected warnings %q, got %q", want, result.Warnings)
	}
	if result.Rooms[0].AreaSet || result.Rooms[0].Area != 6 {
		t.Errorf("expected unreported footprint area 6, got %f", result.Rooms[0].Area)
	}
}

func TestImportCSVFromReader_ZeroFootprintKept(t *testing.T) {
	csv := "103,Store,0,0,0,0,0,2700\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(result.Rooms))
	}
	room := result.Rooms[0]
	if room.Area != 0 || room.AreaSet {
		t.Errorf("expected zero unreported area, got %f (set %v)", room.Area, room.AreaSet)
	}
	if len(model.FilterRooms(result.Rooms, "")) != 1 {
		t.Error("room without a reported area must survive filtering")
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	csv := "name,min_x,min_y,max_x,max_y\nOffice,0,0,1,1\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "min_z, max_z") {
		t.Errorf("expected missing z columns, got %q", result.Errors[0])
	}
	if len(result.Rooms) != 0 {
		t.Errorf("expected no rooms, got %d", len(result.Rooms))
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	csv := "101,Office,0,0,0,4000,2000,3000\n,,,,,,,\n102,Hall,0,0,0,1,1,1\n"

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Rooms) != 2 {
		t.Errorf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── CSV File Tests ────────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.csv")
	content := "Number;Name;MinX;MinY;MinZ;MaxX;MaxY;MaxZ\n101;Office;0;0;0;4000;2000;3000\n102;Hall;0;0;0;1;1;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Number", "Phase", "min_x", "min_y", "min_z", "max_x", "max_y", "max_z"},
		{"Office", "101", "Existing", 0, 0, 0, 4000, 2000, 3000},
		{"Hall", "102", "Existing", 4000, 0, 0, 9000, 1500, 3000},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if result.Rooms[0].Name != "Office" {
		t.Errorf("expected 'Office', got '%s'", result.Rooms[0].Name)
	}
	if result.Rooms[1].BBox.Min.X != 4000 {
		t.Errorf("expected min x 4000, got %f", result.Rooms[1].BBox.Min.X)
	}
	if result.Rooms[1].Area != 5000*1500 {
		t.Errorf("expected footprint area, got %f", result.Rooms[1].Area)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"101", "Office", 0, 0, 0, 4000, 2000, 3000},
	})

	result := ImportExcel(path)

	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d (errors: %v)", len(result.Rooms), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/rooms.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "min_x", "min_y", "min_z", "max_x", "max_y", "max_z"},
		{"Office", "wide", 0, 0, 4000, 2000, 3000},
	})

	result := ImportExcel(path)

	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("expected Row 2 prefix, got %q", result.Errors[0])
	}
}
