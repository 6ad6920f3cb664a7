package parser

import (
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
	"github.com/xuri/excelize/v2"
)

// Built-in defined names that carry sheet ranges.
const (
	PrintAreaName  = "_xlnm.Print_Area"
	AutoFilterName = "_xlnm._FilterDatabase"
)

// loadDefinedRanges reads the auto-filter and print areas of a sheet from
// the workbook's built-in defined names.
func loadDefinedRanges(f *excelize.File, sheet string) (*models.Area, []models.Area) {
	var (
		autoFilter *models.Area
		printAreas []models.Area
	)
	for _, dn := range f.GetDefinedName() {
		switch {
		case strings.EqualFold(dn.Name, PrintAreaName):
			if name, areas := ParseDefinedReference(dn.RefersTo); strings.EqualFold(name, sheet) {
				printAreas = append(printAreas, areas...)
			}
		case strings.EqualFold(dn.Name, AutoFilterName):
			if name, areas := ParseDefinedReference(dn.RefersTo); strings.EqualFold(name, sheet) && len(areas) > 0 {
				a := areas[0]
				autoFilter = &a
			}
		}
	}
	return autoFilter, printAreas
}

// ParseDefinedReference parses a defined name reference.
// Format: 'SheetName'!$A$1:$D$10,'SheetName'!$F$1:$F$5 or SheetName!$A$1:$D$10
func ParseDefinedReference(refersTo string) (string, []models.Area) {
	var (
		sheetName string
		areas     []models.Area
	)
	for _, part := range strings.Split(strings.TrimPrefix(refersTo, "="), ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := unquoteSheet(part[:idx])
		if sheetName == "" {
			sheetName = sheet
		}
		if area, err := ref.ParseRange(part[idx+1:]); err == nil {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// FormatDefinedReference is the inverse of ParseDefinedReference.
func FormatDefinedReference(sheet string, areas []models.Area) string {
	quoted := QuoteSheet(sheet)
	parts := make([]string, 0, len(areas))
	for _, a := range areas {
		start, _ := excelize.CoordinatesToCellName(a.C1, a.R1, true)
		end, _ := excelize.CoordinatesToCellName(a.C2, a.R2, true)
		parts = append(parts, quoted+"!"+start+":"+end)
	}
	return strings.Join(parts, ",")
}

// QuoteSheet quotes a sheet name for use in a reference.
func QuoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
