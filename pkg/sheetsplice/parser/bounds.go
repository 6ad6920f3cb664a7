package parser

import (
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
	"github.com/xuri/excelize/v2"
)

// maxScanCells caps how many positions are scanned for styles and formulas.
// Sheets whose recorded dimension is larger are scanned over their data only.
const maxScanCells = 1 << 22

// bounds is the scanned part of a sheet together with its raw values.
type bounds struct {
	models.Area
	// rows holds raw cell values, 0-based.
	rows [][]string
}

// sheetBounds returns the area to scan: the recorded sheet dimension
// united with the bounding box of non-empty values.
func sheetBounds(f *excelize.File, sheet string) (bounds, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return bounds{}, err
	}
	b := bounds{rows: rows}
	maxRow, maxCol := findDataBounds(rows)
	b.R1, b.C1 = 1, 1
	b.R2, b.C2 = maxRow, maxCol

	if dim, err := f.GetSheetDimension(sheet); err == nil && dim != "" {
		if a, err := ref.ParseRange(dim); err == nil && a.R2*a.C2 <= maxScanCells {
			b.R2 = max(b.R2, a.R2)
			b.C2 = max(b.C2, a.C2)
		}
	}
	return b, nil
}

// findDataBounds finds the last row and column holding a value (1-based,
// 0 when the sheet is empty).
func findDataBounds(rows [][]string) (maxRow, maxCol int) {
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			maxRow = max(maxRow, rowIdx+1)
			maxCol = max(maxCol, colIdx+1)
		}
	}
	return
}

// raw returns the raw value at a 1-based position.
func (b bounds) raw(row, col int) string {
	if row-1 >= len(b.rows) || col-1 >= len(b.rows[row-1]) {
		return ""
	}
	return b.rows[row-1][col-1]
}
