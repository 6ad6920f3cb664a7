package parser

import (
	"math"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

// Sheet defaults used when the sheet format properties do not set them.
const (
	DefaultColWidth  = 9.140625
	DefaultRowHeight = 15.0
)

// SheetDefaults returns the default column width and row height of a sheet.
func SheetDefaults(f *excelize.File, sheet string) (colWidth, rowHeight float64) {
	colWidth, rowHeight = DefaultColWidth, DefaultRowHeight
	props, err := f.GetSheetProps(sheet)
	if err != nil {
		return
	}
	if props.DefaultColWidth != nil && *props.DefaultColWidth > 0 {
		colWidth = *props.DefaultColWidth
	}
	if props.DefaultRowHeight != nil && *props.DefaultRowHeight > 0 {
		rowHeight = *props.DefaultRowHeight
	}
	return
}

// loadLayout reads customized column and row metadata inside b.
func loadLayout(f *excelize.File, ws *models.Worksheet, b bounds) error {
	colWidth, rowHeight := SheetDefaults(f, ws.Name)

	for col := 1; col <= b.C2; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		var meta models.ColumnMeta
		width, err := f.GetColWidth(ws.Name, name)
		if err != nil {
			return err
		}
		if !sameSize(width, colWidth) {
			meta.Width = &width
		}
		visible, err := f.GetColVisible(ws.Name, name)
		if err != nil {
			return err
		}
		meta.Hidden = !visible
		if meta.OutlineLevel, err = f.GetColOutlineLevel(ws.Name, name); err != nil {
			return err
		}
		if !meta.IsDefault() {
			ws.Columns[col] = meta
		}
	}

	for row := 1; row <= b.R2; row++ {
		var meta models.RowMeta
		height, err := f.GetRowHeight(ws.Name, row)
		if err != nil {
			return err
		}
		if !sameSize(height, rowHeight) {
			meta.Height = &height
		}
		visible, err := f.GetRowVisible(ws.Name, row)
		if err != nil {
			return err
		}
		meta.Hidden = !visible
		if meta.OutlineLevel, err = f.GetRowOutlineLevel(ws.Name, row); err != nil {
			return err
		}
		if !meta.IsDefault() {
			ws.Rows[row] = meta
		}
	}
	return nil
}

func sameSize(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
