package writer

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/parser"
	"github.com/xuri/excelize/v2"
)

// writeCells clears every previously occupied cell, then writes the new
// cells with their effective style (overlay over cell style).
func writeCells(f *excelize.File, prev, ws *models.Worksheet) error {
	for key := range prev.Cells {
		name, err := excelize.CoordinatesToCellName(key.Col, key.Row)
		if err != nil {
			return err
		}
		if err := f.SetCellFormula(ws.Name, name, ""); err != nil {
			return err
		}
		if err := f.SetCellValue(ws.Name, name, nil); err != nil {
			return err
		}
		if err := f.SetCellStyle(ws.Name, name, name, 0); err != nil {
			return err
		}
	}

	keys := make(map[models.CellKey]struct{}, len(ws.Cells)+len(ws.StyleOverlay))
	for k := range ws.Cells {
		keys[k] = struct{}{}
	}
	for k := range ws.StyleOverlay {
		keys[k] = struct{}{}
	}
	for key := range keys {
		name, err := excelize.CoordinatesToCellName(key.Col, key.Row)
		if err != nil {
			return err
		}
		if c, ok := ws.Cells[key]; ok && c.Value != nil {
			if err := writeValue(f, ws.Name, name, c.Value); err != nil {
				return err
			}
		}
		if style := ws.EffectiveStyle(key.Row, key.Col); style != 0 {
			if err := f.SetCellStyle(ws.Name, name, name, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeValue(f *excelize.File, sheet, name string, v *models.Value) error {
	switch v.Kind {
	case models.KindFormula:
		return f.SetCellFormula(sheet, name, v.Formula)
	case models.KindNumber:
		return f.SetCellFloat(sheet, name, v.Number, -1, 64)
	case models.KindDate:
		if v.Text != "" {
			if t, ok := parseDate(v.Text); ok {
				// stored as a serial; excelize adds a date format to unstyled cells
				return f.SetCellValue(sheet, name, t)
			}
			return f.SetCellStr(sheet, name, v.Text)
		}
		return f.SetCellFloat(sheet, name, v.Number, -1, 64)
	case models.KindBool:
		return f.SetCellBool(sheet, name, v.Bool)
	default:
		return f.SetCellStr(sheet, name, v.Text)
	}
}

// dateLayouts are the ISO 8601 forms of inline date cells.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"}

func parseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// writeLayout resets previously customized columns and rows, then applies
// the worksheet's metadata.
func writeLayout(f *excelize.File, prev, ws *models.Worksheet) error {
	colWidth, rowHeight := parser.SheetDefaults(f, ws.Name)

	for col := range prev.Columns {
		if _, ok := ws.Columns[col]; ok {
			continue
		}
		if err := setColumn(f, ws.Name, col, models.ColumnMeta{}, colWidth); err != nil {
			return err
		}
	}
	for col, meta := range ws.Columns {
		if err := setColumn(f, ws.Name, col, meta, colWidth); err != nil {
			return err
		}
	}

	for row := range prev.Rows {
		if _, ok := ws.Rows[row]; ok {
			continue
		}
		if err := setRow(f, ws.Name, row, models.RowMeta{}, rowHeight); err != nil {
			return err
		}
	}
	for row, meta := range ws.Rows {
		if err := setRow(f, ws.Name, row, meta, rowHeight); err != nil {
			return err
		}
	}
	return nil
}

func setColumn(f *excelize.File, sheet string, col int, meta models.ColumnMeta, defaultWidth float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	width := defaultWidth
	if meta.Width != nil {
		width = *meta.Width
	}
	if err := f.SetColWidth(sheet, name, name, width); err != nil {
		return err
	}
	if err := f.SetColVisible(sheet, name, !meta.Hidden); err != nil {
		return err
	}
	return f.SetColOutlineLevel(sheet, name, meta.OutlineLevel)
}

func setRow(f *excelize.File, sheet string, row int, meta models.RowMeta, defaultHeight float64) error {
	height := defaultHeight
	if meta.Height != nil {
		height = *meta.Height
	}
	if err := f.SetRowHeight(sheet, row, height); err != nil {
		return err
	}
	if err := f.SetRowVisible(sheet, row, !meta.Hidden); err != nil {
		return err
	}
	return f.SetRowOutlineLevel(sheet, row, meta.OutlineLevel)
}

// writeDefinedRanges rewrites the sheet's print area and auto-filter.
func writeDefinedRanges(f *excelize.File, prev, ws *models.Worksheet, log logrus.FieldLogger) error {
	if len(prev.PrintAreas) > 0 {
		if err := f.DeleteDefinedName(&excelize.DefinedName{Name: parser.PrintAreaName, Scope: ws.Name}); err != nil {
			return err
		}
	}
	if len(ws.PrintAreas) > 0 {
		if err := f.SetDefinedName(&excelize.DefinedName{
			Name:     parser.PrintAreaName,
			RefersTo: parser.FormatDefinedReference(ws.Name, ws.PrintAreas),
			Scope:    ws.Name,
		}); err != nil {
			return err
		}
	}

	if ws.AutoFilter != nil {
		return f.AutoFilter(ws.Name, ws.AutoFilter.Ref(), nil)
	}
	if prev.AutoFilter != nil {
		// excelize cannot drop the sheet's autoFilter element, only its name
		log.WithField("range", prev.AutoFilter.Ref()).
			Warn("auto-filter removed from the sheet, its filter buttons stay until removed in Excel")
		return f.DeleteDefinedName(&excelize.DefinedName{Name: parser.AutoFilterName, Scope: ws.Name})
	}
	return nil
}
