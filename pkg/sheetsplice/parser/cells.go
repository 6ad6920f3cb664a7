package parser

import (
	"strconv"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

// loadCells decodes values, formulas and style handles inside b.
func loadCells(f *excelize.File, ws *models.Worksheet, b bounds) error {
	for row := 1; row <= b.R2; row++ {
		for col := 1; col <= b.C2; col++ {
			name, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			styleID, err := f.GetCellStyle(ws.Name, name)
			if err != nil {
				return err
			}
			value, err := cellValue(f, ws.Name, name, b.raw(row, col))
			if err != nil {
				return err
			}
			ws.SetCell(row, col, models.Cell{Value: value, StyleID: styleID})
		}
	}
	return nil
}

// cellValue decodes one cell. It returns nil for cells without content.
func cellValue(f *excelize.File, sheet, name, raw string) (*models.Value, error) {
	formula, err := f.GetCellFormula(sheet, name)
	if err != nil {
		return nil, err
	}
	if formula != "" {
		v := models.Formula(formula)
		v.Text = raw
		return v, nil
	}
	if raw == "" {
		return nil, nil
	}
	cellType, err := f.GetCellType(sheet, name)
	if err != nil {
		return nil, err
	}
	switch cellType {
	case excelize.CellTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return models.Text(raw), nil
		}
		return models.Bool(b), nil
	case excelize.CellTypeError:
		return &models.Value{Kind: models.KindError, Text: raw}, nil
	case excelize.CellTypeDate:
		if n, ok := parseNumber(raw); ok {
			return &models.Value{Kind: models.KindDate, Number: n}, nil
		}
		return &models.Value{Kind: models.KindDate, Text: raw}, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.Text(raw), nil
	}
	if n, ok := parseNumber(raw); ok {
		return models.Number(n), nil
	}
	return models.Text(raw), nil
}

// parseNumber attempts to parse a raw value as a number.
func parseNumber(s string) (float64, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}
