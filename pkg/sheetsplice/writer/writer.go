// Package writer encodes a models.Worksheet back into an excelize workbook.
package writer

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/parser"
	"github.com/xuri/excelize/v2"
)

// SaveWorksheet replaces the content of the sheet named ws.Name with ws.
//
// The previous cells, merges, conditional formats, data validations and
// layout of the sheet are cleared first, then everything is repainted from
// the worksheet's overlays only. The sheet must already exist. Changes that
// cannot be written are reported as warnings to log, which may be nil.
func SaveWorksheet(f *excelize.File, ws *models.Worksheet, log logrus.FieldLogger) error {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithField("sheet", ws.Name)
	prev, err := parser.LoadWorksheet(f, ws.Name)
	if err != nil {
		return err
	}
	steps := []struct {
		component string
		run       func(*excelize.File, *models.Worksheet, *models.Worksheet) error
	}{
		{"merges", writeMerges},
		{"conditional_formats", writeConditionalFormats},
		{"data_validations", writeDataValidations},
		{"cells", writeCells},
		// tables name their columns from the header cells written above
		{"tables", writeTables},
		{"layout", writeLayout},
		{"defined_names", func(f *excelize.File, prev, ws *models.Worksheet) error {
			return writeDefinedRanges(f, prev, ws, log)
		}},
	}
	for _, s := range steps {
		if err := s.run(f, prev, ws); err != nil {
			return fmt.Errorf("save sheet %q (%s): %w", ws.Name, s.component, err)
		}
	}
	return nil
}

func writeMerges(f *excelize.File, prev, ws *models.Worksheet) error {
	for _, m := range prev.Merges {
		top, bottom := corners(m)
		if err := f.UnmergeCell(ws.Name, top, bottom); err != nil {
			return err
		}
	}
	for _, m := range ws.Merges {
		top, bottom := corners(m)
		if err := f.MergeCell(ws.Name, top, bottom); err != nil {
			return err
		}
	}
	return nil
}

func writeConditionalFormats(f *excelize.File, prev, ws *models.Worksheet) error {
	for _, rule := range prev.ConditionalFormats {
		if err := f.UnsetConditionalFormat(ws.Name, rule.Ranges); err != nil {
			return err
		}
	}
	for _, rule := range ws.ConditionalFormats {
		opts := make([]excelize.ConditionalFormatOptions, 0, len(rule.Rules))
		for _, r := range rule.Rules {
			opts = append(opts, parser.OptionsFromSubRule(r))
		}
		if err := f.SetConditionalFormat(ws.Name, rule.Ranges, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeDataValidations(f *excelize.File, prev, ws *models.Worksheet) error {
	if len(prev.DataValidations) > 0 {
		if err := f.DeleteDataValidation(ws.Name); err != nil {
			return err
		}
	}
	for _, v := range ws.DataValidations {
		dv := excelize.NewDataValidation(v.AllowBlank)
		dv.Sqref = v.Ranges
		dv.Type = v.Type
		dv.Operator = v.Operator
		dv.Formula1 = v.Formula1
		dv.Formula2 = v.Formula2
		if err := f.AddDataValidation(ws.Name, dv); err != nil {
			return err
		}
	}
	return nil
}

func writeTables(f *excelize.File, prev, ws *models.Worksheet) error {
	for _, t := range prev.Tables {
		if err := f.DeleteTable(t.Name); err != nil {
			return err
		}
	}
	for _, t := range ws.Tables {
		area := t.Range
		if !t.ShowHeaderRow {
			// AddTable takes the range with its header row and drops it
			if area.R1 == 1 {
				return fmt.Errorf("table %s: no row above %s to hold the hidden header", t.Name, area.Ref())
			}
			area.R1--
		}
		if err := f.AddTable(ws.Name, &excelize.Table{
			Range:             area.Ref(),
			Name:              t.Name,
			StyleName:         t.StyleName,
			ShowHeaderRow:     &t.ShowHeaderRow,
			ShowFirstColumn:   t.ShowFirstColumn,
			ShowLastColumn:    t.ShowLastColumn,
			ShowRowStripes:    &t.ShowRowStripes,
			ShowColumnStripes: t.ShowColumnStripes,
		}); err != nil {
			return err
		}
	}
	return nil
}

func corners(a models.Area) (string, string) {
	top, _ := excelize.CoordinatesToCellName(a.C1, a.R1)
	bottom, _ := excelize.CoordinatesToCellName(a.C2, a.R2)
	return top, bottom
}
