package parser

import (
	"strconv"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
	"github.com/xuri/excelize/v2"
)

// loadTables decodes the sheet's Excel tables. Column names are read from
// the header row, since excelize does not expose the stored ones; decoded
// tables always show their header row.
func loadTables(f *excelize.File, sheet string) ([]models.Table, error) {
	tables, err := f.GetTables(sheet)
	if err != nil {
		return nil, err
	}
	var out []models.Table
	for _, t := range tables {
		area, err := ref.ParseRange(t.Range)
		if err != nil {
			return nil, err
		}
		columns := make([]string, 0, area.C2-area.C1+1)
		for col := area.C1; col <= area.C2; col++ {
			name, err := excelize.CoordinatesToCellName(col, area.R1)
			if err != nil {
				return nil, err
			}
			header, err := f.GetCellValue(sheet, name)
			if err != nil {
				return nil, err
			}
			if header == "" {
				header = "Column" + strconv.Itoa(col-area.C1+1)
			}
			columns = append(columns, header)
		}
		out = append(out, models.Table{
			Name:              t.Name,
			Range:             area,
			Columns:           columns,
			StyleName:         t.StyleName,
			ShowHeaderRow:     true,
			ShowFirstColumn:   t.ShowFirstColumn,
			ShowLastColumn:    t.ShowLastColumn,
			ShowRowStripes:    t.ShowRowStripes != nil && *t.ShowRowStripes,
			ShowColumnStripes: t.ShowColumnStripes,
		})
	}
	return out, nil
}
