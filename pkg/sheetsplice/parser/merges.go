package parser

import (
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

func loadMerges(f *excelize.File, sheet string) ([]models.Area, error) {
	merged, err := f.GetMergeCells(sheet, true)
	if err != nil {
		return nil, err
	}
	var areas []models.Area
	for _, mc := range merged {
		c1, r1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, err
		}
		c2, r2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		areas = append(areas, models.Area{R1: r1, C1: c1, R2: r2, C2: c2})
	}
	return areas, nil
}
