package parser

import (
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

func loadDataValidations(f *excelize.File, sheet string) ([]models.DataValidation, error) {
	dvs, err := f.GetDataValidations(sheet)
	if err != nil {
		return nil, err
	}
	var out []models.DataValidation
	for _, dv := range dvs {
		if dv == nil {
			continue
		}
		out = append(out, models.DataValidation{
			Ranges:     dv.Sqref,
			Type:       dv.Type,
			Operator:   dv.Operator,
			Formula1:   validationFormula(dv.Formula1, "formula1"),
			Formula2:   validationFormula(dv.Formula2, "formula2"),
			AllowBlank: dv.AllowBlank,
		})
	}
	return out, nil
}

// validationFormula strips the element tags some excelize versions keep
// around validation formulas.
func validationFormula(s, tag string) string {
	s = strings.TrimPrefix(s, "<"+tag+">")
	s = strings.TrimSuffix(s, "</"+tag+">")
	return strings.TrimPrefix(s, "=")
}
