package sheetsplice

import (
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/formula"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

func (m *mutation) rebaseAutoFilter() {
	af := m.ws.AutoFilter
	if af == nil {
		return
	}
	na, outcome := ref.RebaseArea(*af, m.edit)
	if outcome.Dropped() {
		m.report.add(AutoFilterRemoved, "auto filter", af.Ref(), "auto filter range %s was deleted", af.Ref())
		m.ws.AutoFilter = nil
		return
	}
	m.ws.AutoFilter = &na
}

func (m *mutation) rebasePrintAreas() {
	if len(m.ws.PrintAreas) == 0 {
		return
	}
	kept := m.ws.PrintAreas[:0]
	for _, a := range m.ws.PrintAreas {
		na, outcome := ref.RebaseArea(a, m.edit)
		if outcome.Dropped() {
			m.report.add(PrintAreaRemoved, "print area", a.Ref(), "print area %s was deleted", a.Ref())
			continue
		}
		kept = append(kept, na)
	}
	m.ws.PrintAreas = kept
}

func (m *mutation) rebaseDataValidations() {
	if len(m.ws.DataValidations) == 0 {
		return
	}
	kept := m.ws.DataValidations[:0]
	for _, dv := range m.ws.DataValidations {
		target := "data validation " + dv.Ranges
		ranges, dropped := ref.RebaseRangeList(dv.Ranges, m.edit)
		if ranges == "" {
			m.report.add(ValidationRemoved, target, dv.Ranges, "data validation removed, its range no longer exists")
			continue
		}
		for _, d := range dropped {
			m.report.add(RangeDropped, target, d, "range %s dropped from data validation", d)
		}
		dv.Ranges = ranges
		dv.Formula1 = m.rebaseFormula(dv.Formula1, target)
		dv.Formula2 = m.rebaseFormula(dv.Formula2, target)
		kept = append(kept, dv)
	}
	m.ws.DataValidations = kept
}

// rebaseCellFormulas rewrites the formula of every formula cell. Cells are
// already at their post-edit positions.
func (m *mutation) rebaseCellFormulas() {
	for key, c := range m.ws.Cells {
		if c.Value == nil || c.Value.Kind != models.KindFormula {
			continue
		}
		name, _ := ref.FormatCellRef(key.Col, key.Row)
		f := m.rebaseFormula(c.Value.Formula, "cell "+name)
		if f == c.Value.Formula {
			continue
		}
		v := *c.Value
		v.Formula = f
		c.Value = &v
		m.ws.Cells[key] = c
	}
}

// rebaseFormula rewrites one formula and reports collapsed references.
func (m *mutation) rebaseFormula(text, target string) string {
	if text == "" {
		return text
	}
	out, collapses := formula.Rebase(text, m.edit, m.ws.Name, m.opts.CollapsePolicy())
	for _, c := range collapses {
		m.report.add(CollapsedReference, target, c.Ref, "reference %s in %q lost its target", c.Ref, text)
	}
	return out
}
