package sheetsplice

import (
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

// rebaseConditionalFormats rebases every rule's range list and formulas.
// Rules keep their order and priorities; rules whose range list emptied are
// removed after the walk.
func (m *mutation) rebaseConditionalFormats() {
	rules := m.ws.ConditionalFormats
	removed := make([]bool, len(rules))
	n := 0
	for i := range rules {
		rule := &rules[i]
		target := "conditional format " + rule.Ranges
		ranges, dropped := ref.RebaseRangeList(rule.Ranges, m.edit)
		if ranges == "" {
			removed[i] = true
			n++
			m.report.add(RuleRemoved, target, rule.Ranges, "conditional format rule removed, its range no longer exists")
			continue
		}
		for _, d := range dropped {
			m.report.add(RangeDropped, target, d, "range %s dropped from conditional format", d)
		}
		rule.Ranges = ranges
		for j := range rule.Rules {
			formulas := rule.Rules[j].Formulas
			for k := range formulas {
				formulas[k] = m.rebaseFormula(formulas[k], target)
			}
		}
	}
	if n == 0 {
		return
	}
	kept := make([]models.ConditionalFormatRule, 0, len(rules)-n)
	for i, rule := range rules {
		if !removed[i] {
			kept = append(kept, rule)
		}
	}
	m.ws.ConditionalFormats = kept
	m.log.Debugf("removed %d conditional format rules", n)
}
