package parser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

// Conditional format kinds whose operands are formulas.
const (
	kindFormula = "formula"
	kindCell    = "cell"
)

// loadConditionalFormats decodes the sheet's conditional formats. excelize
// does not expose rule priorities, so rules are numbered in range order.
func loadConditionalFormats(f *excelize.File, sheet string) ([]models.ConditionalFormatRule, error) {
	formats, err := f.GetConditionalFormats(sheet)
	if err != nil {
		return nil, err
	}
	sqrefs := make([]string, 0, len(formats))
	for sqref := range formats {
		sqrefs = append(sqrefs, sqref)
	}
	slices.Sort(sqrefs)

	var rules []models.ConditionalFormatRule
	priority := 1
	for _, sqref := range sqrefs {
		rule := models.ConditionalFormatRule{Ranges: sqref}
		for _, opts := range formats[sqref] {
			rule.Rules = append(rule.Rules, SubRuleFromOptions(priority, opts))
			priority++
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// SubRuleFromOptions converts an excelize rule into a SubRule. Operands that
// may hold references go to Formulas; everything else goes to Params.
func SubRuleFromOptions(priority int, o excelize.ConditionalFormatOptions) models.SubRule {
	r := models.SubRule{
		Kind:       o.Type,
		Priority:   priority,
		StyleID:    o.Format,
		StopIfTrue: o.StopIfTrue,
		Params:     make(map[string]string),
	}
	switch {
	case o.Type == kindFormula:
		r.Formulas = []string{strings.TrimPrefix(o.Criteria, "=")}
	case o.Type == kindCell && isBetween(o.Criteria):
		r.Operator = o.Criteria
		r.Formulas = []string{o.MinValue, o.MaxValue}
	case o.Type == kindCell:
		r.Operator = o.Criteria
		r.Formulas = []string{o.Value}
	default:
		r.Operator = o.Criteria
		setParam(r.Params, "value", o.Value)
		setParam(r.Params, "min_value", o.MinValue)
		setParam(r.Params, "mid_value", o.MidValue)
		setParam(r.Params, "max_value", o.MaxValue)
	}
	setParam(r.Params, "min_type", o.MinType)
	setParam(r.Params, "mid_type", o.MidType)
	setParam(r.Params, "max_type", o.MaxType)
	setParam(r.Params, "min_color", o.MinColor)
	setParam(r.Params, "mid_color", o.MidColor)
	setParam(r.Params, "max_color", o.MaxColor)
	setParam(r.Params, "bar_color", o.BarColor)
	setParam(r.Params, "bar_border_color", o.BarBorderColor)
	setParam(r.Params, "bar_direction", o.BarDirection)
	setParam(r.Params, "icon_style", o.IconStyle)
	setFlag(r.Params, "above_average", o.AboveAverage)
	setFlag(r.Params, "percent", o.Percent)
	setFlag(r.Params, "bar_only", o.BarOnly)
	setFlag(r.Params, "bar_solid", o.BarSolid)
	setFlag(r.Params, "reverse_icons", o.ReverseIcons)
	setFlag(r.Params, "icons_only", o.IconsOnly)
	if len(r.Params) == 0 {
		r.Params = nil
	}
	return r
}

// OptionsFromSubRule is the inverse of SubRuleFromOptions.
func OptionsFromSubRule(r models.SubRule) excelize.ConditionalFormatOptions {
	p := r.Params
	o := excelize.ConditionalFormatOptions{
		Type:           r.Kind,
		Format:         r.StyleID,
		StopIfTrue:     r.StopIfTrue,
		Criteria:       r.Operator,
		Value:          p["value"],
		MinValue:       p["min_value"],
		MidValue:       p["mid_value"],
		MaxValue:       p["max_value"],
		MinType:        p["min_type"],
		MidType:        p["mid_type"],
		MaxType:        p["max_type"],
		MinColor:       p["min_color"],
		MidColor:       p["mid_color"],
		MaxColor:       p["max_color"],
		BarColor:       p["bar_color"],
		BarBorderColor: p["bar_border_color"],
		BarDirection:   p["bar_direction"],
		IconStyle:      p["icon_style"],
		AboveAverage:   flag(p, "above_average"),
		Percent:        flag(p, "percent"),
		BarOnly:        flag(p, "bar_only"),
		BarSolid:       flag(p, "bar_solid"),
		ReverseIcons:   flag(p, "reverse_icons"),
		IconsOnly:      flag(p, "icons_only"),
	}
	operand := func(i int) string {
		if i < len(r.Formulas) {
			return r.Formulas[i]
		}
		return ""
	}
	switch {
	case r.Kind == kindFormula:
		o.Criteria = operand(0)
	case r.Kind == kindCell && isBetween(r.Operator):
		o.MinValue, o.MaxValue = operand(0), operand(1)
	case r.Kind == kindCell:
		o.Value = operand(0)
	}
	return o
}

func isBetween(criteria string) bool {
	c := strings.ToLower(strings.ReplaceAll(criteria, " ", ""))
	return c == "between" || c == "notbetween"
}

func setParam(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}

func setFlag(params map[string]string, key string, value bool) {
	if value {
		params[key] = strconv.FormatBool(value)
	}
}

func flag(params map[string]string, key string) bool {
	b, _ := strconv.ParseBool(params[key])
	return b
}
