package models

// ConditionalFormatRule binds a set of sub-rules to a range list.
type ConditionalFormatRule struct {
	// Ranges is a space-separated range list such as "D1:E10 G1:G10".
	Ranges string `json:"ranges"`
	// Rules is the ordered list of sub-rules evaluated over Ranges.
	Rules []SubRule `json:"rules"`
}

// SubRule is a single formatting condition.
type SubRule struct {
	// Kind is the rule type (expression, cell, top10, colorScale, ...).
	Kind string `json:"kind"`
	// Operator is the comparison for cell rules (between, greaterThan, ...).
	Operator string `json:"operator,omitempty"`
	// Priority orders rules within the worksheet; unique per worksheet.
	Priority int `json:"priority"`
	// StyleID is the differential style applied when the rule matches.
	StyleID *int `json:"style,omitempty"`
	// Formulas holds formula operands which may contain cell references.
	Formulas []string `json:"formulas,omitempty"`
	// StopIfTrue stops evaluating lower priority rules on a match.
	StopIfTrue bool `json:"stop_if_true,omitempty"`
	// Params carries kind-specific settings that are not position dependent.
	Params map[string]string `json:"params,omitempty"`
}

// DataValidation restricts input over a range list.
type DataValidation struct {
	// Ranges is a space-separated range list.
	Ranges string `json:"ranges"`
	// Type is the validation type (list, whole, decimal, custom, ...).
	Type string `json:"type"`
	// Operator is the comparison operator (between, equal, ...).
	Operator string `json:"operator,omitempty"`
	// Formula1 is the first operand; may contain cell references.
	Formula1 string `json:"formula1,omitempty"`
	// Formula2 is the second operand; may contain cell references.
	Formula2 string `json:"formula2,omitempty"`
	// AllowBlank permits empty input.
	AllowBlank bool `json:"allow_blank,omitempty"`
}
