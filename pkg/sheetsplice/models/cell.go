// Package models defines data structures for worksheet structural editing.
package models

import "github.com/xuri/excelize/v2"

// ValueKind identifies the type of a cell value.
type ValueKind string

const (
	// KindText is a plain string value.
	KindText ValueKind = "text"
	// KindNumber is a numeric value.
	KindNumber ValueKind = "number"
	// KindDate is a date stored as its serial number.
	KindDate ValueKind = "date"
	// KindBool is a boolean value.
	KindBool ValueKind = "bool"
	// KindFormula is a formula; Text holds the cached result when known.
	KindFormula ValueKind = "formula"
	// KindError is an error literal such as #REF!.
	KindError ValueKind = "error"
)

// Value represents the content of a cell.
type Value struct {
	// Kind is the value type.
	Kind ValueKind `json:"kind"`
	// Text is the string content, the error code, or the cached formula result.
	Text string `json:"text,omitempty"`
	// Number is the numeric content (also the serial number for dates).
	Number float64 `json:"number,omitempty"`
	// Bool is the boolean content.
	Bool bool `json:"bool,omitempty"`
	// Formula is the formula text without the leading '='.
	Formula string `json:"formula,omitempty"`
}

// Text returns a text value.
func Text(s string) *Value { return &Value{Kind: KindText, Text: s} }

// Number returns a numeric value.
func Number(n float64) *Value { return &Value{Kind: KindNumber, Number: n} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Formula returns a formula value. A leading '=' is dropped.
func Formula(f string) *Value {
	if len(f) > 0 && f[0] == '=' {
		f = f[1:]
	}
	return &Value{Kind: KindFormula, Formula: f}
}

// CellKey addresses a cell by 1-based row and column.
type CellKey struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// MarshalText encodes the key as an A1 reference so maps keyed by CellKey
// serialize as JSON objects.
func (k CellKey) MarshalText() ([]byte, error) {
	name, err := excelize.CoordinatesToCellName(k.Col, k.Row)
	if err != nil {
		return nil, err
	}
	return []byte(name), nil
}

// UnmarshalText decodes an A1 reference.
func (k *CellKey) UnmarshalText(text []byte) error {
	col, row, err := excelize.CellNameToCoordinates(string(text))
	if err != nil {
		return err
	}
	k.Row, k.Col = row, col
	return nil
}

// Cell represents a single grid cell.
type Cell struct {
	// Value is the cell content (nil when the cell only carries a style).
	Value *Value `json:"value,omitempty"`
	// StyleID is the shared style handle; 0 is the workbook default style.
	StyleID int `json:"style,omitempty"`
}

// IsEmpty reports whether the cell holds neither a value nor a style.
func (c Cell) IsEmpty() bool {
	return c.Value == nil && c.StyleID == 0
}
