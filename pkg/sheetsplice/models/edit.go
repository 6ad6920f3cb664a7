package models

import "fmt"

// Op is the kind of structural edit.
type Op string

const (
	// OpDelete removes Count rows or columns starting at At.
	OpDelete Op = "delete"
	// OpInsert inserts Count empty rows or columns before At.
	OpInsert Op = "insert"
	// OpMove moves the single row or column From to position To.
	OpMove Op = "move"
)

// Axis selects rows or columns.
type Axis string

const (
	// AxisColumns edits columns.
	AxisColumns Axis = "columns"
	// AxisRows edits rows.
	AxisRows Axis = "rows"
)

// Edit describes one structural operation. Positions are 1-based.
type Edit struct {
	Op    Op   `json:"op" yaml:"op"`
	Axis  Axis `json:"axis" yaml:"axis"`
	At    int  `json:"at,omitempty" yaml:"at,omitempty"`
	Count int  `json:"count,omitempty" yaml:"count,omitempty"`
	From  int  `json:"from,omitempty" yaml:"from,omitempty"`
	To    int  `json:"to,omitempty" yaml:"to,omitempty"`
}

// DeleteColumns removes count columns starting at at.
func DeleteColumns(at, count int) Edit {
	return Edit{Op: OpDelete, Axis: AxisColumns, At: at, Count: count}
}

// InsertColumns inserts count empty columns before at.
func InsertColumns(at, count int) Edit {
	return Edit{Op: OpInsert, Axis: AxisColumns, At: at, Count: count}
}

// MoveColumn moves column from to position to.
func MoveColumn(from, to int) Edit {
	return Edit{Op: OpMove, Axis: AxisColumns, From: from, To: to}
}

// DeleteRows removes count rows starting at at.
func DeleteRows(at, count int) Edit {
	return Edit{Op: OpDelete, Axis: AxisRows, At: at, Count: count}
}

// InsertRows inserts count empty rows before at.
func InsertRows(at, count int) Edit {
	return Edit{Op: OpInsert, Axis: AxisRows, At: at, Count: count}
}

// MoveRow moves row from to position to.
func MoveRow(from, to int) Edit {
	return Edit{Op: OpMove, Axis: AxisRows, From: from, To: to}
}

// IsNoop reports whether the edit leaves every position where it is.
func (e Edit) IsNoop() bool {
	return e.Op == OpMove && e.From == e.To
}

func (e Edit) String() string {
	switch e.Op {
	case OpMove:
		return fmt.Sprintf("move %s %d->%d", e.Axis, e.From, e.To)
	default:
		return fmt.Sprintf("%s %s at=%d count=%d", e.Op, e.Axis, e.At, e.Count)
	}
}
