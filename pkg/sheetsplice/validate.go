package sheetsplice

import (
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

// Validate checks an edit against the worksheet bounds. The returned error
// wraps ErrInvalidEdit.
func Validate(ws *models.Worksheet, e models.Edit) error {
	if ws == nil {
		return NewEditError(e, "nil worksheet")
	}
	if e.Axis != models.AxisColumns && e.Axis != models.AxisRows {
		return NewEditError(e, "unknown axis %q", e.Axis)
	}
	extent := extentOf(ws, e.Axis)
	limit := ref.Limit(e.Axis)

	switch e.Op {
	case models.OpDelete:
		if e.Count < 1 {
			return NewEditError(e, "count must be at least 1, got %d", e.Count)
		}
		if e.At < 1 || e.At > extent {
			return NewEditError(e, "position %d outside [1, %d]", e.At, extent)
		}
		if e.At+e.Count-1 > extent {
			return NewEditError(e, "deleting %d from %d runs past the last %s (%d)", e.Count, e.At, unit(e.Axis), extent)
		}
	case models.OpInsert:
		if e.Count < 1 {
			return NewEditError(e, "count must be at least 1, got %d", e.Count)
		}
		if e.At < 1 || e.At > extent+1 {
			return NewEditError(e, "position %d outside [1, %d]", e.At, extent+1)
		}
		if extent+e.Count > limit {
			return NewEditError(e, "inserting %d would exceed the sheet limit of %d %ss", e.Count, limit, unit(e.Axis))
		}
	case models.OpMove:
		if e.From < 1 || e.From > extent {
			return NewEditError(e, "source %d outside [1, %d]", e.From, extent)
		}
		if e.To < 1 || e.To > extent {
			return NewEditError(e, "target %d outside [1, %d]", e.To, extent)
		}
	default:
		return NewEditError(e, "unknown operation %q", e.Op)
	}
	return nil
}

// extentOf returns the number of rows or columns the worksheet occupies,
// counting overlays, layout metadata, merged regions and tables as well as
// cells.
func extentOf(ws *models.Worksheet, axis models.Axis) int {
	n := ws.Extent(axis)
	pick := func(k models.CellKey) int {
		if axis == models.AxisRows {
			return k.Row
		}
		return k.Col
	}
	for k := range ws.Cells {
		n = max(n, pick(k))
	}
	for k := range ws.StyleOverlay {
		n = max(n, pick(k))
	}
	if axis == models.AxisRows {
		for r := range ws.Rows {
			n = max(n, r)
		}
		for _, m := range ws.Merges {
			n = max(n, m.R2)
		}
		for _, t := range ws.Tables {
			n = max(n, t.Range.R2)
		}
		return n
	}
	for c := range ws.Columns {
		n = max(n, c)
	}
	for _, m := range ws.Merges {
		n = max(n, m.C2)
	}
	for _, t := range ws.Tables {
		n = max(n, t.Range.C2)
	}
	return n
}

func unit(axis models.Axis) string {
	if axis == models.AxisRows {
		return "row"
	}
	return "column"
}
