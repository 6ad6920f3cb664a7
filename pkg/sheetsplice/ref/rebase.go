package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

// Outcome classifies what a rebase did to a reference.
type Outcome int

const (
	// Unchanged means the reference still points where it did.
	Unchanged Outcome = iota
	// Shifted means the reference moved along with its target.
	Shifted
	// Clipped means one endpoint fell inside a deleted span and was pulled
	// back to the nearest surviving position.
	Clipped
	// Collapsed means every position of the reference was deleted.
	Collapsed
	// Degenerate means a deletion left the range ending before it started.
	Degenerate
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Shifted:
		return "shifted"
	case Clipped:
		return "clipped"
	case Collapsed:
		return "collapsed"
	case Degenerate:
		return "degenerate"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Dropped reports whether the reference no longer has a valid target.
func (o Outcome) Dropped() bool {
	return o == Collapsed || o == Degenerate
}

// MapPosition rebases a single position on the edit's axis.
// ok is false when the position lies inside a deleted span.
func MapPosition(p int, e models.Edit) (pos int, ok bool) {
	switch e.Op {
	case models.OpDelete:
		switch {
		case p < e.At:
			return p, true
		case p < e.At+e.Count:
			return 0, false
		default:
			return p - e.Count, true
		}
	case models.OpInsert:
		if p < e.At {
			return p, true
		}
		return p + e.Count, true
	case models.OpMove:
		switch {
		case p == e.From:
			return e.To, true
		case e.From < e.To && p > e.From && p <= e.To:
			return p - 1, true
		case e.To < e.From && p >= e.To && p < e.From:
			return p + 1, true
		}
	}
	return p, true
}

// RebaseSpan rebases an inclusive span [lo, hi] on the edit's axis,
// clipping endpoints that fall inside a deleted span. Endpoints reversed by
// a move are swapped back into order; only deletions drop a span.
func RebaseSpan(lo, hi int, e models.Edit) (int, int, Outcome) {
	if lo > hi {
		lo, hi = hi, lo
	}
	nlo, okLo := MapPosition(lo, e)
	nhi, okHi := MapPosition(hi, e)
	outcome := Shifted
	switch {
	case !okLo && !okHi:
		return 0, 0, Collapsed
	case !okHi:
		// the span runs into the deletion from the left
		nhi = e.At - 1
		outcome = Clipped
	case !okLo:
		// first surviving position after the deletion lands on At
		nlo = e.At
		outcome = Clipped
	}
	if nlo > nhi {
		if e.Op == models.OpMove {
			// a move can carry one endpoint past the other; nothing was deleted
			return nhi, nlo, Shifted
		}
		return nlo, nhi, Degenerate
	}
	if outcome == Shifted && nlo == lo && nhi == hi {
		outcome = Unchanged
	}
	return nlo, nhi, outcome
}

// Limit returns the largest valid position on the axis.
func Limit(axis models.Axis) int {
	if axis == models.AxisRows {
		return excelize.TotalRows
	}
	return excelize.MaxColumns
}

// RebaseCell rebases a single cell. ok is false when the cell was deleted
// or pushed past the last row or column of the sheet.
func RebaseCell(col, row int, e models.Edit) (newCol, newRow int, ok bool) {
	newCol, newRow = col, row
	p := &newCol
	if e.Axis == models.AxisRows {
		p = &newRow
	}
	*p, ok = MapPosition(*p, e)
	if !ok || *p > Limit(e.Axis) {
		return col, row, false
	}
	return newCol, newRow, true
}

// RebaseArea rebases a rectangular range. Only the edited axis changes.
// Ranges pushed past the sheet limit are clipped to it. A range spanning
// the whole edited axis (a full column under a row edit) stays as it is.
func RebaseArea(a models.Area, e models.Edit) (models.Area, Outcome) {
	lo, hi := &a.C1, &a.C2
	if e.Axis == models.AxisRows {
		lo, hi = &a.R1, &a.R2
	}
	if *lo == 1 && *hi == Limit(e.Axis) {
		return a, Unchanged
	}
	var outcome Outcome
	*lo, *hi, outcome = RebaseSpan(*lo, *hi, e)
	if outcome.Dropped() {
		return a, outcome
	}
	if limit := Limit(e.Axis); *hi > limit {
		if *lo > limit {
			return a, Collapsed
		}
		*hi = limit
		outcome = Clipped
	}
	return a, outcome
}

// Shape is the written form of a range.
type Shape int

const (
	// ShapeCells is "A1" or "A1:B2".
	ShapeCells Shape = iota
	// ShapeColumns is a whole-column span such as "C:D".
	ShapeColumns
	// ShapeRows is a whole-row span such as "2:5".
	ShapeRows
)

// ParseRange parses "A1:B2", "$A$1:$B$2", a single cell "A1", whole
// columns "C:D" or whole rows "2:5". Whole spans cover the full other axis.
func ParseRange(text string) (models.Area, error) {
	a, _, err := parseShaped(text)
	return a, err
}

// FormatRange writes a in the given shape without absolute markers.
func FormatRange(a models.Area, shape Shape) string {
	switch shape {
	case ShapeColumns:
		c1, _ := NumberToColumn(a.C1)
		c2, _ := NumberToColumn(a.C2)
		return c1 + ":" + c2
	case ShapeRows:
		return strconv.Itoa(a.R1) + ":" + strconv.Itoa(a.R2)
	}
	return a.Ref()
}

func parseShaped(text string) (models.Area, Shape, error) {
	start, end, found := strings.Cut(strings.TrimSpace(text), ":")
	if found {
		if a, shape, ok := parseLineSpan(start, end); ok {
			return a, shape, nil
		}
	}
	c1, r1, err := ParseCellRef(start)
	if err != nil {
		return models.Area{}, ShapeCells, err
	}
	if !found {
		return models.Area{R1: r1, C1: c1, R2: r1, C2: c1}, ShapeCells, nil
	}
	c2, r2, err := ParseCellRef(end)
	if err != nil {
		return models.Area{}, ShapeCells, err
	}
	return models.Area{R1: min(r1, r2), C1: min(c1, c2), R2: max(r1, r2), C2: max(c1, c2)}, ShapeCells, nil
}

// parseLineSpan parses "C:D" and "2:5", with or without absolute markers.
func parseLineSpan(start, end string) (models.Area, Shape, bool) {
	start, end = strings.ReplaceAll(start, "$", ""), strings.ReplaceAll(end, "$", "")
	if r1, err := strconv.Atoi(start); err == nil {
		r2, err := strconv.Atoi(end)
		if err != nil || min(r1, r2) < 1 || max(r1, r2) > excelize.TotalRows {
			return models.Area{}, ShapeCells, false
		}
		return models.Area{R1: min(r1, r2), C1: 1, R2: max(r1, r2), C2: excelize.MaxColumns}, ShapeRows, true
	}
	c1, err := excelize.ColumnNameToNumber(start)
	if err != nil {
		return models.Area{}, ShapeCells, false
	}
	c2, err := excelize.ColumnNameToNumber(end)
	if err != nil {
		return models.Area{}, ShapeCells, false
	}
	return models.Area{R1: 1, C1: min(c1, c2), R2: excelize.TotalRows, C2: max(c1, c2)}, ShapeColumns, true
}
