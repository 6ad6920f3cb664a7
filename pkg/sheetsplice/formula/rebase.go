package formula

import (
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

// CollapsePolicy decides what happens to a reference whose target was
// entirely deleted.
type CollapsePolicy string

const (
	// KeepText leaves the original reference text in place.
	KeepText CollapsePolicy = "keep"
	// RefError replaces the reference with #REF!.
	RefError CollapsePolicy = "ref-error"
)

// refError is written for collapsed references under RefError.
const refError = "#REF!"

// Collapse records a reference that lost its target.
type Collapse struct {
	// Ref is the original reference text.
	Ref string `json:"ref"`
	// Pos is the byte offset of the reference in the original formula.
	Pos int `json:"pos"`
}

// Rebase rewrites every reference in formula that points into sheet.
// References qualified with another sheet name are left alone, as are
// string literals. Unqualified references are taken to be local.
// The returned collapses list references whose target was deleted; how
// they appear in the result depends on policy.
func Rebase(formula string, e models.Edit, sheet string, policy CollapsePolicy) (string, []Collapse) {
	tokens := Tokenize(formula)
	var (
		b         strings.Builder
		collapses []Collapse
		changed   bool
	)
	b.Grow(len(formula))
	for _, tok := range tokens {
		if tok.Kind != TokenReference || (tok.Sheet != "" && !strings.EqualFold(tok.Sheet, sheet)) {
			b.WriteString(tok.Text)
			continue
		}
		text, ok := rebaseToken(tok, e)
		if !ok {
			collapses = append(collapses, Collapse{Ref: tok.Text, Pos: tok.Pos})
			if policy == RefError {
				b.WriteString(refError)
				changed = true
				continue
			}
			b.WriteString(tok.Text)
			continue
		}
		if text != tok.Text {
			changed = true
		}
		b.WriteString(text)
	}
	if !changed {
		return formula, collapses
	}
	return b.String(), collapses
}

// References reports whether formula contains at least one reference to
// sheet (qualified or not).
func References(formula, sheet string) bool {
	for _, tok := range Tokenize(formula) {
		if tok.Kind == TokenReference && (tok.Sheet == "" || strings.EqualFold(tok.Sheet, sheet)) {
			return true
		}
	}
	return false
}

// rebaseToken returns the new text for a reference token, or false when
// the reference collapsed. Unmoved references keep their exact text.
func rebaseToken(tok Token, e models.Edit) (string, bool) {
	if !tok.IsRange {
		col, row, ok := ref.RebaseCell(tok.Start.Col, tok.Start.Row, e)
		if !ok {
			return "", false
		}
		if col == tok.Start.Col && row == tok.Start.Row {
			return tok.Text, true
		}
		c := tok.Start
		c.Col, c.Row = col, row
		return c.String(), true
	}

	if e.Op == models.OpMove {
		return rebaseMovedRange(tok, e), true
	}

	start, end := normalize(tok.Start, tok.End)
	area := models.Area{R1: start.Row, C1: start.Col, R2: end.Row, C2: end.Col}
	na, outcome := ref.RebaseArea(area, e)
	if outcome.Dropped() {
		return "", false
	}
	if outcome == ref.Unchanged {
		return tok.Text, true
	}
	start.Col, start.Row = na.C1, na.R1
	end.Col, end.Row = na.C2, na.R2
	return start.String() + ":" + end.String(), true
}

// rebaseMovedRange maps each endpoint of a range on its own and puts the
// result back in order. A move deletes nothing, so the range always survives.
func rebaseMovedRange(tok Token, e models.Edit) string {
	start, end := tok.Start, tok.End
	start.Col, start.Row, _ = ref.RebaseCell(start.Col, start.Row, e)
	end.Col, end.Row, _ = ref.RebaseCell(end.Col, end.Row, e)
	if start == tok.Start && end == tok.End {
		return tok.Text
	}
	start, end = normalize(start, end)
	return start.String() + ":" + end.String()
}

// normalize orders two endpoints top-left to bottom-right. Absolute markers
// travel with their coordinate.
func normalize(start, end CellRef) (CellRef, CellRef) {
	if start.Col > end.Col {
		start.Col, end.Col = end.Col, start.Col
		start.ColAbs, end.ColAbs = end.ColAbs, start.ColAbs
	}
	if start.Row > end.Row {
		start.Row, end.Row = end.Row, start.Row
		start.RowAbs, end.RowAbs = end.RowAbs, start.RowAbs
	}
	return start, end
}
