package sheetsplice

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/ref"
)

// rebaseTables moves every table range and keeps its column names in step
// with the sheet columns. Cells are already at their post-edit positions.
func (m *mutation) rebaseTables() {
	if len(m.ws.Tables) == 0 {
		return
	}
	kept := m.ws.Tables[:0]
	for _, t := range m.ws.Tables {
		target := "table " + t.Name
		na, outcome := ref.RebaseArea(t.Range, m.edit)
		if outcome.Dropped() || (t.ShowHeaderRow && na.R1 == na.R2) {
			m.report.add(TableRemoved, target, t.Range.Ref(), "table %s removed, its range %s no longer exists", t.Name, t.Range.Ref())
			continue
		}
		if m.edit.Axis == models.AxisColumns || (t.ShowHeaderRow && m.headerReplaced(t.Range.R1, na.R1)) {
			t.Columns = m.rebaseTableColumns(t, na, target)
		}
		t.Range = na
		kept = append(kept, t)
	}
	m.ws.Tables = kept
}

// headerReplaced reports whether a row edit put a different row at the top
// of a table.
func (m *mutation) headerReplaced(oldTop, newTop int) bool {
	pos, ok := ref.MapPosition(oldTop, m.edit)
	return !ok || pos != newTop
}

// rebaseTableColumns maps each column name to its new sheet column. Slots
// no name maps into take the header cell text, or a ColumnN placeholder,
// and the header cell is updated to match.
func (m *mutation) rebaseTableColumns(t models.Table, na models.Area, target string) []string {
	names := make([]string, na.C2-na.C1+1)
	if m.edit.Axis == models.AxisColumns {
		for i, name := range t.Columns {
			pos, ok := ref.MapPosition(t.Range.C1+i, m.edit)
			if !ok {
				m.report.add(TableColumnRemoved, target, name, "column %q removed from table %s", name, t.Name)
				continue
			}
			if pos >= na.C1 && pos <= na.C2 {
				names[pos-na.C1] = name
			}
		}
	}

	used := make(map[string]bool, len(names))
	for _, name := range names {
		if name != "" {
			used[strings.ToLower(name)] = true
		}
	}
	for i := range names {
		if names[i] != "" {
			continue
		}
		col := na.C1 + i
		header := ""
		if t.ShowHeaderRow {
			header = headerText(m.ws, na.R1, col)
		}
		if header == "" {
			header = "Column" + strconv.Itoa(i+1)
		}
		names[i] = uniqueColumnName(header, used)
		if t.ShowHeaderRow && names[i] != headerText(m.ws, na.R1, col) {
			c, _ := m.ws.Cell(na.R1, col)
			c.Value = models.Text(names[i])
			m.ws.SetCell(na.R1, col, c)
		}
	}
	return names
}

// headerText renders a header cell the way Excel names the table column.
func headerText(ws *models.Worksheet, row, col int) string {
	c, ok := ws.Cell(row, col)
	if !ok || c.Value == nil {
		return ""
	}
	switch c.Value.Kind {
	case models.KindNumber:
		return strconv.FormatFloat(c.Value.Number, 'f', -1, 64)
	case models.KindBool:
		return strings.ToUpper(strconv.FormatBool(c.Value.Bool))
	}
	return c.Value.Text
}

// uniqueColumnName appends 2, 3, ... until name is unused (case-insensitive)
// and marks the result as used.
func uniqueColumnName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = name + strconv.Itoa(n)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
