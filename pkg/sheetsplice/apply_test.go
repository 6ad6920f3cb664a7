package sheetsplice

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/formula"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

func ptr[T any](v T) *T { return &v }

// rowValues returns the text of row 1 from column 1 to n ("" for empty cells).
func rowValues(ws *models.Worksheet, row, n int) []string {
	out := make([]string, n)
	for col := 1; col <= n; col++ {
		if c, ok := ws.Cell(row, col); ok && c.Value != nil {
			out[col-1] = c.Value.Text
		}
	}
	return out
}

func letterRow(ws *models.Worksheet, row int, values ...string) {
	for i, v := range values {
		ws.SetValue(row, i+1, models.Text(v))
	}
}

func TestApplyDeleteFirstColumnShiftsCellsAndRules(t *testing.T) {
	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "A", "B", "C", "D", "E")
	ws.ConditionalFormats = []models.ConditionalFormatRule{
		{Ranges: "D1:E10", Rules: []models.SubRule{{Kind: "expression", Priority: 1, Formulas: []string{"D1>0"}}}},
	}

	report, err := Apply(ws, models.DeleteColumns(1, 1), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C", "D", "E", ""}, rowValues(ws, 1, 5))
	assert.Equal(t, 4, ws.ColumnCount)
	require.Len(t, ws.ConditionalFormats, 1)
	assert.Equal(t, "C1:D10", ws.ConditionalFormats[0].Ranges)
	assert.Equal(t, []string{"C1>0"}, ws.ConditionalFormats[0].Rules[0].Formulas)
	assert.Empty(t, report.Diagnostics)
}

func TestApplyMergeShiftKeepsAnchorAndClearsOverlay(t *testing.T) {
	ws := models.NewWorksheet("Data")
	ws.SetCell(20, 7, models.Cell{Value: models.Text("Total"), StyleID: 3})
	ws.Merges = []models.Area{{R1: 20, C1: 7, R2: 22, C2: 9}}
	ws.StyleOverlay[models.CellKey{Row: 20, Col: 7}] = 9
	// stray overlays on non-anchor cells, as left behind by a row highlight pass
	ws.StyleOverlay[models.CellKey{Row: 20, Col: 8}] = 9
	ws.StyleOverlay[models.CellKey{Row: 20, Col: 9}] = 9
	ws.StyleOverlay[models.CellKey{Row: 20, Col: 10}] = 5

	_, err := Apply(ws, models.DeleteColumns(1, 1), DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, []models.Area{{R1: 20, C1: 6, R2: 22, C2: 8}}, ws.Merges)
	assert.Equal(t, "F20:H22", ws.Merges[0].Ref())

	anchor, ok := ws.Cell(20, 6)
	require.True(t, ok)
	assert.Equal(t, "Total", anchor.Value.Text)
	assert.Equal(t, 3, anchor.StyleID)
	assert.Equal(t, 9, ws.StyleOverlay[models.CellKey{Row: 20, Col: 6}])

	assert.NotContains(t, ws.StyleOverlay, models.CellKey{Row: 20, Col: 7})
	assert.NotContains(t, ws.StyleOverlay, models.CellKey{Row: 20, Col: 8})
	assert.Equal(t, 5, ws.StyleOverlay[models.CellKey{Row: 20, Col: 9}])

	// a later blanket restyle cannot repaint the merged cells
	painted := ws.ApplyOverlay(4,
		models.CellKey{Row: 20, Col: 6},
		models.CellKey{Row: 20, Col: 7},
		models.CellKey{Row: 20, Col: 8})
	assert.Equal(t, 1, painted)
	assert.NotContains(t, ws.StyleOverlay, models.CellKey{Row: 20, Col: 7})
}

func TestApplyRemovesRuleOnDeletedColumn(t *testing.T) {
	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "A", "B", "C", "D")
	ws.ConditionalFormats = []models.ConditionalFormatRule{
		{Ranges: "C1:C10", Rules: []models.SubRule{{Kind: "cell", Operator: "greaterThan", Priority: 1, Formulas: []string{"0"}}}},
	}

	report, err := Apply(ws, models.DeleteColumns(3, 1), DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, ws.ConditionalFormats)
	assert.Equal(t, 1, report.Count(RuleRemoved))
	assert.Equal(t, "C1:C10", report.Diagnostics[0].Ref)
}

func TestApplyNoopMoveLeavesWorksheetIdentical(t *testing.T) {
	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "A", "B", "C")
	ws.SetCell(2, 2, models.Cell{Value: models.Formula("=A1*2"), StyleID: 2})
	ws.Columns[2] = models.ColumnMeta{Width: ptr(12.5)}
	ws.Merges = []models.Area{{R1: 3, C1: 1, R2: 4, C2: 3}}
	ws.ConditionalFormats = []models.ConditionalFormatRule{{Ranges: "B1:B9", Rules: []models.SubRule{{Kind: "expression", Priority: 1, Formulas: []string{"B1>A1"}}}}}
	ws.AutoFilter = &models.Area{R1: 1, C1: 1, R2: 9, C2: 3}

	before, err := json.Marshal(ws)
	require.NoError(t, err)

	for _, e := range []models.Edit{models.MoveColumn(2, 2), models.MoveRow(3, 3)} {
		report, err := Apply(ws, e, DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, report.Diagnostics)

		after, err := json.Marshal(ws)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after), e.String())
	}
}

func TestApplyDeleteThenInsertRestoresOuterColumns(t *testing.T) {
	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "a", "b", "c", "d", "e", "f")
	letterRow(ws, 2, "g", "h", "i", "j", "k", "l")

	_, err := Apply(ws, models.DeleteColumns(2, 2), DefaultOptions())
	require.NoError(t, err)
	_, err = Apply(ws, models.InsertColumns(2, 2), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "", "", "d", "e", "f"}, rowValues(ws, 1, 6))
	assert.Equal(t, []string{"g", "", "", "j", "k", "l"}, rowValues(ws, 2, 6))
	assert.Equal(t, 6, ws.ColumnCount)
	for row := 1; row <= 2; row++ {
		for col := 2; col <= 3; col++ {
			_, ok := ws.Cell(row, col)
			assert.False(t, ok, "inserted cell (%d,%d) should be empty", row, col)
		}
	}
}

func TestApplyEditOutsideRulesChangesNothing(t *testing.T) {
	ws := models.NewWorksheet("Data")
	ws.SetValue(20, 12, models.Number(1))
	ws.ConditionalFormats = []models.ConditionalFormatRule{
		{Ranges: "B2:D9 F1:F4", Rules: []models.SubRule{{Kind: "expression", Priority: 1, Formulas: []string{"$B2>AVERAGE($B$2:$D$9)"}}}},
		{Ranges: "H3", Rules: []models.SubRule{{Kind: "cell", Operator: "between", Priority: 2, Formulas: []string{"$A$1", "H$2"}}}},
	}
	rules, err := json.Marshal(ws.ConditionalFormats)
	require.NoError(t, err)

	for _, e := range []models.Edit{models.DeleteColumns(10, 2), models.InsertColumns(9, 3), models.MoveColumn(11, 10), models.InsertRows(20, 1), models.DeleteRows(15, 2)} {
		report, err := Apply(ws, e, DefaultOptions())
		require.NoError(t, err, e.String())
		assert.Empty(t, report.Diagnostics, e.String())

		after, err := json.Marshal(ws.ConditionalFormats)
		require.NoError(t, err)
		assert.JSONEq(t, string(rules), string(after), e.String())
	}
}

func TestApplyKeepsMergesDisjoint(t *testing.T) {
	ws := models.NewWorksheet("Data")
	ws.SetValue(10, 10, models.Text("corner"))
	ws.Merges = []models.Area{
		{R1: 1, C1: 1, R2: 2, C2: 2},
		{R1: 1, C1: 4, R2: 3, C2: 5},
		{R1: 5, C1: 1, R2: 6, C2: 3},
		{R1: 2, C1: 7, R2: 2, C2: 8},
	}
	edits := []models.Edit{
		models.DeleteColumns(2, 1),
		models.InsertColumns(3, 2),
		models.MoveColumn(1, 5),
		models.DeleteRows(2, 2),
		models.MoveRow(3, 1),
		models.InsertRows(1, 1),
		models.DeleteColumns(1, 3),
	}
	for _, e := range edits {
		_, err := Apply(ws, e, DefaultOptions())
		require.NoError(t, err, e.String())
		assert.False(t, ws.HasOverlappingMerges(), "overlap after %s: %v", e, ws.Merges)
		for _, m := range ws.Merges {
			assert.False(t, m.IsSingleCell(), "single cell merge after %s", e)
		}
	}
}

func TestApplyMoveColumnCarriesCellsAndMetadata(t *testing.T) {
	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "a", "b", "c")
	ws.Columns[1] = models.ColumnMeta{Width: ptr(5.0)}
	ws.Columns[3] = models.ColumnMeta{Hidden: true}

	_, err := Apply(ws, models.MoveColumn(1, 3), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a"}, rowValues(ws, 1, 3))
	assert.Equal(t, map[int]models.ColumnMeta{
		2: {Hidden: true},
		3: {Width: ptr(5.0)},
	}, ws.Columns)
	assert.Equal(t, 3, ws.ColumnCount)
}

func TestApplyRestoresLayoutMetadata(t *testing.T) {
	ws := models.NewWorksheet("Data")
	ws.SetValue(3, 5, models.Text("x"))
	ws.Columns[2] = models.ColumnMeta{Width: ptr(10.5)}
	ws.Columns[3] = models.ColumnMeta{Width: ptr(20.0)}
	ws.Columns[4] = models.ColumnMeta{Hidden: true, OutlineLevel: 1}
	ws.Columns[5] = models.ColumnMeta{}
	ws.Rows[2] = models.RowMeta{Height: ptr(30.0)}

	_, err := Apply(ws, models.DeleteColumns(3, 1), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[int]models.ColumnMeta{
		2: {Width: ptr(10.5)},
		3: {Hidden: true, OutlineLevel: 1},
	}, ws.Columns)
	assert.Equal(t, map[int]models.RowMeta{2: {Height: ptr(30.0)}}, ws.Rows)

	_, err = Apply(ws, models.InsertRows(2, 2), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[int]models.RowMeta{4: {Height: ptr(30.0)}}, ws.Rows)
	assert.Equal(t, 5, ws.RowCount)
}

func TestApplyRebasesCellFormulas(t *testing.T) {
	ws := models.NewWorksheet("Data")
	for col := 1; col <= 4; col++ {
		ws.SetValue(1, col, models.Number(float64(col)))
	}
	ws.SetValue(1, 5, models.Formula("=SUM(A1:D1)"))
	ws.SetValue(2, 3, models.Formula("B1*2+Other!B1"))

	report, err := Apply(ws, models.DeleteColumns(2, 1), DefaultOptions())
	require.NoError(t, err)

	sum, _ := ws.Cell(1, 4)
	assert.Equal(t, "SUM(A1:C1)", sum.Value.Formula)
	dangling, _ := ws.Cell(2, 2)
	assert.Equal(t, "B1*2+Other!B1", dangling.Value.Formula)
	require.Equal(t, 1, report.Count(CollapsedReference))
	assert.Equal(t, "cell B2", report.Diagnostics[0].Target)
}

func TestApplyCollapsePolicyAndFormulaToggle(t *testing.T) {
	build := func() *models.Worksheet {
		ws := models.NewWorksheet("Data")
		ws.SetValue(1, 3, models.Formula("B1*2+D1"))
		ws.SetValue(1, 4, models.Number(1))
		return ws
	}

	ws := build()
	opts := DefaultOptions()
	opts.CollapsedFormulas = formula.RefError
	_, err := Apply(ws, models.DeleteColumns(2, 1), opts)
	require.NoError(t, err)
	c, _ := ws.Cell(1, 2)
	assert.Equal(t, "#REF!*2+C1", c.Value.Formula)

	ws = build()
	opts = DefaultOptions()
	opts.RebaseCellFormulas = ptr(false)
	report, err := Apply(ws, models.DeleteColumns(2, 1), opts)
	require.NoError(t, err)
	c, _ = ws.Cell(1, 2)
	assert.Equal(t, "B1*2+D1", c.Value.Formula)
	assert.Zero(t, report.Count(CollapsedReference))
}

func TestApplyAllStopsAtFirstInvalidEdit(t *testing.T) {
	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "A", "B", "C")

	reports, err := ApplyAll(ws, []models.Edit{
		models.DeleteColumns(1, 1),
		models.DeleteColumns(50, 1),
		models.InsertColumns(1, 1),
	}, DefaultOptions())

	assert.ErrorIs(t, err, ErrInvalidEdit)
	assert.Contains(t, err.Error(), "edit 2 of 3")
	assert.Len(t, reports, 1)
	assert.Equal(t, []string{"B", "C"}, rowValues(ws, 1, 2))
}

func TestApplyLogsPhases(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = logger

	ws := models.NewWorksheet("Data")
	letterRow(ws, 1, "A", "B")
	_, err := Apply(ws, models.DeleteColumns(1, 1), opts)
	require.NoError(t, err)

	var phases []string
	for _, e := range hook.AllEntries() {
		if p, ok := e.Data["phase"]; ok {
			phases = append(phases, p.(string))
		}
	}
	assert.Equal(t, []string{
		string(PhaseSnapshotting),
		string(PhaseShiftingCells),
		string(PhaseRebasingOverlays),
		string(PhaseRestoring),
		string(PhaseIdle),
	}, phases)
	assert.Equal(t, "edit committed", hook.LastEntry().Message)
	assert.Equal(t, "Data", hook.LastEntry().Data["sheet"])
}
