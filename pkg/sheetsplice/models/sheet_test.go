package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCellGrowsExtentAndDropsEmptyCells(t *testing.T) {
	ws := NewWorksheet("Sheet1")
	ws.SetValue(4, 7, Text("x"))
	assert.Equal(t, 4, ws.RowCount)
	assert.Equal(t, 7, ws.ColumnCount)

	ws.SetStyle(4, 7, 3)
	c, ok := ws.Cell(4, 7)
	require.True(t, ok)
	assert.Equal(t, "x", c.Value.Text)
	assert.Equal(t, 3, c.StyleID)

	ws.SetCell(4, 7, Cell{})
	_, ok = ws.Cell(4, 7)
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	ws := NewWorksheet("Sheet1")
	ws.SetValue(1, 1, Text("a"))
	ws.Merges = []Area{{R1: 1, C1: 1, R2: 2, C2: 2}}
	w := 12.0
	ws.Columns[1] = ColumnMeta{Width: &w}

	cp, err := ws.Clone()
	require.NoError(t, err)
	assert.Equal(t, ws.Name, cp.Name)
	assert.Equal(t, ws.Merges, cp.Merges)
	assert.Equal(t, "a", cp.Cells[CellKey{Row: 1, Col: 1}].Value.Text)
	assert.Equal(t, 12.0, *cp.Columns[1].Width)

	cp.Cells[CellKey{Row: 1, Col: 1}].Value.Text = "changed"
	cp.Merges[0].C2 = 5
	*cp.Columns[1].Width = 30

	c, _ := ws.Cell(1, 1)
	assert.Equal(t, "a", c.Value.Text)
	assert.Equal(t, 2, ws.Merges[0].C2)
	assert.Equal(t, 12.0, *ws.Columns[1].Width)
}

func TestApplyOverlaySkipsMergeOwnedCells(t *testing.T) {
	ws := NewWorksheet("Sheet1")
	ws.Merges = []Area{{R1: 2, C1: 2, R2: 3, C2: 4}}

	var row []CellKey
	for col := 1; col <= 5; col++ {
		row = append(row, CellKey{Row: 2, Col: col})
	}
	painted := ws.ApplyOverlay(8, row...)

	assert.Equal(t, 3, painted)
	assert.Equal(t, map[CellKey]int{
		{Row: 2, Col: 1}: 8,
		{Row: 2, Col: 2}: 8,
		{Row: 2, Col: 5}: 8,
	}, ws.StyleOverlay)
	assert.Equal(t, 8, ws.EffectiveStyle(2, 2))
	assert.True(t, ws.IsMergeOwned(3, 2))
	assert.False(t, ws.IsMergeOwned(2, 2))
}

func TestWorksheetJSONUsesCellNames(t *testing.T) {
	ws := NewWorksheet("Sheet1")
	ws.SetValue(3, 2, Number(42))

	data, err := json.Marshal(ws)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"B3":{"value":{"kind":"number","number":42}}`)

	var back Worksheet
	require.NoError(t, json.Unmarshal(data, &back))
	c, ok := back.Cell(3, 2)
	require.True(t, ok)
	assert.Equal(t, 42.0, c.Value.Number)
}

func TestHasOverlappingMerges(t *testing.T) {
	ws := NewWorksheet("Sheet1")
	ws.Merges = []Area{{R1: 1, C1: 1, R2: 2, C2: 2}, {R1: 3, C1: 1, R2: 4, C2: 2}}
	assert.False(t, ws.HasOverlappingMerges())

	ws.Merges = append(ws.Merges, Area{R1: 2, C1: 2, R2: 3, C2: 3})
	assert.True(t, ws.HasOverlappingMerges())
}
