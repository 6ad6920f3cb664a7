package sheetsplice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// tableSheet holds a table at B1:E5 whose header row reads Id, Name, Qty, Price.
func tableSheet() *models.Worksheet {
	ws := models.NewWorksheet("Data")
	for i, h := range []string{"Id", "Name", "Qty", "Price"} {
		ws.SetValue(1, i+2, models.Text(h))
		ws.SetValue(5, i+2, models.Number(float64(i)))
	}
	ws.Tables = []models.Table{{
		Name:          "Orders",
		Range:         models.Area{R1: 1, C1: 2, R2: 5, C2: 5},
		Columns:       []string{"Id", "Name", "Qty", "Price"},
		StyleName:     "TableStyleMedium2",
		ShowHeaderRow: true,
	}}
	return ws
}

func TestRebaseTables(t *testing.T) {
	tests := []struct {
		name    string
		edit    models.Edit
		ref     string
		columns []string
		removed int
	}{
		{"delete inside", models.DeleteColumns(3, 1), "B1:D5", []string{"Id", "Qty", "Price"}, 1},
		{"delete before", models.DeleteColumns(1, 1), "A1:D5", []string{"Id", "Name", "Qty", "Price"}, 0},
		{"insert inside", models.InsertColumns(4, 2), "B1:G5", []string{"Id", "Name", "Column3", "Column4", "Qty", "Price"}, 0},
		{"insert at start shifts", models.InsertColumns(2, 1), "C1:F5", []string{"Id", "Name", "Qty", "Price"}, 0},
		{"move within", models.MoveColumn(5, 2), "B1:E5", []string{"Price", "Id", "Name", "Qty"}, 0},
		{"row insert keeps names", models.InsertRows(3, 2), "B1:E7", []string{"Id", "Name", "Qty", "Price"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := tableSheet()
			report, err := Apply(ws, tt.edit, DefaultOptions())
			require.NoError(t, err)

			require.Len(t, ws.Tables, 1)
			assert.Equal(t, tt.ref, ws.Tables[0].Range.Ref())
			assert.Equal(t, tt.columns, ws.Tables[0].Columns)
			assert.Equal(t, tt.removed, report.Count(TableColumnRemoved))
			assert.Equal(t, "TableStyleMedium2", ws.Tables[0].StyleName)
		})
	}
}

func TestRebaseTablesWritesPlaceholderHeaders(t *testing.T) {
	ws := tableSheet()
	_, err := Apply(ws, models.InsertColumns(4, 2), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Id", "Name", "Column3", "Column4", "Qty", "Price"}, rowValues(ws, 1, 7)[1:])
}

func TestRebaseTablesNamesMovedInColumnFromHeader(t *testing.T) {
	ws := tableSheet()
	ws.SetValue(1, 7, models.Text("name"))

	_, err := Apply(ws, models.MoveColumn(7, 3), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, ws.Tables, 1)
	assert.Equal(t, "B1:F5", ws.Tables[0].Range.Ref())
	assert.Equal(t, []string{"Id", "name2", "Name", "Qty", "Price"}, ws.Tables[0].Columns)
	c, _ := ws.Cell(1, 3)
	assert.Equal(t, "name2", c.Value.Text)
}

func TestRebaseTablesHeaderRowDeleted(t *testing.T) {
	ws := models.NewWorksheet("Data")
	ws.SetValue(1, 1, models.Text("a"))
	ws.SetValue(1, 2, models.Text("b"))
	ws.SetValue(2, 1, models.Text("x"))
	ws.SetValue(2, 2, models.Number(7))
	ws.SetValue(4, 1, models.Text("end"))
	ws.Tables = []models.Table{{Name: "T", Range: models.Area{R1: 1, C1: 1, R2: 4, C2: 2}, Columns: []string{"a", "b"}, ShowHeaderRow: true}}

	_, err := Apply(ws, models.DeleteRows(1, 1), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, ws.Tables, 1)
	assert.Equal(t, "A1:B3", ws.Tables[0].Range.Ref())
	assert.Equal(t, []string{"x", "7"}, ws.Tables[0].Columns)
}

func TestRebaseTablesRemoved(t *testing.T) {
	ws := tableSheet()
	report, err := Apply(ws, models.DeleteColumns(2, 4), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, ws.Tables)
	assert.Equal(t, 1, report.Count(TableRemoved))

	ws = tableSheet()
	report, err = Apply(ws, models.DeleteRows(2, 4), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, ws.Tables, "a table needs a data row under its header")
	assert.Equal(t, 1, report.Count(TableRemoved))
}
