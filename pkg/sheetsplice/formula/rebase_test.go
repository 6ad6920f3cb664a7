package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

func TestRebase(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		edit     models.Edit
		expected string
	}{
		{"shift after deletion", "A1+D1", models.DeleteColumns(2, 1), "A1+C1"},
		{"absolute markers kept", "$D$5*2", models.DeleteColumns(1, 1), "$C$5*2"},
		{"range end shrinks", "SUM(B2:E2)", models.DeleteColumns(3, 1), "SUM(B2:D2)"},
		{"range clipped", "SUM(B2:D2)", models.DeleteColumns(4, 2), "SUM(B2:C2)"},
		{"string literal untouched", `"C1"&C1`, models.DeleteColumns(1, 1), `"C1"&B1`},
		{"other sheet untouched", "Other!C1+C1", models.DeleteColumns(1, 1), "Other!C1+B1"},
		{"own sheet rebased", "Data!C1", models.DeleteColumns(1, 1), "Data!B1"},
		{"quoted own sheet rebased", "'Data'!C1", models.DeleteColumns(1, 1), "'Data'!B1"},
		{"row insert", "A10*$B$10", models.InsertRows(5, 2), "A12*$B$12"},
		{"column edit leaves rows", "A10", models.InsertColumns(5, 2), "A10"},
		{"move", "E2+B2", models.MoveColumn(5, 2), "B2+C2"},
		{"unchanged text kept verbatim", "a1+b$1", models.DeleteColumns(5, 1), "a1+b$1"},
		{"function names kept", "LOG10(D4)", models.DeleteColumns(1, 1), "LOG10(C4)"},
		{"reversed range normalized", "SUM(E1:B1)", models.DeleteColumns(1, 1), "SUM(A1:D1)"},
		{"move swaps range endpoints", "SUM(B1:C1)", models.MoveColumn(3, 1), "SUM(A1:C1)"},
		{"move keeps markers with coordinates", "SUM($B1:C$1)", models.MoveColumn(3, 1), "SUM(A1:$C$1)"},
		{"move through range", "SUM(B1:D1)", models.MoveColumn(3, 6), "SUM(B1:C1)"},
		{"move rows", "A2:A5*2", models.MoveRow(2, 7), "A4:A7*2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, collapses := Rebase(tt.formula, tt.edit, "Data", KeepText)
			assert.Equal(t, tt.expected, got)
			assert.Empty(t, collapses)
		})
	}
}

func TestRebaseCollapsedReference(t *testing.T) {
	got, collapses := Rebase("C1*2+SUM(C1:C5)", models.DeleteColumns(3, 1), "Data", KeepText)
	assert.Equal(t, "C1*2+SUM(C1:C5)", got)
	assert.Equal(t, []Collapse{{Ref: "C1", Pos: 0}, {Ref: "C1:C5", Pos: 9}}, collapses)

	got, collapses = Rebase("C1*2+SUM(C1:C5)+D1", models.DeleteColumns(3, 1), "Data", RefError)
	assert.Equal(t, "#REF!*2+SUM(#REF!)+C1", got)
	assert.Len(t, collapses, 2)
}

func TestRebaseCellPushedOffSheet(t *testing.T) {
	got, collapses := Rebase("XFD1", models.InsertColumns(1, 1), "Data", RefError)
	assert.Equal(t, "#REF!", got)
	assert.Len(t, collapses, 1)
}

func TestReferences(t *testing.T) {
	assert.True(t, References("A1>0", "Data"))
	assert.True(t, References("Data!A1>0", "Data"))
	assert.False(t, References("Other!A1>0", "Data"))
	assert.False(t, References(`LEN("A1")>0`, "Data"))
}
