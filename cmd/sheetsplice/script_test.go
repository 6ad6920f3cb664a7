package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/formula"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

func TestParseScript(t *testing.T) {
	s, err := parseScript([]byte(`
sheet: Data
collapsed_formulas: ref-error
edits:
  - {op: delete, axis: columns, at: 1, count: 1}
  - {op: move, axis: rows, from: 4, to: 2}
`))
	require.NoError(t, err)
	assert.Equal(t, "Data", s.Sheet)
	assert.Equal(t, formula.RefError, s.CollapsedFormulas)
	assert.Equal(t, []models.Edit{models.DeleteColumns(1, 1), models.MoveRow(4, 2)}, s.Edits)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no edits", "sheet: Data\n"},
		{"unknown policy", "collapsed_formulas: drop\nedits:\n  - {op: delete, axis: rows, at: 1, count: 1}\n"},
		{"unknown field", "edits:\n  - {op: delete, axis: rows, start: 1}\n"},
		{"malformed", "edits: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScript([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
