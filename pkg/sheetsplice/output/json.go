// Package output renders decoded worksheets and edit reports as JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
)

// ToJSON serializes v, indenting with two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WorkbookToJSON serializes a decoded workbook.
func WorkbookToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// reportEnvelope is the document written after a batch of edits.
type reportEnvelope struct {
	Sheet   string                `json:"sheet"`
	Edits   int                   `json:"edits"`
	Removed map[string]int        `json:"removed,omitempty"`
	Reports []*sheetsplice.Report `json:"reports"`
}

// ReportToJSON serializes the reports of one batch of edits on a sheet,
// with a per-kind summary of what the edits removed.
func ReportToJSON(sheet string, reports []*sheetsplice.Report, pretty bool) ([]byte, error) {
	env := reportEnvelope{Sheet: sheet, Edits: len(reports), Reports: reports}
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			if !removal(d.Kind) {
				continue
			}
			if env.Removed == nil {
				env.Removed = make(map[string]int)
			}
			env.Removed[string(d.Kind)]++
		}
	}
	if env.Reports == nil {
		env.Reports = []*sheetsplice.Report{}
	}
	return ToJSON(env, pretty)
}

func removal(kind sheetsplice.DiagnosticKind) bool {
	switch kind {
	case sheetsplice.RuleRemoved, sheetsplice.MergeRemoved, sheetsplice.DegenerateMergeDropped,
		sheetsplice.AutoFilterRemoved, sheetsplice.ValidationRemoved, sheetsplice.PrintAreaRemoved,
		sheetsplice.TableRemoved, sheetsplice.TableColumnRemoved:
		return true
	}
	return false
}
