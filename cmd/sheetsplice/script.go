package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/formula"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"gopkg.in/yaml.v3"
)

// script is an edit batch read from YAML:
//
//	sheet: Data
//	collapsed_formulas: keep
//	edits:
//	  - {op: delete, axis: columns, at: 1, count: 1}
//	  - {op: move, axis: rows, from: 4, to: 2}
type script struct {
	Sheet             string                 `yaml:"sheet"`
	CollapsedFormulas formula.CollapsePolicy `yaml:"collapsed_formulas"`
	Edits             []models.Edit          `yaml:"edits"`
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseScript(data)
}

func parseScript(data []byte) (*script, error) {
	var s script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	switch s.CollapsedFormulas {
	case "", formula.KeepText, formula.RefError:
	default:
		return nil, fmt.Errorf("invalid script: collapsed_formulas %q (must be %s or %s)",
			s.CollapsedFormulas, formula.KeepText, formula.RefError)
	}
	if len(s.Edits) == 0 {
		return nil, fmt.Errorf("invalid script: no edits")
	}
	return &s, nil
}
