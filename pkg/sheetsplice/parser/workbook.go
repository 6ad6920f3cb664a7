// Package parser decodes xlsx worksheets into models.Worksheet values.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/xuri/excelize/v2"
)

// Open opens an xlsx file, mapping failures to ErrFileNotFound and
// ErrInvalidFormat.
func Open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return f, nil
}

// LoadWorkbook decodes every worksheet of an xlsx file.
func LoadWorkbook(path string) (*models.WorkbookData, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := make(map[string]*models.Worksheet)
	for _, name := range f.GetSheetList() {
		ws, err := LoadWorksheet(f, name)
		if err != nil {
			return nil, err
		}
		sheets[name] = ws
	}

	return &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}

// LoadWorksheet decodes one worksheet: cells with their styles, column and
// row layout, merged regions, conditional formats, data validations,
// tables, the auto-filter and print areas.
func LoadWorksheet(f *excelize.File, sheet string) (*models.Worksheet, error) {
	if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	ws := models.NewWorksheet(sheet)

	merges, err := loadMerges(f, sheet)
	if err != nil {
		return nil, NewLoadError(sheet, "merges", err)
	}
	ws.Merges = merges
	b, err := sheetBounds(f, sheet)
	if err != nil {
		return nil, NewLoadError(sheet, "cells", err)
	}
	for _, m := range merges {
		b.R2 = max(b.R2, m.R2)
		b.C2 = max(b.C2, m.C2)
	}
	if err := loadCells(f, ws, b); err != nil {
		return nil, NewLoadError(sheet, "cells", err)
	}
	if err := loadLayout(f, ws, b); err != nil {
		return nil, NewLoadError(sheet, "layout", err)
	}
	if ws.ConditionalFormats, err = loadConditionalFormats(f, sheet); err != nil {
		return nil, NewLoadError(sheet, "conditional_formats", err)
	}
	if ws.DataValidations, err = loadDataValidations(f, sheet); err != nil {
		return nil, NewLoadError(sheet, "data_validations", err)
	}
	if ws.Tables, err = loadTables(f, sheet); err != nil {
		return nil, NewLoadError(sheet, "tables", err)
	}
	ws.AutoFilter, ws.PrintAreas = loadDefinedRanges(f, sheet)

	ws.RowCount = max(ws.RowCount, b.R2)
	ws.ColumnCount = max(ws.ColumnCount, b.C2)
	return ws, nil
}
