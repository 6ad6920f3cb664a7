// Package ref converts A1-style cell references and rebases them across
// structural edits.
package ref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidReference indicates a malformed or out-of-range reference.
var ErrInvalidReference = errors.New("invalid cell reference")

// ColumnToNumber decodes column letters (case-insensitive) into a 1-based number.
func ColumnToNumber(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %v", ErrInvalidReference, letters, err)
	}
	return n, nil
}

// NumberToColumn encodes a 1-based column number as letters.
func NumberToColumn(n int) (string, error) {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "", fmt.Errorf("%w: column %d: %v", ErrInvalidReference, n, err)
	}
	return name, nil
}

// ParseCellRef parses a reference such as "B7" or "$B$7" into column and row.
// Absolute markers are accepted and stripped.
func ParseCellRef(text string) (col, row int, err error) {
	name := strings.ReplaceAll(text, "$", "")
	col, row, err = excelize.CellNameToCoordinates(name)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidReference, text, err)
	}
	return col, row, nil
}

// FormatCellRef formats column and row as a relative reference.
func FormatCellRef(col, row int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("%w: (%d,%d): %v", ErrInvalidReference, col, row, err)
	}
	return name, nil
}
