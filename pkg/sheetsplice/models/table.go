package models

// Table is an Excel table (ListObject) anchored on the worksheet.
type Table struct {
	// Name is the workbook-unique table name.
	Name string `json:"name"`
	// Range covers the header row (if shown) and the data rows.
	Range Area `json:"range"`
	// Columns holds the column names from left to right.
	Columns []string `json:"columns,omitempty"`
	// StyleName is the table style such as "TableStyleMedium2".
	StyleName string `json:"style_name,omitempty"`
	// ShowHeaderRow reports whether the first row of Range holds the column names.
	ShowHeaderRow bool `json:"show_header_row"`

	// style options
	ShowFirstColumn   bool `json:"show_first_column,omitempty"`
	ShowLastColumn    bool `json:"show_last_column,omitempty"`
	ShowRowStripes    bool `json:"show_row_stripes,omitempty"`
	ShowColumnStripes bool `json:"show_column_stripes,omitempty"`
}
