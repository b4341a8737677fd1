// Package importer reads sample lists from CSV and Excel files.
// The first non-empty row is the header; every following row is kept as-is
// so the layout can pick the columns it needs. CSV delimiters are detected
// automatically.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/packassist/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Table    model.Table
	Shipment string // Shipment number taken from the file name
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced a usable table.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0
}

var shipmentDigits = regexp.MustCompile(`\d+`)

// ShipmentNumberFromPath returns the first run of digits in the file's base
// name, or "" when there is none. "shipment_417.xlsx" yields "417".
func ShipmentNumberFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return shipmentDigits.FindString(base)
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := newCSVReader(bytes.NewReader(data), delim)
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}
	return bestDelimiter
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// Import dispatches on the file extension: .csv and .txt are read as CSV,
// everything else as an Excel workbook.
func Import(path string) ImportResult {
	var result ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		result = ImportCSV(path)
	default:
		result = ImportExcel(path)
	}
	result.Shipment = ShipmentNumberFromPath(path)
	return result
}

// ImportCSV imports a sample table from a CSV file.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports a sample table from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a sample table from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(sheets) > 1 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Using first sheet %q of %d", sheets[0], len(sheets)))
	}
	return importFromRows(rows, "Row", result.Warnings)
}

// importFromRows is the shared logic for CSV and Excel data. Empty rows are
// skipped; the first remaining row becomes the header.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	header := -1
	for i, row := range rows {
		if !isEmptyRow(row) {
			header = i
			break
		}
	}
	if header == -1 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	columns := make([]string, len(rows[header]))
	for i, c := range rows[header] {
		columns[i] = strings.TrimSpace(c)
	}
	result.Table.Columns = columns

	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		if len(row) > len(columns) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s %d: %d values for %d columns, extra values ignored", rowPrefix, i+1, len(row), len(columns)))
			row = row[:len(columns)]
		}
		result.Table.Rows = append(result.Table.Rows, append([]string(nil), row...))
	}
	if len(result.Table.Rows) == 0 {
		result.Warnings = append(result.Warnings, "No data rows found")
	}
	return result
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
