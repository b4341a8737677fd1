package model

import "strings"

// Table is a tabular dataset handed over by the import collaborator.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, matched after trimming, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return i
		}
	}
	return -1
}

// Value safely returns the trimmed cell at row, col, or "" when out of range.
func (t Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// ColumnSet names the columns a shipment list must carry.
type ColumnSet struct {
	Code       string   `json:"code"`
	Positional []string `json:"positional"`
	Weight     string   `json:"weight"`
}

// DefaultColumns returns the column names used by the laboratory shipment lists.
func DefaultColumns() ColumnSet {
	return ColumnSet{
		Code:       "Код",
		Positional: []string{"st0", "st1", "st2", "st3", "st4"},
		Weight:     "Weight",
	}
}

// Required returns the columns that must be present on import. The weight column is optional.
func (c ColumnSet) Required() []string {
	return append([]string{c.Code}, c.Positional...)
}

// Missing returns the required columns absent from t, in declaration order.
func (c ColumnSet) Missing(t Table) []string {
	var missing []string
	for _, name := range c.Required() {
		if t.ColumnIndex(name) == -1 {
			missing = append(missing, name)
		}
	}
	return missing
}

// Samples converts the rows of t into samples. Weights are never taken from the table.
// Rows with every required cell blank are skipped.
func (c ColumnSet) Samples(t Table) ([]Sample, error) {
	if missing := c.Missing(t); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	codeIdx := t.ColumnIndex(c.Code)
	posIdx := make([]int, len(c.Positional))
	for i, name := range c.Positional {
		posIdx[i] = t.ColumnIndex(name)
	}

	samples := make([]Sample, 0, len(t.Rows))
	for r := range t.Rows {
		code := t.Value(r, codeIdx)
		fields := make([]string, len(posIdx))
		blank := code == ""
		for i, idx := range posIdx {
			fields[i] = t.Value(r, idx)
			if fields[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		samples = append(samples, NewSample(code, fields...))
	}
	return samples, nil
}
