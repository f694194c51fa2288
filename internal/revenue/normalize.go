// Package revenue turns the MOPS monthly revenue page into one clean table.
package revenue

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const (
	// ExpectedColumns is the width of a revenue table on the current page layout.
	ExpectedColumns = 11
	// MinRows is the row count a table must exceed to be treated as data.
	MinRows = 2
)

var (
	// ErrNoTables means the document has no <table> at all.
	ErrNoTables = errors.New("no tables found")
	// ErrNoDataTables means tables exist but none has the revenue table shape.
	ErrNoDataTables = errors.New("no valid data tables found")
)

// SummaryKeywords are first-column labels of aggregate rows.
var SummaryKeywords = []string{"合計", "小計", "總計", "平均"}

var (
	companyCodePattern = regexp.MustCompile(`^\d{4}$`)
	thousandsPattern   = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// Table is the cleaned revenue data. Rows are indexed from zero.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Records returns each row keyed by column name.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, t.Len())
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

// Normalize parses the revenue page and returns the cleaned table.
func Normalize(html string) (*Table, error) {
	tables, err := ParseTables(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	candidates := DataTables(tables)
	if len(candidates) == 0 {
		shapes := make([]string, len(tables))
		for i, t := range tables {
			shapes[i] = t.shape()
		}
		return nil, fmt.Errorf("%w (want >%d rows x %d columns, got %s)",
			ErrNoDataTables, MinRows, ExpectedColumns, strings.Join(shapes, ", "))
	}

	combined := Concat(candidates)
	table := &Table{
		Columns: FlattenHeader(combined.Header),
		Rows:    FilterRows(combined.Rows),
	}
	for _, row := range table.Rows {
		for i, v := range row {
			row[i] = stripThousands(v)
		}
	}
	table.insertIndustry()
	return table, nil
}

// DataTables keeps the tables shaped like revenue tables.
func DataTables(tables []RawTable) []RawTable {
	var out []RawTable
	for _, t := range tables {
		if t.NumColumns() == ExpectedColumns && t.NumRows() > MinRows {
			out = append(out, t)
		}
	}
	return out
}

// Concat stacks tables of equal width. The header of the first table is kept.
func Concat(tables []RawTable) RawTable {
	if len(tables) == 0 {
		return RawTable{}
	}
	combined := RawTable{Header: tables[0].Header}
	for _, t := range tables {
		for _, row := range t.Rows {
			combined.Rows = append(combined.Rows, slices.Clone(row))
		}
	}
	return combined
}

// FilterRows drops summary rows, then rows without a 4-digit company code.
func FilterRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		code := strings.TrimSpace(row[0])
		if IsSummary(code) {
			continue
		}
		if !IsCompanyCode(code) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// IsSummary reports whether label is one of SummaryKeywords.
func IsSummary(label string) bool {
	return slices.Contains(SummaryKeywords, strings.TrimSpace(label))
}

// IsCompanyCode reports whether code is exactly four digits.
func IsCompanyCode(code string) bool {
	return companyCodePattern.MatchString(strings.TrimSpace(code))
}

func (t *Table) insertIndustry() {
	pos := min(2, len(t.Columns))
	t.Columns = slices.Insert(t.Columns, pos, IndustryColumn)
	for i, row := range t.Rows {
		code := ""
		if len(row) > 0 {
			code = row[0]
		}
		t.Rows[i] = slices.Insert(row, min(pos, len(row)), Industry(code))
	}
}

func stripThousands(v string) string {
	if thousandsPattern.MatchString(v) {
		return strings.ReplaceAll(v, ",", "")
	}
	return v
}
