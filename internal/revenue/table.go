package revenue

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RawTable is one <table> of the page with its spans expanded.
type RawTable struct {
	// Header holds the header levels of each column, outer level first.
	Header [][]string
	Rows   [][]string
}

// NumColumns returns the width of the table.
func (t RawTable) NumColumns() int {
	return len(t.Header)
}

// NumRows returns the number of body rows.
func (t RawTable) NumRows() int {
	return len(t.Rows)
}

func (t RawTable) shape() string {
	return fmt.Sprintf("%dx%d", t.NumRows(), t.NumColumns())
}

type cell struct {
	text    string
	header  bool
	colspan int
	rowspan int
}

// ParseTables reads every table in the document, nested ones included, in
// document order.
func ParseTables(r io.Reader) ([]RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables []RawTable
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		tables = append(tables, parseTable(s))
	})
	return tables, nil
}

func parseTable(s *goquery.Selection) RawTable {
	var head, body, foot [][]cell
	s.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "thead":
			head = append(head, parseRows(child.ChildrenFiltered("tr"))...)
		case "tbody":
			body = append(body, parseRows(child.ChildrenFiltered("tr"))...)
		case "tfoot":
			foot = append(foot, parseRows(child.ChildrenFiltered("tr"))...)
		case "tr":
			body = append(body, parseRows(child)...)
		}
	})

	// thead が無い場合は先頭の <th> だけの行をヘッダーとみなす
	if len(head) == 0 {
		for len(body) > 0 && allHeaderCells(body[0]) {
			head = append(head, body[0])
			body = body[1:]
		}
	}
	body = append(body, foot...)

	headGrid := expandSpans(head)
	bodyGrid := expandSpans(body)

	width := 0
	for _, grid := range [][][]string{headGrid, bodyGrid} {
		for _, row := range grid {
			width = max(width, len(row))
		}
	}

	header := make([][]string, width)
	for col := range header {
		if len(headGrid) == 0 {
			header[col] = []string{strconv.Itoa(col)}
			continue
		}
		levels := make([]string, len(headGrid))
		for lvl, row := range headGrid {
			if col < len(row) && row[col] != "" {
				levels[lvl] = row[col]
			} else {
				levels[lvl] = Placeholder(col, lvl)
			}
		}
		header[col] = levels
	}

	rows := make([][]string, len(bodyGrid))
	for i, row := range bodyGrid {
		rows[i] = pad(row, width)
	}
	return RawTable{Header: header, Rows: rows}
}

func parseRows(trs *goquery.Selection) [][]cell {
	var rows [][]cell
	trs.Each(func(_ int, tr *goquery.Selection) {
		var row []cell
		tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, cell{
				text:    cellText(td),
				header:  goquery.NodeName(td) == "th",
				colspan: spanAttr(td, "colspan"),
				rowspan: spanAttr(td, "rowspan"),
			})
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}

// cellText joins the text nodes of the cell and collapses whitespace. Tags
// such as <br> add nothing.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func spanAttr(s *goquery.Selection, name string) int {
	v, ok := s.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func allHeaderCells(row []cell) bool {
	for _, c := range row {
		if !c.header {
			return false
		}
	}
	return len(row) > 0
}

type carry struct {
	col  int
	text string
	left int
}

// expandSpans copies colspan/rowspan cells into every position they cover.
// Rows still owed by a rowspan after the last <tr> are emitted as extra rows.
func expandSpans(rows [][]cell) [][]string {
	var grid [][]string
	var pending []carry

	for _, row := range rows {
		var out []string
		var next []carry
		col := 0
		for _, c := range row {
			for len(pending) > 0 && pending[0].col <= col {
				p := pending[0]
				pending = pending[1:]
				out = append(out, p.text)
				if p.left > 1 {
					next = append(next, carry{col: p.col, text: p.text, left: p.left - 1})
				}
				col++
			}
			for range c.colspan {
				out = append(out, c.text)
				if c.rowspan > 1 {
					next = append(next, carry{col: col, text: c.text, left: c.rowspan - 1})
				}
				col++
			}
		}
		for _, p := range pending {
			out = append(out, p.text)
			if p.left > 1 {
				next = append(next, carry{col: p.col, text: p.text, left: p.left - 1})
			}
			col++
		}
		grid = append(grid, out)
		pending = next
	}

	for len(pending) > 0 {
		var out []string
		var next []carry
		for _, p := range pending {
			out = append(out, p.text)
			if p.left > 1 {
				next = append(next, carry{col: p.col, text: p.text, left: p.left - 1})
			}
		}
		grid = append(grid, out)
		pending = next
	}
	return grid
}

func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
