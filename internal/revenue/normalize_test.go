package revenue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CombinesAndCleansTables(t *testing.T) {
	html := page(
		revenueTable("水泥工業",
			companyRow("1101", "台泥"),
			companyRow("1102", "亞泥"),
			companyRow("1103", "嘉泥"),
			companyRow("12345", "壞資料"),
			summaryRow("合計"),
		),
		revenueTable("半導體業",
			companyRow("2303", "聯電"),
			companyRow("2330", "台積電"),
			companyRow("2337", "旺宏"),
			companyRow("2342", "茂矽"),
			companyRow("2344", "華邦電"),
			companyRow("2351", "順德"),
			companyRow("2363", "矽統"),
		),
	)

	table, err := Normalize(html)
	require.NoError(t, err)

	assert.Equal(t, 10, table.Len())
	assert.Equal(t, []string{
		"公司代號", "公司名稱", IndustryColumn,
		"當月營收", "上月營收", "去年當月營收", "上月比較增減(%)", "去年同月增減(%)",
		"當月累計營收", "去年累計營收", "前期比較增減(%)", "備註",
	}, table.Columns)

	assert.Equal(t, "1101", table.Rows[0][0])
	assert.Equal(t, "水泥工業", table.Rows[0][2])
	assert.Equal(t, "2303", table.Rows[3][0])
	assert.Equal(t, "2330", table.Rows[4][0])
	assert.Equal(t, "電子工業", table.Rows[4][2])
	assert.Equal(t, "2363", table.Rows[9][0])

	for i, row := range table.Rows {
		assert.Len(t, row, len(table.Columns), "row %d", i)
		assert.True(t, IsCompanyCode(row[0]), "row %d code %q", i, row[0])
		assert.False(t, IsSummary(row[0]), "row %d", i)
		assert.NotEmpty(t, row[2], "row %d", i)
	}
}

func TestNormalize_StripsThousandsSeparators(t *testing.T) {
	table, err := Normalize(page(revenueTable("水泥工業",
		companyRow("1101", "台泥"),
		companyRow("1102", "亞泥"),
		companyRow("1103", "嘉泥"),
	)))
	require.NoError(t, err)

	assert.Equal(t, "1234567", table.Rows[0][3])
	assert.Equal(t, "23.45", table.Rows[0][6])
	assert.Equal(t, "-", table.Rows[0][11])
}

func TestNormalize_NoTables(t *testing.T) {
	_, err := Normalize(`<html><body><p>查無資料</p></body></html>`)

	assert.ErrorIs(t, err, ErrNoTables)
	assert.NotErrorIs(t, err, ErrNoDataTables)
}

func TestNormalize_NoDataTables(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "layout tables only",
			html: page(),
		},
		{
			name: "only two data rows",
			html: page(revenueTable("水泥工業", companyRow("1101", "台泥"), companyRow("1102", "亞泥"))),
		},
		{
			name: "ten columns",
			html: page(`<table><tr><th>a</th><th>b</th><th>c</th><th>d</th><th>e</th><th>f</th><th>g</th><th>h</th><th>i</th><th>j</th></tr>` +
				`<tr><td>1101</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td></tr>` +
				`<tr><td>1102</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td></tr>` +
				`<tr><td>1103</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td><td>1</td></tr></table>`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Normalize(tt.html)

			assert.Nil(t, table)
			assert.True(t, errors.Is(err, ErrNoDataTables), "got %v", err)
			assert.NotErrorIs(t, err, ErrNoTables)
		})
	}
}

func TestNormalize_EmptyAfterFiltering(t *testing.T) {
	table, err := Normalize(page(revenueTable("水泥工業",
		companyRow("ABCD", "x"),
		summaryRow("小計"),
		summaryRow("總計"),
	)))
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, IndustryColumn, table.Columns[2])
}

func TestFilterRows(t *testing.T) {
	rows := [][]string{
		{"合計", "x"},
		{" 2330 ", "台積電"},
		{"平均", "x"},
		{"233", "x"},
		{"23301", "x"},
		{"小計", "x"},
		{"總計", "x"},
		{"1101", "台泥"},
		{},
	}

	got := FilterRows(rows)

	assert.Equal(t, [][]string{{" 2330 ", "台積電"}, {"1101", "台泥"}}, got)
}

func TestDataTables(t *testing.T) {
	mk := func(cols, rows int) RawTable {
		rt := RawTable{Header: make([][]string, cols), Rows: make([][]string, rows)}
		return rt
	}
	tables := []RawTable{mk(11, 3), mk(11, 2), mk(10, 5), mk(12, 5), mk(11, 40)}

	got := DataTables(tables)

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].NumRows())
	assert.Equal(t, 40, got[1].NumRows())
}

func TestConcat_PreservesOrder(t *testing.T) {
	a := RawTable{Header: [][]string{{"a"}, {"b"}}, Rows: [][]string{{"1", "x"}, {"2", "y"}}}
	b := RawTable{Header: [][]string{{"c"}, {"d"}}, Rows: [][]string{{"3", "z"}}}

	got := Concat([]RawTable{a, b})

	assert.Equal(t, a.Header, got.Header)
	assert.Equal(t, [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}}, got.Rows)
	assert.Equal(t, RawTable{}, Concat(nil))
}

func TestTable_Records(t *testing.T) {
	table := &Table{
		Columns: []string{"公司代號", "公司名稱", IndustryColumn},
		Rows:    [][]string{{"2330", "台積電", "電子工業"}},
	}

	assert.Equal(t, []map[string]string{
		{"公司代號": "2330", "公司名稱": "台積電", IndustryColumn: "電子工業"},
	}, table.Records())

	var empty *Table
	assert.Equal(t, 0, empty.Len())
}
