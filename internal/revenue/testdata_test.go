package revenue

import (
	"fmt"
	"strings"
)

// revenueTable renders one industry block the way the MOPS page does: an
// outer layout table holding the 11 column revenue table.
func revenueTable(industry string, rows ...string) string {
	var b strings.Builder
	b.WriteString(`<table class="hasBorder"><tr><th align="left">產業別：` + industry + `</th></tr><tr><td>`)
	b.WriteString(`<table class="hasBorder">`)
	b.WriteString(`<tr><th rowspan="2">公司代號</th><th rowspan="2">公司名稱</th><th colspan="5">營業收入</th><th colspan="3">累計營業收入</th><th rowspan="2">備註</th></tr>`)
	b.WriteString(`<tr><th>當月營收</th><th>上月營收</th><th>去年當月營收</th><th>上月比較<br>增減(%)</th><th>去年同月<br>增減(%)</th><th>當月累計營收</th><th>去年累計營收</th><th>前期比較<br>增減(%)</th></tr>`)
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</table></td></tr></table>`)
	return b.String()
}

func companyRow(code, name string) string {
	return fmt.Sprintf(`<tr><td align="center">%s</td><td>%s</td><td align="right">1,234,567</td><td align="right">1,000,000</td><td align="right">987,654</td><td align="right">23.45</td><td align="right">24.99</td><td align="right">8,765,432</td><td align="right">7,654,321</td><td align="right">14.51</td><td>-</td></tr>`, code, name)
}

func summaryRow(label string) string {
	return `<tr><th colspan="2">` + label + `</th><td>9,999,999</td><td>9,999,999</td><td>9,999,999</td><td>0.00</td><td>0.00</td><td>9,999,999</td><td>9,999,999</td><td>0.00</td><td></td></tr>`
}

func page(body ...string) string {
	return `<html><head><meta http-equiv="Content-Type" content="text/html; charset=big5"></head><body>` +
		`<table><tr><td>公開資訊觀測站</td></tr></table>` +
		strings.Join(body, `<br>`) +
		`</body></html>`
}
