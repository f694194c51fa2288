package revenue

import "strings"

// DefaultIndustry is used for codes whose prefix is not in IndustryMapping.
const DefaultIndustry = "其他"

// IndustryColumn is the label of the column inserted by Normalize.
const IndustryColumn = "產業別"

// IndustryMapping maps the first two digits of a company code to its industry.
var IndustryMapping = map[string]string{
	"11": "水泥工業",
	"12": "食品工業",
	"13": "塑膠工業",
	"14": "紡織纖維",
	"15": "電機機械",
	"16": "電器電纜",
	"17": "化學生技醫療",
	"18": "玻璃陶瓷",
	"19": "造紙工業",
	"20": "鋼鐵工業",
	"21": "橡膠工業",
	"22": "汽車工業",
	"23": "電子工業",
	"24": "半導體業",
	"25": "電腦及週邊設備業",
	"26": "光電業",
	"27": "通信網路業",
	"28": "電子零組件業",
	"29": "電子通路業",
	"30": "資訊服務業",
	"31": "其他電子業",
	"41": "建材營造",
	"42": "航運業",
	"43": "觀光餐旅",
	"44": "金融保險",
	"45": "貿易百貨",
	"46": "綜合",
	"47": "油電燃氣",
	"48": "其他",
	"49": "其他",
	"50": "其他",
	"91": "存託憑證",
}

// Industry returns the industry label for a company code.
func Industry(companyCode string) string {
	code := []rune(strings.TrimSpace(companyCode))
	if len(code) < 2 {
		return DefaultIndustry
	}
	if name, ok := IndustryMapping[string(code[:2])]; ok {
		return name
	}
	return DefaultIndustry
}
