package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndustry(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"2330", "電子工業"},
		{"1101", "水泥工業"},
		{"2454", "半導體業"},
		{" 9103 ", "存託憑證"},
		{"6505", DefaultIndustry},
		{"9999", DefaultIndustry},
		{"4", DefaultIndustry},
		{"", DefaultIndustry},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Industry(tt.code))
		})
	}
}

func TestIndustry_EveryPrefix(t *testing.T) {
	for prefix, name := range IndustryMapping {
		assert.Len(t, []rune(prefix), 2)
		assert.NotEmpty(t, name)
		assert.Equal(t, name, Industry(prefix+"01"), prefix)
	}
}

func TestParseMarket(t *testing.T) {
	m, err := ParseMarket("sii")
	assert.NoError(t, err)
	assert.Equal(t, MarketListed, m)

	m, err = ParseMarket("otc")
	assert.NoError(t, err)
	assert.Equal(t, MarketOTC, m)

	for _, bad := range []string{"rotc", "SII", " otc ", "Otc", ""} {
		_, err = ParseMarket(bad)
		assert.ErrorIs(t, err, ErrInvalidMarket, bad)
	}
}

func TestROCYear(t *testing.T) {
	assert.Equal(t, 113, ToROC(2024))
	assert.Equal(t, 2024, ToAD(113))

	for _, x := range []int{-5000, -1, 0, 1, 1911, 2025, 99999} {
		assert.Equal(t, x, ToAD(ToROC(x)))
		assert.Equal(t, x, ToROC(ToAD(x)))
	}
}
