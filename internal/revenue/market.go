package revenue

import (
	"errors"
	"fmt"
)

// Market is the MOPS market segment a company is listed on.
type Market string

const (
	// 上市
	MarketListed Market = "sii"
	// 上櫃
	MarketOTC Market = "otc"
)

var ErrInvalidMarket = errors.New("market type must be 'sii' or 'otc'")

// ParseMarket accepts exactly "sii" or "otc".
func ParseMarket(s string) (Market, error) {
	switch m := Market(s); m {
	case MarketListed, MarketOTC:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMarket, s)
}

func (m Market) String() string {
	return string(m)
}
