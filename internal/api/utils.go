package api

import (
	"github.com/joe-black-jb/mops-revenue/internal"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

type DownloadParams struct {
	Market revenue.Market
	Year   int
	Month  int
}

// ConvertDownloadBody validates the request body. market_type defaults to sii.
func ConvertDownloadBody(reqBody *internal.DownloadRequest) (DownloadParams, string, bool) {
	var params DownloadParams

	marketType := reqBody.MarketType
	if marketType == "" {
		marketType = string(revenue.MarketListed)
	}
	market, err := revenue.ParseMarket(marketType)
	if err != nil {
		return params, "Invalid market type", false
	}
	if reqBody.Year == nil || *reqBody.Year <= 0 {
		return params, "Year must be a positive ROC year", false
	}
	if reqBody.Month == nil || *reqBody.Month < 1 || *reqBody.Month > 12 {
		return params, "Month must be between 1 and 12", false
	}

	params.Market = market
	params.Year = *reqBody.Year
	params.Month = *reqBody.Month
	return params, "", true
}
