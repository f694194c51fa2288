package internal

import (
	"gorm.io/gorm"
)

// RevenueRecord is one company row of a monthly revenue table.
type RevenueRecord struct {
	gorm.Model
	Market      string `gorm:"size:8;index:idx_period"`
	Year        int    `gorm:"index:idx_period"`
	Month       int    `gorm:"index:idx_period"`
	CompanyCode string `gorm:"size:8;index"`
	CompanyName string
	Industry    string
	// 列名をキーにした元の行 (JSON)
	Data string `gorm:"type:text"`
}

type DownloadRequest struct {
	MarketType string `json:"market_type"`
	Year       *int   `json:"year"`
	Month      *int   `json:"month"`
}

type DownloadResponse struct {
	Success  bool                `json:"success"`
	Filename string              `json:"filename"`
	Columns  []string            `json:"columns"`
	Data     []map[string]string `json:"data"`
	RowCount int                 `json:"row_count"`
}

type Industry struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
}

type Error struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
}
