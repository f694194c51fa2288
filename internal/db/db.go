package db

import (
	"encoding/json"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/joe-black-jb/mops-revenue/internal"
	"github.com/joe-black-jb/mops-revenue/internal/config"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

const batchSize = 200

// Connect opens the MySQL database described by cfg.
func Connect(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&internal.RevenueRecord{})
}

// ToRecords converts the cleaned table. The first two columns are the company
// code and name.
func ToRecords(table *revenue.Table, market revenue.Market, year, month int) ([]internal.RevenueRecord, error) {
	records := make([]internal.RevenueRecord, 0, table.Len())
	for _, row := range table.Records() {
		data, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		rec := internal.RevenueRecord{
			Market:   string(market),
			Year:     year,
			Month:    month,
			Industry: row[revenue.IndustryColumn],
			Data:     string(data),
		}
		if len(table.Columns) > 0 {
			rec.CompanyCode = row[table.Columns[0]]
		}
		if len(table.Columns) > 1 {
			rec.CompanyName = row[table.Columns[1]]
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveRevenue replaces the stored rows of one market and month.
func SaveRevenue(db *gorm.DB, table *revenue.Table, market revenue.Market, year, month int) (int, error) {
	records, err := ToRecords(table, market, year, month)
	if err != nil {
		return 0, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		// 同じ期間のデータは上書き
		if err := tx.Unscoped().
			Where("market = ? AND year = ? AND month = ?", string(market), year, month).
			Delete(&internal.RevenueRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, batchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("save revenue %s %d/%02d: %w", market, year, month, err)
	}
	return len(records), nil
}
