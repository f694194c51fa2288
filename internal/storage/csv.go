// Package storage writes cleaned revenue tables to disk and, optionally, S3.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

// utf-8-sig: Excel で文字化けしないよう BOM を付ける
var bom = []byte{0xEF, 0xBB, 0xBF}

var ErrEmptyTable = errors.New("no data to save")

// FileName returns revenue_{market}_{year}_{month:02d}.csv.
func FileName(market revenue.Market, year, month int) string {
	return fmt.Sprintf("revenue_%s_%d_%02d.csv", market, year, month)
}

// CSVWriter saves tables under one output directory.
type CSVWriter struct {
	dir string
	log *logger.Logger
}

func NewCSVWriter(dir string, log *logger.Logger) *CSVWriter {
	if log == nil {
		log = logger.Discard()
	}
	return &CSVWriter{dir: dir, log: log}
}

// Path returns where Save writes the given month.
func (w *CSVWriter) Path(market revenue.Market, year, month int) string {
	return filepath.Join(w.dir, FileName(market, year, month))
}

// Save writes the table as UTF-8 CSV with a BOM, replacing any existing file.
func (w *CSVWriter) Save(table *revenue.Table, market revenue.Market, year, month int) (string, error) {
	if table.Len() == 0 {
		w.log.Warn("no data to save", "market", market, "year", year, "month", month)
		return "", ErrEmptyTable
	}
	if err := os.MkdirAll(w.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := w.Path(market, year, month)
	if _, err := os.Stat(path); err == nil {
		w.log.Info("overwriting existing file", "path", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(bom); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(table.Columns); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	w.log.Info("data saved", "path", path, "rows", table.Len())
	return path, nil
}
