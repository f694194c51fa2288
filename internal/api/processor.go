package api

import (
	"context"
	"fmt"

	"github.com/joe-black-jb/mops-revenue/internal"
	"github.com/joe-black-jb/mops-revenue/internal/catalog"
	"github.com/joe-black-jb/mops-revenue/internal/db"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

// DownloadProcessor downloads one month, saves the CSV and feeds the optional
// sinks. Only the download and the CSV write can fail the request; sink
// errors are logged.
func (s *Server) DownloadProcessor(ctx context.Context, params DownloadParams) (*internal.DownloadResponse, error) {
	log := s.log.With("market", params.Market, "year", params.Year, "month", params.Month)

	table, err := s.fetcher.DownloadRevenueData(ctx, params.Year, params.Month, params.Market)
	if err != nil {
		return nil, err
	}

	filename, err := s.writer.Save(table, params.Market, params.Year, params.Month)
	if err != nil {
		return nil, fmt.Errorf("save csv: %w", err)
	}

	var s3Key string
	if s.uploader != nil {
		s3Key, err = s.uploader.Upload(ctx, filename, params.Market, params.Year, params.Month)
		if err != nil {
			log.Error("S3 upload failed", "error", err)
		}
	}

	if s.db != nil {
		n, err := db.SaveRevenue(s.db.WithContext(ctx), table, params.Market, params.Year, params.Month)
		if err != nil {
			log.Error("MySQL save failed", "error", err)
		} else {
			log.Info("saved rows to MySQL", "rows", n)
		}
	}

	if s.catalog != nil {
		_, err := s.catalog.Record(ctx, catalog.Entry{
			Market:   params.Market,
			Year:     params.Year,
			Month:    params.Month,
			FileName: filename,
			S3Key:    s3Key,
			RowCount: table.Len(),
		})
		if err != nil {
			log.Error("catalog record failed", "error", err)
		}
	}

	return &internal.DownloadResponse{
		Success:  true,
		Filename: filename,
		Columns:  table.Columns,
		Data:     table.Records(),
		RowCount: table.Len(),
	}, nil
}

// ListDownloadsProcessor returns catalog entries for market ("" for all).
func (s *Server) ListDownloadsProcessor(ctx context.Context, market revenue.Market) ([]catalog.Entry, error) {
	if s.catalog == nil {
		return nil, errCatalogDisabled
	}
	return s.catalog.List(ctx, market)
}
