// Command batch downloads monthly revenue CSVs without the web server.
//
//	batch download --market sii --year 113 --month 7
//	batch range --market otc --from 113/1 --to 113/6 --delay 2s
//	batch token --subject name --ttl 24h
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/joe-black-jb/mops-revenue/internal/config"
	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/mops"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
	"github.com/joe-black-jb/mops-revenue/internal/storage"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "batch",
	Short:         "Download MOPS monthly revenue reports as CSV",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		log = logger.NewWithWriter(cfg.LogLevel, cmd.ErrOrStderr())
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// parseMarketFlag is forgiving about case and surrounding spaces.
func parseMarketFlag(v string) (revenue.Market, error) {
	return revenue.ParseMarket(strings.ToLower(strings.TrimSpace(v)))
}

func newDownloader() *mops.Downloader {
	return mops.NewDownloader(
		mops.WithBaseURL(cfg.BaseURL),
		mops.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		mops.WithLogger(log),
	)
}

// saver writes the CSV and, when a bucket is configured, uploads it.
type saver struct {
	writer   *storage.CSVWriter
	uploader *storage.S3Uploader
}

func newSaver(ctx context.Context) (*saver, error) {
	s := &saver{writer: storage.NewCSVWriter(cfg.OutputDir, log)}
	if cfg.AWS.BucketName == "" {
		return s, nil
	}
	sdkConfig, err := cfg.AWS.LoadAWS(ctx)
	if err != nil {
		return nil, err
	}
	s.uploader = storage.NewS3Uploader(s3.NewFromConfig(sdkConfig), cfg.AWS.BucketName, cfg.AWS.BucketPrefix, log)
	return s, nil
}

func (s *saver) save(market revenue.Market) mops.SaveFunc {
	return func(ctx context.Context, table *revenue.Table, p mops.Period) (string, error) {
		path, err := s.writer.Save(table, market, p.Year, p.Month)
		if err != nil {
			return "", err
		}
		if s.uploader != nil {
			if _, err := s.uploader.Upload(ctx, path, market, p.Year, p.Month); err != nil {
				log.Error("S3 upload failed", "path", path, "error", err)
			}
		}
		return path, nil
	}
}
