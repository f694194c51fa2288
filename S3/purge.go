// Command S3 deletes the revenue CSVs uploaded under BUCKET_PREFIX.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joe-black-jb/mops-revenue/internal/config"
	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/storage"
)

func main() {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	prefix := flag.String("prefix", cfg.AWS.BucketPrefix, "key prefix to delete (empty for the whole bucket)")
	deleteRate := flag.Int("rate", storage.DefaultDeleteRate, "max deletes per second (0 for no limit)")
	flag.Parse()

	if cfg.AWS.BucketName == "" {
		log.Error("BUCKET_NAME is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	sdkConfig, err := cfg.AWS.LoadAWS(ctx)
	if err != nil {
		log.Error("load aws config", "error", err)
		os.Exit(1)
	}
	uploader := storage.NewS3Uploader(s3.NewFromConfig(sdkConfig), cfg.AWS.BucketName, cfg.AWS.BucketPrefix, log)
	uploader.SetDeleteRate(*deleteRate)

	deleted, err := uploader.Purge(ctx, *prefix)
	if err != nil {
		log.Error("purge failed", "deleted", deleted, "error", err)
		os.Exit(1)
	}
	// 処理完了
	log.Info("purge finished", "bucket", cfg.AWS.BucketName, "prefix", *prefix, "deleted", deleted, "elapsed", time.Since(start))
}
