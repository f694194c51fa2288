package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joe-black-jb/mops-revenue/internal/api"
	"github.com/joe-black-jb/mops-revenue/internal/catalog"
	"github.com/joe-black-jb/mops-revenue/internal/config"
	"github.com/joe-black-jb/mops-revenue/internal/db"
	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/mops"
	"github.com/joe-black-jb/mops-revenue/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	deps := api.Deps{
		Fetcher: mops.NewDownloader(
			mops.WithBaseURL(cfg.BaseURL),
			mops.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
			mops.WithLogger(log),
		),
		Writer:       storage.NewCSVWriter(cfg.OutputDir, log),
		Logger:       log,
		TokenSecret:  cfg.APITokenSecret,
		AllowOrigins: cfg.AllowOrigins,
	}

	if cfg.AWS.Enabled() {
		sdkConfig, err := cfg.AWS.LoadAWS(context.Background())
		if err != nil {
			return err
		}
		if cfg.AWS.BucketName != "" {
			deps.Uploader = storage.NewS3Uploader(s3.NewFromConfig(sdkConfig), cfg.AWS.BucketName, cfg.AWS.BucketPrefix, log)
			log.Info("S3 upload enabled", "bucket", cfg.AWS.BucketName)
		}
		if cfg.AWS.TableName != "" {
			deps.Catalog = catalog.New(dynamodb.NewFromConfig(sdkConfig), cfg.AWS.TableName)
			log.Info("download catalog enabled", "table", cfg.AWS.TableName)
		}
	}

	if cfg.MySQL.Enabled() {
		// DB接続
		conn, err := db.Connect(cfg.MySQL)
		if err != nil {
			return err
		}
		if err := db.Migrate(conn); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		deps.DB = conn
		log.Info("MySQL persistence enabled", "host", cfg.MySQL.Host, "database", cfg.MySQL.Database)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewServer(deps).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 15*time.Second,
	}

	// ルーター起動
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", server.Addr, "output_dir", cfg.OutputDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
	return nil
}
