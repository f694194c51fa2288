package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

// S3API is the part of *s3.Client the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Uploader copies saved CSV files to a bucket.
type S3Uploader struct {
	client S3API
	bucket string
	prefix string
	log    *logger.Logger

	// Purge の DeleteObject 呼び出しを制限する
	deleteLimiter *rate.Limiter
}

// DefaultDeleteRate is the Purge delete rate per second, below the S3 limit of
// 3,500 DELETE requests per second per prefix.
const DefaultDeleteRate = 1000

func NewS3Uploader(client S3API, bucket, prefix string, log *logger.Logger) *S3Uploader {
	if log == nil {
		log = logger.Discard()
	}
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		prefix:        prefix,
		log:           log,
		deleteLimiter: rate.NewLimiter(DefaultDeleteRate, DefaultDeleteRate),
	}
}

// SetDeleteRate limits Purge to perSecond deletes (burst of one second).
func (u *S3Uploader) SetDeleteRate(perSecond int) {
	if perSecond <= 0 {
		u.deleteLimiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	u.deleteLimiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
}

// Key returns {prefix}/{market}/revenue_{market}_{year}_{month:02d}.csv.
func (u *S3Uploader) Key(market revenue.Market, year, month int) string {
	return path.Join(u.prefix, string(market), FileName(market, year, month))
}

// Upload puts the local CSV file at Key. Existing objects are replaced.
func (u *S3Uploader) Upload(ctx context.Context, localPath string, market revenue.Market, year, month int) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filepath.Base(localPath), err)
	}
	defer f.Close()

	key := u.Key(market, year, month)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("S3 PutObject %s: %w", key, err)
	}
	u.log.Info("uploaded to S3", "bucket", u.bucket, "key", key)
	return key, nil
}

// Purge deletes every object under prefix, at most the delete rate per second,
// and returns how many were removed.
func (u *S3Uploader) Purge(ctx context.Context, prefix string) (int, error) {
	paginator := s3.NewListObjectsV2Paginator(u.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(u.bucket),
		Prefix: aws.String(prefix),
	})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		deleted int
		errs    []error
	)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			wg.Wait()
			return deleted, fmt.Errorf("list objects: %w", err)
		}
		for _, object := range output.Contents {
			if err := u.deleteLimiter.Wait(ctx); err != nil {
				wg.Wait()
				return deleted, err
			}
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
					Bucket: aws.String(u.bucket),
					Key:    aws.String(key),
				})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					u.log.Error("S3 deleteObject error", "key", key, "error", err)
					errs = append(errs, err)
					return
				}
				deleted++
				u.log.Info("deleted", "key", key)
			}(aws.ToString(object.Key))
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		return deleted, fmt.Errorf("failed to delete %d objects: %w", len(errs), errs[0])
	}
	return deleted, nil
}
