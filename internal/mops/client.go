// Package mops downloads the monthly revenue summary pages of the Market
// Observation Post System.
package mops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

const (
	DefaultBaseURL = "https://mopsov.twse.com.tw"
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	// ErrDownloadFailed means the page could not be fetched.
	ErrDownloadFailed = errors.New("download failed")
	// ErrNoData means the page was fetched but holds no revenue rows.
	ErrNoData = errors.New("no data for this period")
)

// Downloader fetches and cleans revenue pages.
type Downloader struct {
	client  *http.Client
	baseURL string
	log     *logger.Logger
}

type Option func(*Downloader)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) { d.client = c }
}

// WithBaseURL points the downloader at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(d *Downloader) { d.baseURL = strings.TrimRight(u, "/") }
}

func WithLogger(l *logger.Logger) Option {
	return func(d *Downloader) { d.log = l }
}

func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: DefaultBaseURL,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// URL returns the page address, e.g. {base}/nas/t21/sii/t21sc03_113_7_0.html.
func (d *Downloader) URL(year, month int, market revenue.Market) string {
	return fmt.Sprintf("%s/nas/t21/%s/t21sc03_%d_%d_0.html", d.baseURL, market, year, month)
}

// DownloadRevenueData fetches one month of one market. year is a ROC year.
//
// Transport problems are reported as ErrDownloadFailed. A reachable page
// without revenue rows yields ErrNoData, or the revenue package's
// ErrNoTables/ErrNoDataTables when the page has no usable tables.
func (d *Downloader) DownloadRevenueData(ctx context.Context, year, month int, market revenue.Market) (*revenue.Table, error) {
	if _, err := revenue.ParseMarket(string(market)); err != nil {
		return nil, err
	}
	log := d.log.With("market", market, "year", year, "month", month)

	url := d.URL(year, month, market)
	log.Info("downloading revenue data", "url", url)

	body, err := d.fetch(ctx, url)
	if err != nil {
		log.Error("download failed", "error", err)
		return nil, err
	}

	table, err := revenue.Normalize(body)
	if err != nil {
		log.Warn("no usable tables", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if table.Len() == 0 {
		log.Warn("no rows left after cleaning")
		return nil, ErrNoData
	}

	log.Info("downloaded revenue data", "rows", table.Len())
	return table, nil
}

func (d *Downloader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP status code %d", ErrDownloadFailed, resp.StatusCode)
	}

	// ページは Big5 で配信される
	body, err := io.ReadAll(transform.NewReader(resp.Body, traditionalchinese.Big5.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrDownloadFailed, err)
	}
	return string(body), nil
}
