package mops

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joe-black-jb/mops-revenue/internal/revenue"
)

// Period is a ROC year and month.
type Period struct {
	Year  int
	Month int
}

// ParsePeriod reads "113/7" or "113-07".
func ParsePeriod(s string) (Period, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("period %q must look like 113/7", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("period %q: invalid year: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("period %q: invalid month: %w", s, err)
	}
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", p.Month)
	}
	return nil
}

// Next returns the following month.
func (p Period) Next() Period {
	if p.Month >= 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// After reports whether p is later than o.
func (p Period) After(o Period) bool {
	return p.Year > o.Year || (p.Year == o.Year && p.Month > o.Month)
}

func (p Period) String() string {
	return fmt.Sprintf("%d/%02d", p.Year, p.Month)
}

// SaveFunc persists one month and returns where it was written.
type SaveFunc func(ctx context.Context, table *revenue.Table, p Period) (string, error)

// DownloadMultipleMonths downloads every month from..to inclusive, one request
// at a time. After each month it pauses for delay before the next request. A
// month that fails to download or save is logged and skipped. The returned
// paths are those save reported.
func (d *Downloader) DownloadMultipleMonths(ctx context.Context, from, to Period, market revenue.Market, delay time.Duration, save SaveFunc) ([]string, error) {
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}

	var saved []string
	for p := from; !p.After(to); p = p.Next() {
		if p != from {
			d.log.Info("waiting before next request", "delay", delay)
			if err := pause(ctx, delay); err != nil {
				return saved, err
			}
		}

		table, err := d.DownloadRevenueData(ctx, p.Year, p.Month, market)
		if err != nil {
			d.log.Warn("skipping month", "period", p.String(), "error", err)
			continue
		}
		path, err := save(ctx, table, p)
		if err != nil {
			d.log.Error("failed to save month", "period", p.String(), "error", err)
			continue
		}
		if path != "" {
			saved = append(saved, path)
		}
	}
	return saved, nil
}

// pause blocks for delay or until ctx is done.
func pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
