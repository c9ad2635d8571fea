package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/match-point/internal/metrics"
)

// DownloaderConfig holds configuration for the dataset downloader
type DownloaderConfig struct {
	BaseURL        string
	Dir            string
	RequestsPerSec float64
	Timeout        time.Duration
	MaxRetries     int
}

// DefaultDownloaderConfig returns recommended defaults
func DefaultDownloaderConfig() DownloaderConfig {
	return DownloaderConfig{
		RequestsPerSec: 2.0,
		Timeout:        60 * time.Second,
		MaxRetries:     3,
	}
}

// Downloader fetches yearly match files over HTTP with retries and rate
// limiting.
type Downloader struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
	dir     string
	logger  *logrus.Logger
}

// NewDownloader creates a dataset downloader
func NewDownloader(cfg DownloaderConfig, logger *logrus.Logger) *Downloader {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = DefaultDownloaderConfig().RequestsPerSec
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Downloader{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		baseURL: cfg.BaseURL,
		dir:     cfg.Dir,
		logger:  logger,
	}
}

// FetchYear downloads a single yearly file into the data directory. Existing
// files are left untouched.
func (d *Downloader) FetchYear(ctx context.Context, year int) error {
	name := YearlyFileName(year)
	dest := filepath.Join(d.dir, name)

	if _, err := os.Stat(dest); err == nil {
		d.logger.WithField("year", year).Debug("Yearly file already present")
		return nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/%s", d.baseURL, name)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.DatasetDownloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.DatasetDownloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := writeAtomic(dest, resp.Body); err != nil {
		metrics.DatasetDownloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.DatasetDownloadsTotal.WithLabelValues("success").Inc()
	d.logger.WithFields(logrus.Fields{
		"year": year,
		"file": name,
	}).Info("Yearly file downloaded")
	return nil
}

// FetchRange downloads every yearly file in [startYear, endYear]. A missing
// year upstream is logged and skipped rather than failing the whole run.
func (d *Downloader) FetchRange(ctx context.Context, startYear, endYear int) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	for year := startYear; year <= endYear; year++ {
		if err := d.FetchYear(ctx, year); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.WithError(err).WithField("year", year).Warn("Yearly download failed")
		}
	}
	return nil
}

// writeAtomic streams body to a temp file and renames it into place so a
// partial download never masquerades as a complete yearly file.
func writeAtomic(dest string, body io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
