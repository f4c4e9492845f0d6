package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inbucket/html2text"

	"github.com/sandevgo/membot/internal/core"
	"github.com/sandevgo/membot/pkg/retry"
)

const (
	maxFetchSize        = 2 << 20 // 2MB
	defaultFetchTimeout = 15 * time.Second
)

// Fetcher downloads a page and strips it to readable text.
type Fetcher struct {
	client  *http.Client
	retrier *retry.Retrier
}

func NewFetcher() *Fetcher {
	return NewFetcherWithTimeout(defaultFetchTimeout, nil)
}

func NewFetcherWithTimeout(timeout time.Duration, retryCfg *retry.Config) *Fetcher {
	if retryCfg == nil {
		retryCfg = retry.NewDefaultConfig()
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		retrier: retry.NewRetrier(retryCfg),
	}
}

// Fetch downloads url and converts the body to plain text. Transient
// failures are retried with backoff; the body is capped at 2MB.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body string
	err := f.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", core.MemBotUserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
			// Client errors won't heal on retry; 429 is the exception.
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(err)
			}
			return err
		}

		limited := io.LimitReader(resp.Body, maxFetchSize)
		body, err = html2text.FromReader(limited, html2text.Options{
			OmitLinks:    true,
			PrettyTables: false,
		})
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}
