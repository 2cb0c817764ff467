// Package syncdriver pages through the admin catalog sync endpoint until the
// supplier reports no further pages.
package syncdriver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront-sync/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const syncPath = "/api/admin/catalog/sync"

type Config struct {
	BaseURL      string
	Token        string
	StartPage    int
	MaxPages     int // 0 means until totalPages
	PageInterval time.Duration
	MaxRetries   uint64
	Timeout      time.Duration
}

// PageResult mirrors the endpoint's JSON body.
type PageResult struct {
	OK             bool   `json:"ok"`
	Page           int    `json:"page"`
	TotalPages     int    `json:"totalPages"`
	ProductsInPage int    `json:"productsInPage"`
	PricesUpdated  int    `json:"pricesUpdated"`
	SkippedChunks  int    `json:"skippedChunks"`
	Error          string `json:"error"`
}

type Summary struct {
	Pages         int
	Products      int
	PricesUpdated int
	SkippedChunks int
	LastPage      int
	TotalPages    int
}

type Driver struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Driver {
	if cfg.StartPage < 1 {
		cfg.StartPage = 1
	}
	limit := rate.Inf
	if cfg.PageInterval > 0 {
		limit = rate.Every(cfg.PageInterval)
	}
	return &Driver{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Run syncs pages sequentially. It returns the summary so far when a page
// exhausts its retries.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	for page := d.cfg.StartPage; ; page++ {
		if d.cfg.MaxPages > 0 && sum.Pages >= d.cfg.MaxPages {
			return sum, nil
		}
		if err := d.limiter.Wait(ctx); err != nil {
			return sum, err
		}

		res, err := d.syncWithRetry(ctx, page)
		if err != nil {
			return sum, errs.Wrapf(err, "page %d", page)
		}

		sum.Pages++
		sum.Products += res.ProductsInPage
		sum.PricesUpdated += res.PricesUpdated
		sum.SkippedChunks += res.SkippedChunks
		sum.LastPage = res.Page
		sum.TotalPages = res.TotalPages
		d.logger.Info("page synced",
			"page", res.Page,
			"total_pages", res.TotalPages,
			"products", res.ProductsInPage,
			"prices_updated", res.PricesUpdated,
			"skipped_chunks", res.SkippedChunks,
		)

		if res.TotalPages == 0 || page >= res.TotalPages {
			return sum, nil
		}
	}
}

func (d *Driver) syncWithRetry(ctx context.Context, page int) (*PageResult, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.cfg.MaxRetries), ctx)

	var out *PageResult
	op := func() error {
		res, err := d.syncPage(ctx, page)
		if err != nil {
			return err
		}
		out = res
		return nil
	}
	notify := func(err error, wait time.Duration) {
		d.logger.Warn("page sync failed, retrying", "page", page, "wait", wait, "error", err.Error())
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Driver) syncPage(ctx context.Context, page int) (*PageResult, error) {
	body, err := json.Marshal(map[string]int{"page": page})
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	url := strings.TrimRight(d.cfg.BaseURL, "/") + syncPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.Token)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var res PageResult
	decodeErr := json.Unmarshal(raw, &res)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, failureText(&res, raw))
	case resp.StatusCode >= http.StatusBadRequest:
		// auth and validation failures do not improve on retry
		return nil, backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, failureText(&res, raw)))
	case decodeErr != nil:
		return nil, backoff.Permanent(errs.Wrap(decodeErr, "decode sync response"))
	case !res.OK:
		return nil, fmt.Errorf("sync reported failure: %s", res.Error)
	}
	return &res, nil
}

func failureText(res *PageResult, raw []byte) string {
	if res.Error != "" {
		return res.Error
	}
	return strings.TrimSpace(string(raw))
}
