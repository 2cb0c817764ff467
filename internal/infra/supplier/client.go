package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/errs"
)

// TokenSource is satisfied by *TokenManager.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
	Invalidate()
}

// Client is a stateless wrapper over the supplier listing and pricing endpoints.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.SupplierConfig, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *Client) ListProducts(ctx context.Context, page int, filters Filters) (*ProductPage, error) {
	var out ProductPage
	if err := c.post(ctx, "/products", productsRequest{Page: page, Filters: filters}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPrices looks up at most MaxPriceBatch item numbers. Callers chunk larger sets.
func (c *Client) GetPrices(ctx context.Context, itemNos []string) (*PriceList, error) {
	if len(itemNos) > MaxPriceBatch {
		return nil, errs.Wrapf(ErrPriceBatchTooLarge, "%d ids, limit %d", len(itemNos), MaxPriceBatch)
	}
	var out PriceList
	if err := c.post(ctx, "/prices", pricesRequest{ItemNos: itemNos}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends an authenticated JSON request. A 401 invalidates the token and retries once.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errs.Wrap(err, "encode supplier request")
	}

	err = c.do(ctx, path, body, out)
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Status == http.StatusUnauthorized {
		c.logger.Info("supplier rejected token, retrying with a fresh one", "path", path)
		c.tokens.Invalidate()
		err = c.do(ctx, path, body, out)
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, body []byte, out any) error {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "build supplier request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrapf(err, "supplier %s", path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrapf(err, "read supplier %s response", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Status: resp.StatusCode, Body: string(payload)}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errs.Wrapf(err, "decode supplier %s response", path)
	}
	return nil
}
