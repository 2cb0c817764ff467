package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"
)

const (
	MinSafetyMargin  = 60 * time.Second
	issueMaxAttempts = 3
	refreshKey       = "supplier-token"
	refreshTimeout   = 30 * time.Second
)

// TokenManager owns the cached supplier credential. Concurrent refreshes collapse into one call.
type TokenManager struct {
	baseURL    string
	apiKey     string
	margin     time.Duration
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger

	// retryInterval is the first backoff step between issue attempts.
	retryInterval time.Duration

	mu    sync.RWMutex
	cred  *Credential
	group singleflight.Group
}

type TokenManagerOption func(*TokenManager)

func WithRetryInterval(d time.Duration) TokenManagerOption {
	return func(m *TokenManager) { m.retryInterval = d }
}

func WithHTTPClient(c *http.Client) TokenManagerOption {
	return func(m *TokenManager) { m.httpClient = c }
}

func NewTokenManager(cfg config.SupplierConfig, clk clock.Clock, logger *slog.Logger, opts ...TokenManagerOption) *TokenManager {
	margin := cfg.TokenSafetyMargin
	if margin < MinSafetyMargin {
		margin = MinSafetyMargin
	}
	m := &TokenManager{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.ActiveAPIKey(),
		margin:        margin,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		clock:         clk,
		logger:        logger,
		retryInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetToken returns a valid bearer token, issuing or renewing it when the cached one is missing or expired.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	if m.apiKey == "" {
		return "", ErrAuthConfig
	}
	if cred, ok := m.valid(); ok {
		return cred.Token, nil
	}

	// the shared refresh outlives any single caller; each caller still stops waiting on its own ctx
	ch := m.group.DoChan(refreshKey, func() (any, error) {
		// another caller may have refreshed while we waited on the group
		if cred, ok := m.valid(); ok {
			return cred.Token, nil
		}
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		cred, err := m.refresh(refreshCtx)
		if err != nil {
			return "", err
		}
		m.mu.Lock()
		m.cred = cred
		m.mu.Unlock()
		return cred.Token, nil
	})

	select {
	case <-ctx.Done():
		return "", errs.Wrap(ctx.Err(), "waiting for supplier token")
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached credential so the next GetToken goes to the supplier.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
}

func (m *TokenManager) valid() (Credential, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred == nil || !m.clock.Now().Before(m.cred.ExpiresAt) {
		return Credential{}, false
	}
	return *m.cred, true
}

func (m *TokenManager) current() *Credential {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred
}

func (m *TokenManager) refresh(ctx context.Context) (*Credential, error) {
	if old := m.current(); old != nil {
		cred, err := m.renew(ctx, old.Token)
		if err == nil {
			return cred, nil
		}
		m.logger.Warn("supplier token renew failed, issuing a new one", "error", err)
	}

	var cred *Credential
	b := backoff.WithContext(backoff.WithMaxRetries(m.newBackOff(), issueMaxAttempts-1), ctx)
	err := backoff.Retry(func() error {
		c, err := m.issue(ctx)
		if err != nil {
			return err
		}
		cred = c
		return nil
	}, b)
	if err != nil {
		return nil, &AuthTransportError{Op: "issue", Err: err}
	}
	return cred, nil
}

func (m *TokenManager) newBackOff() *backoff.ExponentialBackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = m.retryInterval
	eb.MaxInterval = 10 * m.retryInterval
	eb.MaxElapsedTime = 0
	return eb
}

func (m *TokenManager) issue(ctx context.Context) (*Credential, error) {
	body, err := json.Marshal(tokenRequest{APIKey: m.apiKey})
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/token", bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return m.exchange(req)
}

func (m *TokenManager) renew(ctx context.Context, oldToken string) (*Credential, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/token-renew", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+oldToken)
	return m.exchange(req)
}

// exchange performs a token call. 4xx answers are marked permanent so issue does not retry them.
func (m *TokenManager) exchange(req *http.Request) (*Credential, error) {
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "token request")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "read token response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Status: resp.StatusCode, Body: string(payload)}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(reqErr)
		}
		return nil, reqErr
	}

	var tr tokenResponse
	if err := json.Unmarshal(payload, &tr); err != nil {
		return nil, backoff.Permanent(errs.Wrap(err, "decode token response"))
	}
	if tr.AccessToken == "" {
		return nil, backoff.Permanent(errs.New("token response without accessToken"))
	}

	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	return &Credential{
		Token:     tr.AccessToken,
		ExpiresAt: m.clock.Now().Add(lifetime - m.margin),
	}, nil
}
