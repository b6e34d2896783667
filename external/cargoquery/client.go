package cargoquery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/maccabipedia/clubstats/internal/domain/rawdata"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
	"github.com/maccabipedia/clubstats/internal/platform/resilience"
	"github.com/maccabipedia/clubstats/internal/usecase"
)

const (
	defaultPageSize    = 500
	defaultTimeout     = 20 * time.Second
	maxResponseBytes   = 16 << 20
	matchRecordsPath   = "/matches"
	maxPagesPerRequest = 200
)

var errCargoTransient = crerr.New("cargo query transient failure")

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	PageSize       int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls match rows from the wiki's cargo-query endpoint. Rows come
// back page by page; a short page ends the scan.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	pageSize       int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

type pageEnvelope struct {
	Rows   []rawdata.MatchRecord `json:"rows"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		pageSize:       pageSize,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchMatchRecords walks the paginated match table and returns every row.
func (c *Client) FetchMatchRecords(ctx context.Context) ([]rawdata.MatchRecord, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("cargo base url is empty")
	}

	out := make([]rawdata.MatchRecord, 0, c.pageSize)
	for page := 0; page < maxPagesPerRequest; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offset := page * c.pageSize
		var envelope pageEnvelope
		if err := c.doJSON(ctx, matchRecordsPath, map[string]string{
			"limit":  strconv.Itoa(c.pageSize),
			"offset": strconv.Itoa(offset),
		}, &envelope); err != nil {
			return nil, fmt.Errorf("fetch match rows offset=%d: %w", offset, err)
		}

		out = append(out, envelope.Rows...)
		if len(envelope.Rows) < c.pageSize {
			c.logger.InfoContext(ctx, "cargo match scan complete", "pages", page+1, "rows", len(out))
			return out, nil
		}
	}
	return nil, fmt.Errorf("cargo match scan exceeded %d pages", maxPagesPerRequest)
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cargo circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: wiki cargo endpoint is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errCargoTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode cargo payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, retryable, err := c.once(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "cargo request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) once(fullURL string) ([]byte, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, true, fmt.Errorf("%w: send request: %v", errCargoTransient, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return body, false, nil
	case isRetryableStatus(status):
		return nil, true, fmt.Errorf("%w: cargo status=%d body=%s", errCargoTransient, status, abbreviateBody(body))
	default:
		return nil, false, fmt.Errorf("cargo status=%d body=%s", status, abbreviateBody(body))
	}
}

func (c *Client) buildURL(path string, query map[string]string) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	for key, value := range query {
		args.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := args.String(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func isRetryableStatus(status int) bool {
	if status == fasthttp.StatusTooManyRequests || status == fasthttp.StatusRequestTimeout {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
