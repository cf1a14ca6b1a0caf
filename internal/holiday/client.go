package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"

	"github.com/example/meeting-equity/internal/country"
)

const defaultBaseURL = "https://date.nager.at/api/v3"

// HTTPDoer is the minimal HTTP client surface the gateway needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client resolves holidays against a Nager.Date compatible public-holidays
// API. Responses are fetched per (year, country), cached, and indexed by
// date, so a 24-slot heatmap costs at most two upstream requests per country
// (the analyzed date may straddle a year boundary in local time).
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	cache      otter.Cache[string, map[string]string]
	logger     *slog.Logger
	attempts   uint
	delay      time.Duration
}

// ClientOption customises Client construction.
type ClientOption func(*Client)

// WithBaseURL overrides the upstream API root.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient substitutes the HTTP client, typically for tests.
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) { c.httpClient = doer }
}

// WithRetry adjusts the retry policy applied to upstream requests.
func WithRetry(attempts uint, delay time.Duration) ClientOption {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if delay > 0 {
			c.delay = delay
		}
	}
}

// NewClient constructs a gateway client with a cache TTL for year/country
// holiday sets. A nil logger falls back to slog.Default.
func NewClient(cacheTTL time.Duration, logger *slog.Logger, opts ...ClientOption) *Client {
	if cacheTTL <= 0 {
		cacheTTL = 12 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache := otter.Must(&otter.Options[string, map[string]string]{
		MaximumSize:      4_096,
		InitialCapacity:  64,
		ExpiryCalculator: otter.ExpiryWriting[string, map[string]string](cacheTTL),
	})

	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      *cache,
		logger:     logger,
		attempts:   3,
		delay:      200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsHoliday implements Gateway. Transport failures, non-2xx responses, and
// malformed payloads all surface as ErrGatewayUnavailable so the caller can
// degrade to "unknown holiday status".
func (c *Client) IsHoliday(ctx context.Context, localDate time.Time, countryCode string) (Lookup, error) {
	code := country.Normalize(countryCode)
	holidays, err := c.holidaysForYear(ctx, localDate.Year(), code)
	if err != nil {
		return Lookup{}, err
	}

	name, ok := holidays[DateKey(localDate)]
	if !ok {
		return Lookup{}, nil
	}
	return Lookup{IsHoliday: true, Name: name}, nil
}

// publicHoliday mirrors the relevant fields of the Nager.Date payload.
type publicHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

func (c *Client) holidaysForYear(ctx context.Context, year int, code string) (map[string]string, error) {
	key := fmt.Sprintf("%d/%s", year, code)
	if cached, ok := c.cache.GetIfPresent(key); ok {
		return cached, nil
	}

	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, code)

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Debug("failed to close holiday response body", "error", closeErr)
				}
			}()

			// Client errors other than rate limiting will not improve on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Unrecoverable(fmt.Errorf("holiday API returned %d", resp.StatusCode))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("holiday API returned %d", resp.StatusCode)
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(100*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying holiday lookup", "attempt", n+1, "year", year, "country", code, "error", err)
		}),
	)
	if err != nil {
		c.logger.Warn("holiday gateway unavailable", "year", year, "country", code, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	var payload []publicHoliday
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("holiday gateway returned malformed payload", "year", year, "country", code, "error", err)
		return nil, fmt.Errorf("%w: decoding response: %v", ErrGatewayUnavailable, err)
	}

	holidays := make(map[string]string, len(payload))
	for _, entry := range payload {
		name := entry.LocalName
		if name == "" {
			name = entry.Name
		}
		holidays[entry.Date] = name
	}

	c.cache.Set(key, holidays)
	return holidays, nil
}
