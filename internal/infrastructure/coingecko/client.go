package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bimakw/meme-swap/internal/domain/entities"
	"github.com/bimakw/meme-swap/internal/infrastructure/metrics"
)

// DefaultBaseURL is the public CoinGecko v3 API
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Listing request shape
const (
	Category      = "meme-token"
	VsCurrency    = "usd"
	Order         = "market_cap_desc"
	apiKeyParam   = "x_cg_demo_api_key"
	maxErrorBody  = 512
	resourceList  = "markets"
	resourceCoins = "coins"
)

// Listing defaults applied to unset ListOptions fields
const (
	DefaultSparkline = true
	DefaultPage      = 1
	DefaultPerPage   = 100
)

var (
	// ErrEmptyID is returned when a detail lookup has no token id
	ErrEmptyID = errors.New("token id is required")

	// ErrInvalidBaseURL is returned by NewClient for a base URL that is not an absolute http(s) URL
	ErrInvalidBaseURL = errors.New("invalid provider base url")
)

// APIError is a non-2xx answer from the provider
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coingecko: status %d: %s", e.StatusCode, e.Body)
}

// Config holds what the client needs to reach the provider
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Metrics    *metrics.Collector
}

// Client talks to the CoinGecko REST API
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	metrics    *metrics.Collector
}

// NewClient creates a new CoinGecko client
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimRight(cfg.BaseURL, "/")
	if raw == "" {
		raw = DefaultBaseURL
	}

	baseURL, err := ParseBaseURL(raw)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No timeout: a request lives as long as its context.
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
	}, nil
}

// ParseBaseURL checks that raw is an absolute http(s) URL
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		// the parse error quotes the input, keep it out of logs
		return nil, ErrInvalidBaseURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.RawQuery != "" {
		return nil, ErrInvalidBaseURL
	}
	return u, nil
}

// FetchTokenList fetches one page of the meme-token category ordered by market cap
func (c *Client) FetchTokenList(ctx context.Context, opts ListOptions) (entries []entities.TokenListEntry, err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveProviderRequest(resourceList, started, err) }()

	params := url.Values{}
	params.Set("vs_currency", VsCurrency)
	params.Set("category", Category)
	params.Set("order", Order)
	params.Set("sparkline", strconv.FormatBool(boolOr(opts.Sparkline, DefaultSparkline)))
	params.Set("page", strconv.Itoa(intOr(opts.Page, DefaultPage)))
	params.Set("per_page", strconv.Itoa(intOr(opts.PerPage, DefaultPerPage)))
	params.Set(apiKeyParam, c.apiKey)

	u := c.baseURL.JoinPath("coins", "markets")
	u.RawQuery = params.Encode()

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token list: %w", err)
	}

	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse token list: %w", err)
	}
	return entries, nil
}

// FetchTokenDetail fetches the full record for a token id
func (c *Client) FetchTokenDetail(ctx context.Context, id string) (detail *entities.TokenDetail, err error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	started := time.Now()
	defer func() { c.metrics.ObserveProviderRequest(resourceCoins, started, err) }()

	body, err := c.get(ctx, c.baseURL.JoinPath("coins", url.PathEscape(id)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token %s: %w", id, err)
	}

	return entities.ParseTokenDetail(body)
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, redact(err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redact(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt := string(body)
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: excerpt}
	}

	return body, nil
}

// redact strips the API key from the URL net/http puts into request and transport errors
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: "[redacted]", Err: urlErr.Err}
	}
	q := u.Query()
	if q.Has(apiKeyParam) {
		q.Set(apiKeyParam, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
