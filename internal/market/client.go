// Package market resolves user-supplied stock references and fetches live
// quotes from the Alpha Vantage API.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// ErrQuoteUnavailable means neither the direct fetch nor the one search
// fallback produced a usable price.
var ErrQuoteUnavailable = errors.New("no quote available")

// Quote is the subset of a GLOBAL_QUOTE response the bot displays. Price and
// change fields are kept as the API's formatted strings.
type Quote struct {
	Symbol           string
	Price            string
	Change           string
	ChangePercent    string
	LatestTradingDay string
}

// Client talks to the Alpha Vantage HTTP API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Client for the given API key.
func NewClient(apiKey string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    http.DefaultClient,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

type symbolSearchResponse struct {
	BestMatches []map[string]string `json:"bestMatches"`
}

// GlobalQuote fetches the latest quote for symbol. A response without a
// usable price field returns (nil, nil): Alpha Vantage answers unknown
// symbols with an empty object, not an error status.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (*Quote, error) {
	var resp globalQuoteResponse
	if err := c.get(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	}, &resp); err != nil {
		return nil, fmt.Errorf("global quote for %s: %w", symbol, err)
	}

	price := resp.GlobalQuote["05. price"]
	if price == "" {
		return nil, nil
	}
	return &Quote{
		Symbol:           symbol,
		Price:            price,
		Change:           orDefault(resp.GlobalQuote["09. change"], "0"),
		ChangePercent:    resp.GlobalQuote["10. change percent"],
		LatestTradingDay: resp.GlobalQuote["07. latest trading day"],
	}, nil
}

// SymbolSearch returns the best-match ticker for a keyword, or "" when the
// search comes back empty.
func (c *Client) SymbolSearch(ctx context.Context, keyword string) (string, error) {
	var resp symbolSearchResponse
	if err := c.get(ctx, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keyword},
	}, &resp); err != nil {
		return "", fmt.Errorf("symbol search for %q: %w", keyword, err)
	}
	if len(resp.BestMatches) == 0 {
		return "", nil
	}
	return resp.BestMatches[0]["1. symbol"], nil
}

// Lookup fetches a quote for a resolution. When the direct symbol yields no
// price it searches by the originally matched keyword and refetches exactly
// once; still nothing means ErrQuoteUnavailable.
func (c *Client) Lookup(ctx context.Context, res Resolution) (*Quote, error) {
	quote, err := c.GlobalQuote(ctx, res.Symbol)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		found, err := c.SymbolSearch(ctx, res.Keyword)
		if err != nil {
			return nil, err
		}
		if found != "" {
			quote, err = c.GlobalQuote(ctx, found)
			if err != nil {
				return nil, err
			}
		}
	}
	if quote == nil {
		return nil, fmt.Errorf("%w for %q", ErrQuoteUnavailable, res.Keyword)
	}
	return quote, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling market API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market API status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding market API response: %w", err)
	}
	c.logger.Debug("market API call",
		zap.String("function", params.Get("function")),
		zap.String("symbol", params.Get("symbol")),
		zap.String("keywords", params.Get("keywords")))
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
