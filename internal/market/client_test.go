package market

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAlphaVantage serves canned GLOBAL_QUOTE and SYMBOL_SEARCH responses
// and counts calls per function.
type fakeAlphaVantage struct {
	quotes  map[string]map[string]string // symbol -> Global Quote payload
	matches map[string]string            // keyword -> best-match symbol
	calls   map[string]int
}

func (f *fakeAlphaVantage) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn := r.URL.Query().Get("function")
		f.calls[fn]++
		switch fn {
		case "GLOBAL_QUOTE":
			payload := f.quotes[r.URL.Query().Get("symbol")]
			_ = json.NewEncoder(w).Encode(map[string]any{"Global Quote": payload})
		case "SYMBOL_SEARCH":
			var best []map[string]string
			if sym, ok := f.matches[r.URL.Query().Get("keywords")]; ok {
				best = append(best, map[string]string{"1. symbol": sym})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"bestMatches": best})
		default:
			http.Error(w, "unknown function", http.StatusBadRequest)
		}
	}
}

func newTestClient(t *testing.T, fake *fakeAlphaVantage) *Client {
	t.Helper()
	if fake.calls == nil {
		fake.calls = make(map[string]int)
	}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewClient("test-key", zap.NewNop(), WithBaseURL(srv.URL))
}

func quotePayload(price string) map[string]string {
	return map[string]string{
		"05. price":              price,
		"09. change":             "1.50",
		"10. change percent":     "1.02%",
		"07. latest trading day": "2026-08-28",
	}
}

func TestLookup_DirectHit(t *testing.T) {
	fake := &fakeAlphaVantage{
		quotes: map[string]map[string]string{"AAPL": quotePayload("148.10")},
	}
	c := newTestClient(t, fake)

	q, err := c.Lookup(context.Background(), Resolution{Symbol: "AAPL", Keyword: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "148.10", q.Price)
	assert.Equal(t, "1.50", q.Change)
	assert.Equal(t, 1, fake.calls["GLOBAL_QUOTE"])
	assert.Zero(t, fake.calls["SYMBOL_SEARCH"], "no fallback on a direct hit")
}

func TestLookup_FallbackOnce(t *testing.T) {
	fake := &fakeAlphaVantage{
		quotes:  map[string]map[string]string{"RELIANCE.BSE": quotePayload("2950.00")},
		matches: map[string]string{"reliance": "RELIANCE.BSE"},
	}
	c := newTestClient(t, fake)

	q, err := c.Lookup(context.Background(), Resolution{Symbol: "RELIANCE.NS", Keyword: "reliance"})
	require.NoError(t, err)
	assert.Equal(t, "RELIANCE.BSE", q.Symbol, "quote carries the searched symbol")
	assert.Equal(t, "2950.00", q.Price)
	assert.Equal(t, 2, fake.calls["GLOBAL_QUOTE"], "direct fetch plus exactly one refetch")
	assert.Equal(t, 1, fake.calls["SYMBOL_SEARCH"])
}

func TestLookup_BothEmpty(t *testing.T) {
	fake := &fakeAlphaVantage{}
	c := newTestClient(t, fake)

	_, err := c.Lookup(context.Background(), Resolution{Symbol: "NOPE", Keyword: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuoteUnavailable))
	assert.Equal(t, 1, fake.calls["GLOBAL_QUOTE"], "no refetch without a search match")
	assert.Equal(t, 1, fake.calls["SYMBOL_SEARCH"])
}

func TestGlobalQuote_MissingPriceIsNotAnError(t *testing.T) {
	fake := &fakeAlphaVantage{
		quotes: map[string]map[string]string{"AAPL": {"01. symbol": "AAPL"}},
	}
	c := newTestClient(t, fake)

	q, err := c.GlobalQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestGlobalQuote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	c := NewClient("test-key", zap.NewNop(), WithBaseURL(srv.URL))

	_, err := c.GlobalQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
