package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "cg-secret-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Config{BaseURL: server.URL, APIKey: testAPIKey})
	require.NoError(t, err)
	return client
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestFetchTokenListDefaults(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("accept"))
		got = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"pepe","symbol":"pepe","name":"Pepe","image":"https://img/pepe.png","current_price":0.00001,
			 "market_cap":4000000000,"market_cap_rank":30,"total_volume":500000000,"price_change_percentage_24h":-2.5},
			{"id":"illiquid","symbol":"ill","name":"Illiquid","image":"https://img/ill.png","current_price":0.1,
			 "market_cap":null,"market_cap_rank":null,"total_volume":null,"price_change_percentage_24h":null}
		]`))
	})

	entries, err := client.FetchTokenList(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "usd", got.Get("vs_currency"))
	assert.Equal(t, "meme-token", got.Get("category"))
	assert.Equal(t, "market_cap_desc", got.Get("order"))
	assert.Equal(t, "true", got.Get("sparkline"))
	assert.Equal(t, "1", got.Get("page"))
	assert.Equal(t, "100", got.Get("per_page"))
	assert.Equal(t, testAPIKey, got.Get("x_cg_demo_api_key"))

	require.Len(t, entries, 2)
	assert.Equal(t, "pepe", entries[0].ID)
	require.NotNil(t, entries[0].MarketCapRank)
	assert.Equal(t, 30, *entries[0].MarketCapRank)
	require.NotNil(t, entries[0].PriceChangePercentage24h)
	assert.Equal(t, -2.5, *entries[0].PriceChangePercentage24h)

	assert.Nil(t, entries[1].MarketCap)
	assert.Nil(t, entries[1].MarketCapRank)
	assert.Nil(t, entries[1].TotalVolume)
	assert.Nil(t, entries[1].PriceChangePercentage24h)
}

func TestFetchTokenListPassesOptionsThrough(t *testing.T) {
	tests := []struct {
		name          string
		opts          ListOptions
		wantSparkline string
		wantPage      string
		wantPerPage   string
	}{
		{"explicit", ListOptions{Sparkline: boolPtr(false), Page: intPtr(3), PerPage: intPtr(25)}, "false", "3", "25"},
		{"zero page", ListOptions{Page: intPtr(0)}, "true", "0", "100"},
		{"negative per page", ListOptions{PerPage: intPtr(-5)}, "true", "1", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got url.Values
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query()
				w.Write([]byte(`[]`))
			})

			entries, err := client.FetchTokenList(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Empty(t, entries)

			assert.Equal(t, tt.wantSparkline, got.Get("sparkline"))
			assert.Equal(t, tt.wantPage, got.Get("page"))
			assert.Equal(t, tt.wantPerPage, got.Get("per_page"))
		})
	}
}

func TestFetchTokenListErrors(t *testing.T) {
	t.Run("non json body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>bad gateway</html>`))
		})

		_, err := client.FetchTokenList(context.Background(), ListOptions{})
		require.Error(t, err)
	})

	t.Run("error status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"status":{"error_code":429}}`))
		})

		_, err := client.FetchTokenList(context.Background(), ListOptions{})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	})

	t.Run("transport error hides api key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()
		client, err := NewClient(Config{BaseURL: server.URL, APIKey: testAPIKey})
		require.NoError(t, err)

		_, err = client.FetchTokenList(context.Background(), ListOptions{})
		require.Error(t, err)
		assert.NotContains(t, err.Error(), testAPIKey)
		assert.Contains(t, err.Error(), "REDACTED")
	})
}

func TestFetchTokenDetail(t *testing.T) {
	payload := `{"id":"brett","symbol":"brett","name":"Brett","market_cap_rank":80,
		"detail_platforms":{"base":{"decimal_place":18,"contract_address":"0x532f27101965dd16442e59d40670faf5ebb142e4"}}}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/brett", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("x_cg_demo_api_key"))
		w.Write([]byte(payload))
	})

	detail, err := client.FetchTokenDetail(context.Background(), "brett")
	require.NoError(t, err)
	assert.Equal(t, "brett", detail.ID)

	platform, ok := detail.Platform("base")
	require.True(t, ok)
	assert.Equal(t, "0x532f27101965dd16442e59d40670faf5ebb142e4", platform.ContractAddress)
	require.NotNil(t, platform.DecimalPlace)
	assert.Equal(t, 18, *platform.DecimalPlace)

	// unknown fields survive the round trip
	out, err := json.Marshal(detail)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(out))
}

func TestFetchTokenDetailErrors(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := client.FetchTokenDetail(context.Background(), "")
		assert.True(t, errors.Is(err, ErrEmptyID))
		assert.False(t, called)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"coin not found"}`))
		})

		_, err := client.FetchTokenDetail(context.Background(), "missing")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "coin not found")
	})

	t.Run("non json body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.FetchTokenDetail(context.Background(), "brett")
		require.Error(t, err)
	})
}

func TestNewClientRejectsMalformedBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"space in host", "http://bad host/api/v3"},
		{"relative", "api/v3"},
		{"unsupported scheme", "ftp://api.coingecko.com/api/v3"},
		{"query", "https://api.coingecko.com/api/v3?x_cg_demo_api_key=" + testAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Config{BaseURL: tt.baseURL, APIKey: testAPIKey})
			assert.Nil(t, client)
			require.ErrorIs(t, err, ErrInvalidBaseURL)
			assert.NotContains(t, err.Error(), testAPIKey)
		})
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client, err := NewClient(Config{APIKey: testAPIKey})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL.String())
}

func TestRedactRequestBuildError(t *testing.T) {
	_, buildErr := http.NewRequest(http.MethodGet, "http://bad host/coins/markets?"+apiKeyParam+"="+testAPIKey, nil)
	require.Error(t, buildErr)
	require.Contains(t, buildErr.Error(), testAPIKey)

	err := redact(buildErr)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestFetchTokenDetailEscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/a%20b", r.URL.EscapedPath())
		w.Write([]byte(`{"id":"a b"}`))
	})

	detail, err := client.FetchTokenDetail(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "a b", detail.ID)
}
