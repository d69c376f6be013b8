// Package marketdata fetches quotes and exchange listings from Alpha Vantage.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ListingRow is one entry of the exchange listing.
type ListingRow struct {
	Symbol    string
	Name      string
	Exchange  string
	AssetType string
	Status    string
}

// Client calls the Alpha Vantage HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a market data client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// globalQuoteResponse mirrors the GLOBAL_QUOTE JSON shape.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// Quote fetches the current price for a symbol, in cents.
// Any non-200 status, malformed body, or empty quote is an error.
func (c *Client) Quote(ctx context.Context, symbol string) (int64, error) {
	url := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s", c.baseURL, symbol, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var result globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode quote for %s: %w", symbol, err)
	}
	if result.GlobalQuote.Price == "" {
		return 0, fmt.Errorf("quote for %s: empty price field", symbol)
	}

	return parseCents(result.GlobalQuote.Price)
}

// Listing fetches the full exchange listing as CSV.
// Any non-200 status or unparseable body is an error.
func (c *Client) Listing(ctx context.Context) ([]ListingRow, error) {
	url := fmt.Sprintf("%s/query?function=LISTING_STATUS&market=NASDAQ&apikey=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing body: %w", err)
	}

	return parseListing(string(body))
}

// parseListing splits the LISTING_STATUS CSV by line and comma. Columns are
// located via the header row so extra columns (ipoDate, delistingDate) are
// ignored. The provider terminates lines with \r\n, so a trailing carriage
// return is trimmed from every row before splitting.
func parseListing(body string) ([]ListingRow, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 1 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("listing: empty body")
	}

	headers := strings.Split(strings.TrimRight(lines[0], "\r"), ",")
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	for _, col := range []string{"symbol", "name", "exchange", "assetType", "status"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("listing: missing column %q", col)
		}
	}

	var rows []ListingRow
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) < len(headers) {
			return nil, fmt.Errorf("listing: malformed row %q", line)
		}
		rows = append(rows, ListingRow{
			Symbol:    cols[index["symbol"]],
			Name:      cols[index["name"]],
			Exchange:  cols[index["exchange"]],
			AssetType: cols[index["assetType"]],
			Status:    cols[index["status"]],
		})
	}

	return rows, nil
}

// parseCents converts a decimal price string (e.g. "123.4500") to cents.
func parseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
