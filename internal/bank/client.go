// Package bank implements the REST client for the banking-data aggregator.
//
// The aggregator exposes account and transaction endpoints behind a per-user
// access token. Obtaining that token (the link / token-exchange flow) is the
// aggregator's own concern; this client only spends tokens it is handed.
package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoToken is returned when a request is attempted without an access token.
var ErrNoToken = errors.New("no aggregator access token")

// Client talks to the aggregator's REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the aggregator at baseURL.
func New(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("missing aggregator base URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid aggregator base URL: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				MaxIdleConnsPerHost:   4,
			},
		},
	}, nil
}

// Accounts returns the user's linked accounts.
func (c *Client) Accounts(ctx context.Context, token string) ([]Account, error) {
	var out struct {
		Accounts []Account `json:"accounts"`
	}
	if err := c.get(ctx, token, "/accounts", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	return out.Accounts, nil
}

// Recent returns the raw transactions booked in the window [end-days,
// end]. Records are returned exactly as the aggregator sent them;
// normalization happens in the detection engine.
func (c *Client) Recent(ctx context.Context, token string, end time.Time, days int) ([]Transaction, error) {
	start := end.AddDate(0, 0, -days)
	q := url.Values{
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
	}
	var out struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.get(ctx, token, "/transactions", q, &out); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	slog.InfoContext(ctx, "Fetched transaction window",
		"count", len(out.Transactions),
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"))
	return out.Transactions, nil
}

func (c *Client) get(ctx context.Context, token, path string, q url.Values, out any) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("aggregator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded slice of the body for error context.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("aggregator returned %s: %s",
			strconv.Itoa(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode aggregator response: %w", err)
	}
	return nil
}
