package cargo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimited marks a query the remote side refused because of request
// throttling. It is the only error class the Runner retries.
var ErrRateLimited = errors.New("rate limited")

// Client executes cargo queries against a MediaWiki api.php endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient returns a cargo client for the given api.php base URL.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// cargoResponse is the wire shape of an action=cargoquery result.
type cargoResponse struct {
	CargoQuery []struct {
		Title map[string]string `json:"title"`
	} `json:"cargoquery"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Run executes one cargo query and returns its rows in response order.
// A throttled response (HTTP 429 or a MediaWiki ratelimited error code)
// is reported as ErrRateLimited.
func (c *Client) Run(q Query) ([]Row, error) {
	params := url.Values{}
	params.Set("action", "cargoquery")
	params.Set("format", "json")
	params.Set("tables", q.Tables)
	params.Set("fields", strings.Join(q.Fields, ", "))
	if q.JoinOn != "" {
		params.Set("join_on", q.JoinOn)
	}
	if w := q.WhereString(); w != "" {
		params.Set("where", w)
	}
	if q.OrderBy != "" {
		params.Set("order_by", q.OrderBy)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequest("GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cargo query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("cargo query: HTTP 429: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cargo query: HTTP %d", resp.StatusCode)
	}

	var body cargoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cargo query: decode: %w", err)
	}
	if body.Error != nil {
		if body.Error.Code == "ratelimited" {
			return nil, fmt.Errorf("cargo query: %s: %w", body.Error.Info, ErrRateLimited)
		}
		return nil, fmt.Errorf("cargo query: %s: %s", body.Error.Code, body.Error.Info)
	}

	rows := make([]Row, 0, len(body.CargoQuery))
	for _, item := range body.CargoQuery {
		rows = append(rows, Row(item.Title))
	}
	return rows, nil
}
