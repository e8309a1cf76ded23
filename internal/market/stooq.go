package market

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type StooqClient struct {
	baseURL string
	client  *http.Client
}

func NewStooqClient(baseURL string) *StooqClient {
	return &StooqClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Closes fetches daily quotes for the given ticker codes in one batched CSV
// request and returns the closing price per code. Codes are matched
// case-insensitively; lines that fail to parse are skipped.
func (c *StooqClient) Closes(ctx context.Context, codes []string) (map[string]float64, error) {
	u := fmt.Sprintf("%s/q/l/?s=%s&i=d", c.baseURL, url.QueryEscape(strings.Join(codes, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stooq: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// CSV layout: Symbol,Date,Time,Open,High,Low,Close,Volume
	closes := make(map[string]float64)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("stooq: empty quote response")
	}
	for _, line := range lines[1:] {
		parts := strings.Split(line, ",")
		if len(parts) < 7 {
			continue
		}
		sym := strings.ToLower(strings.TrimSpace(parts[0]))
		closePrice, err := strconv.ParseFloat(strings.TrimSpace(parts[6]), 64)
		if err != nil || math.IsNaN(closePrice) || math.IsInf(closePrice, 0) {
			continue
		}
		if sym != "" {
			closes[sym] = closePrice
		}
	}
	return closes, nil
}
