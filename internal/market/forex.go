package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ExchangeRateClient struct {
	baseURL string
	client  *http.Client
}

func NewExchangeRateClient(baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Rate fetches the conversion rate for one base/quote currency pair.
func (c *ExchangeRateClient) Rate(ctx context.Context, base, quote string) (float64, error) {
	u := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		c.baseURL, url.QueryEscape(base), url.QueryEscape(quote))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchangerate: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("exchangerate: decoding response: %w", err)
	}

	rate, ok := payload.Rates[quote]
	if !ok {
		return 0, fmt.Errorf("exchangerate: no rate for %s/%s", base, quote)
	}
	return rate, nil
}
