package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type BinanceClient struct {
	baseURL string
	client  *http.Client
}

func NewBinanceClient(baseURL string) *BinanceClient {
	return &BinanceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 8 * time.Second},
	}
}

// TickerPrice fetches the spot price for a single symbol such as "BTCUSDT".
func (c *BinanceClient) TickerPrice(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, url.QueryEscape(symbol))

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
		return 0, fmt.Errorf("binance: unexpected status %d", resp.StatusCode)
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, fmt.Errorf("binance: decoding response: %w", err)
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("binance: non-numeric price %q for %s", ticker.Price, symbol)
	}
	return price, nil
}
