package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orumgs-api/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCoinGecko struct {
	prices map[string]market.CoinPrice
	err    error
}

func (s *stubCoinGecko) SimplePrice(ctx context.Context, ids []string) (map[string]market.CoinPrice, error) {
	return s.prices, s.err
}

type stubBinance struct{}

func (stubBinance) TickerPrice(ctx context.Context, symbol string) (float64, error) {
	return 0, errors.New("unavailable")
}

type stubForex struct {
	rates map[string]float64
}

func (s *stubForex) Rate(ctx context.Context, base, quote string) (float64, error) {
	r, ok := s.rates[base+"_"+quote]
	if !ok {
		return 0, errors.New("unavailable")
	}
	return r, nil
}

type stubStooq struct{}

func (stubStooq) Closes(ctx context.Context, codes []string) (map[string]float64, error) {
	return nil, errors.New("unavailable")
}

func newMarketService(cg *stubCoinGecko, fx *stubForex) *market.Service {
	agg := market.NewAggregator(market.Catalog(), cg, stubBinance{}, fx, stubStooq{})
	return market.NewService(agg, market.NewPriceCache(10*time.Second))
}

func usd(v float64) *float64 { return &v }

func TestMarketPrices_EmptyKeysReturnEmptyItems(t *testing.T) {
	t.Parallel()

	svc := newMarketService(&stubCoinGecko{}, &stubForex{})
	req := httptest.NewRequest(http.MethodGet, "/api/public/market-prices", nil)
	rec := httptest.NewRecorder()
	MarketPrices(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestMarketPrices_OrderAndShape(t *testing.T) {
	t.Parallel()

	svc := newMarketService(
		&stubCoinGecko{prices: map[string]market.CoinPrice{"bitcoin": {USD: usd(65000)}}},
		&stubForex{rates: map[string]float64{"EUR_USD": 1.09}},
	)
	req := httptest.NewRequest(http.MethodGet, "/api/public/market-prices?keys=BTCUSDT,EURUSD", nil)
	rec := httptest.NewRecorder()
	MarketPrices(svc)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			Key      string   `json:"key"`
			Type     string   `json:"type"`
			Label    string   `json:"label"`
			PriceUSD *float64 `json:"price_usd"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)

	assert.Equal(t, "BTCUSDT", resp.Items[0].Key)
	assert.Equal(t, "crypto", resp.Items[0].Type)
	require.NotNil(t, resp.Items[0].PriceUSD)
	assert.Equal(t, 65000.0, *resp.Items[0].PriceUSD)

	assert.Equal(t, "EURUSD", resp.Items[1].Key)
	assert.Equal(t, "forex", resp.Items[1].Type)
	require.NotNil(t, resp.Items[1].PriceUSD)
	assert.Equal(t, 1.09, *resp.Items[1].PriceUSD)
}

func TestMarketPrices_TotalOutageStillSucceedsWithNulls(t *testing.T) {
	t.Parallel()

	svc := newMarketService(&stubCoinGecko{err: errors.New("down")}, &stubForex{})
	req := httptest.NewRequest(http.MethodGet, "/api/public/market-prices?keys=BTCUSDT,EURUSD,SPX", nil)
	rec := httptest.NewRecorder()
	MarketPrices(svc)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []market.PriceItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	for _, it := range resp.Items {
		assert.Nil(t, it.PriceUSD)
	}
}

func TestCryptoPrices_PassthroughAndDefaults(t *testing.T) {
	t.Parallel()

	cg := &stubCoinGecko{prices: map[string]market.CoinPrice{
		"bitcoin":  {USD: usd(65000)},
		"ethereum": {USD: usd(3500)},
		"dogecoin": {USD: usd(0.1)},
	}}
	req := httptest.NewRequest(http.MethodGet, "/api/public/crypto-prices", nil)
	rec := httptest.NewRecorder()
	CryptoPrices(cg)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bitcoin":{"usd":65000},"ethereum":{"usd":3500},"dogecoin":{"usd":0.1}}`, rec.Body.String())
}

func TestCryptoPrices_UpstreamFailureIsBadGateway(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/public/crypto-prices?ids=bitcoin", nil)
	rec := httptest.NewRecorder()
	CryptoPrices(&stubCoinGecko{err: errors.New("down")})(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTop30List(t *testing.T) {
	t.Parallel()

	svc := newMarketService(&stubCoinGecko{}, &stubForex{})
	req := httptest.NewRequest(http.MethodGet, "/api/public/top30-list", nil)
	rec := httptest.NewRecorder()
	Top30List(svc)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog []market.Symbol
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog, 30)
	assert.Equal(t, "BTCUSDT", catalog[0].Key)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	Health()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK bool  `json:"ok"`
		TS int64 `json:"ts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.InDelta(t, time.Now().UnixMilli(), resp.TS, 5000)
}
