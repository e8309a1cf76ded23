package market

import (
	"context"
	"log"
	"strings"
	"sync"
)

// Provider interfaces, satisfied by the HTTP clients in this package and by
// fakes in tests.
type CryptoBatchProvider interface {
	SimplePrice(ctx context.Context, ids []string) (map[string]CoinPrice, error)
}

type CryptoSpotProvider interface {
	TickerPrice(ctx context.Context, symbol string) (float64, error)
}

type ForexProvider interface {
	Rate(ctx context.Context, base, quote string) (float64, error)
}

type IndexProvider interface {
	Closes(ctx context.Context, codes []string) (map[string]float64, error)
}

// PriceItem is one entry of the unified price list. PriceUSD is nil when no
// upstream provider could supply a value.
type PriceItem struct {
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	PriceUSD *float64 `json:"price_usd"`
}

// Aggregator fans requests out to the upstream providers and merges their
// answers into a single list. Upstream failures degrade to nil prices and are
// never returned as errors.
type Aggregator struct {
	catalog   []Symbol
	byKey     map[string]Symbol
	coingecko CryptoBatchProvider
	binance   CryptoSpotProvider
	forex     ForexProvider
	stooq     IndexProvider
}

func NewAggregator(catalog []Symbol, cg CryptoBatchProvider, bn CryptoSpotProvider, fx ForexProvider, sq IndexProvider) *Aggregator {
	byKey := make(map[string]Symbol, len(catalog))
	for _, s := range catalog {
		byKey[s.Key] = s
	}
	return &Aggregator{
		catalog:   catalog,
		byKey:     byKey,
		coingecko: cg,
		binance:   bn,
		forex:     fx,
		stooq:     sq,
	}
}

// GetPrices resolves the requested keys against the catalog, fetches prices
// per asset class and returns items in the caller's key order. Unknown keys
// are dropped silently.
func (a *Aggregator) GetPrices(ctx context.Context, keys []string) ([]PriceItem, error) {
	var items []Symbol
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		if s, ok := a.byKey[k]; ok {
			items = append(items, s)
		}
	}
	if len(items) == 0 {
		return []PriceItem{}, nil
	}

	var cryptoItems, forexItems, indexItems []Symbol
	for _, it := range items {
		switch it.Type {
		case TypeCrypto:
			cryptoItems = append(cryptoItems, it)
		case TypeForex:
			forexItems = append(forexItems, it)
		case TypeIndex:
			indexItems = append(indexItems, it)
		}
	}

	var (
		wg        sync.WaitGroup
		cgPrices  map[string]CoinPrice
		spotMap   map[string]float64
		fxRates   map[string]float64
		stooqMap  map[string]float64
	)

	// The three asset classes hit independent providers.
	wg.Add(3)
	go func() {
		defer wg.Done()
		cgPrices, spotMap = a.fetchCrypto(ctx, cryptoItems)
	}()
	go func() {
		defer wg.Done()
		fxRates = a.fetchForex(ctx, forexItems)
	}()
	go func() {
		defer wg.Done()
		stooqMap = a.fetchIndices(ctx, indexItems)
	}()
	wg.Wait()

	out := make([]PriceItem, 0, len(items))
	for _, it := range items {
		var price *float64
		switch it.Type {
		case TypeCrypto:
			if p, ok := cgPrices[it.CGID]; ok && p.USD != nil {
				price = p.USD
			} else if v, ok := spotMap[it.Key]; ok {
				price = &v
			}
		case TypeForex:
			if v, ok := fxRates[pairKey(it.FX)]; ok {
				price = &v
			}
		case TypeIndex:
			if v, ok := stooqMap[strings.ToLower(it.Stooq)]; ok {
				price = &v
			}
		}
		out = append(out, PriceItem{Key: it.Key, Type: it.Type, Label: it.Label, PriceUSD: price})
	}
	return out, nil
}

// fetchCrypto batches the primary provider and falls back to per-symbol spot
// lookups, concurrently, for any coin the batch left unpriced.
func (a *Aggregator) fetchCrypto(ctx context.Context, items []Symbol) (map[string]CoinPrice, map[string]float64) {
	spotMap := make(map[string]float64)
	if len(items) == 0 {
		return nil, spotMap
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.CGID)
	}
	cgPrices, err := a.coingecko.SimplePrice(ctx, ids)
	if err != nil {
		log.Printf("coingecko error: %v", err)
		cgPrices = map[string]CoinPrice{}
	}

	var missing []Symbol
	for _, it := range items {
		if p, ok := cgPrices[it.CGID]; !ok || p.USD == nil {
			missing = append(missing, it)
		}
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, it := range missing {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			price, err := a.binance.TickerPrice(ctx, sym)
			if err != nil {
				log.Printf("binance price error %s: %v", sym, err)
				return
			}
			mu.Lock()
			spotMap[sym] = price
			mu.Unlock()
		}(it.Key)
	}
	wg.Wait()

	return cgPrices, spotMap
}

// fetchForex looks up each distinct base/quote pair once; items sharing a
// pair reuse its rate.
func (a *Aggregator) fetchForex(ctx context.Context, items []Symbol) map[string]float64 {
	rates := make(map[string]float64)
	if len(items) == 0 {
		return rates
	}

	pairs := make(map[string]*FXPair)
	for _, it := range items {
		pairs[pairKey(it.FX)] = it.FX
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for key, pair := range pairs {
		wg.Add(1)
		go func(key string, pair *FXPair) {
			defer wg.Done()
			rate, err := a.forex.Rate(ctx, pair.Base, pair.Quote)
			if err != nil {
				log.Printf("fx error %s/%s: %v", pair.Base, pair.Quote, err)
				return
			}
			mu.Lock()
			rates[key] = rate
			mu.Unlock()
		}(key, pair)
	}
	wg.Wait()

	return rates
}

func (a *Aggregator) fetchIndices(ctx context.Context, items []Symbol) map[string]float64 {
	if len(items) == 0 {
		return map[string]float64{}
	}

	codes := make([]string, 0, len(items))
	for _, it := range items {
		codes = append(codes, it.Stooq)
	}
	closes, err := a.stooq.Closes(ctx, codes)
	if err != nil {
		log.Printf("stooq error: %v", err)
		return map[string]float64{}
	}
	return closes
}

func pairKey(fx *FXPair) string {
	return fx.Base + "_" + fx.Quote
}
