package market

import "context"

// Service is the read-through composition of cache and aggregator used by the
// HTTP layer.
type Service struct {
	agg   *Aggregator
	cache *PriceCache
}

func NewService(agg *Aggregator, cache *PriceCache) *Service {
	return &Service{agg: agg, cache: cache}
}

// Catalog returns the static symbol descriptor list.
func (s *Service) Catalog() []Symbol {
	return s.agg.catalog
}

// GetPrices serves a cached response within the freshness window, otherwise
// re-aggregates and stores the result.
func (s *Service) GetPrices(ctx context.Context, keys []string) ([]PriceItem, error) {
	if items, ok := s.cache.Get(keys); ok {
		return items, nil
	}

	items, err := s.agg.GetPrices(ctx, keys)
	if err != nil {
		return nil, err
	}
	s.cache.Put(keys, items)
	return items, nil
}
