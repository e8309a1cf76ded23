package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"orumgs-api/internal/market"
	"orumgs-api/internal/responses"
)

type priceList struct {
	Items []market.PriceItem `json:"items"`
}

func Top30List(svc *market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.SendJSON(w, http.StatusOK, svc.Catalog())
	}
}

// MarketPrices serves the unified price list for a comma-separated key set.
func MarketPrices(svc *market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var keys []string
		for _, k := range strings.Split(r.URL.Query().Get("keys"), ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			responses.SendJSON(w, http.StatusOK, priceList{Items: []market.PriceItem{}})
			return
		}

		items, err := svc.GetPrices(r.Context(), keys)
		if err != nil {
			log.Printf("market-prices error: %v", err)
			responses.SendJSON(w, http.StatusBadGateway, priceList{Items: []market.PriceItem{}})
			return
		}
		responses.SendJSON(w, http.StatusOK, priceList{Items: items})
	}
}

// CryptoPrices is the legacy endpoint kept for the existing front end: it
// passes the primary provider's per-coin map through unchanged.
func CryptoPrices(provider market.CryptoBatchProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idsParam := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("ids")))
		if idsParam == "" {
			idsParam = "bitcoin,ethereum,dogecoin"
		}

		prices, err := provider.SimplePrice(r.Context(), strings.Split(idsParam, ","))
		if err != nil {
			log.Printf("crypto-prices error: %v", err)
			responses.SendErrorResponse(w, http.StatusBadGateway, "Failed to fetch prices")
			return
		}
		responses.SendJSON(w, http.StatusOK, prices)
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.SendJSON(w, http.StatusOK, map[string]interface{}{
			"ok": true,
			"ts": time.Now().UnixMilli(),
		})
	}
}
