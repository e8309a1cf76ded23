package market

// Asset classes in the symbol catalog.
const (
	TypeCrypto = "crypto"
	TypeForex  = "forex"
	TypeIndex  = "index"
)

type FXPair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// Symbol is a static catalog entry. Not user-editable.
type Symbol struct {
	Key      string  `json:"key"`
	Type     string  `json:"type"`
	Label    string  `json:"label"`
	TVSymbol string  `json:"tv_symbol"`
	CGID     string  `json:"cg_id,omitempty"`
	FX       *FXPair `json:"fx,omitempty"`
	Stooq    string  `json:"stooq,omitempty"`
}

// top30 is the mixed crypto/forex/index catalog served to the front end.
var top30 = []Symbol{
	// Crypto (Binance USDT pairs, priced via CoinGecko)
	{Key: "BTCUSDT", Type: TypeCrypto, Label: "BTCUSDT (Bitcoin)", TVSymbol: "BINANCE:BTCUSDT", CGID: "bitcoin"},
	{Key: "ETHUSDT", Type: TypeCrypto, Label: "ETHUSDT (Ethereum)", TVSymbol: "BINANCE:ETHUSDT", CGID: "ethereum"},
	{Key: "BNBUSDT", Type: TypeCrypto, Label: "BNBUSDT (BNB)", TVSymbol: "BINANCE:BNBUSDT", CGID: "binancecoin"},
	{Key: "SOLUSDT", Type: TypeCrypto, Label: "SOLUSDT (Solana)", TVSymbol: "BINANCE:SOLUSDT", CGID: "solana"},
	{Key: "XRPUSDT", Type: TypeCrypto, Label: "XRPUSDT (XRP)", TVSymbol: "BINANCE:XRPUSDT", CGID: "ripple"},
	{Key: "ADAUSDT", Type: TypeCrypto, Label: "ADAUSDT (Cardano)", TVSymbol: "BINANCE:ADAUSDT", CGID: "cardano"},
	{Key: "DOGEUSDT", Type: TypeCrypto, Label: "DOGEUSDT (Dogecoin)", TVSymbol: "BINANCE:DOGEUSDT", CGID: "dogecoin"},
	{Key: "AVAXUSDT", Type: TypeCrypto, Label: "AVAXUSDT (Avalanche)", TVSymbol: "BINANCE:AVAXUSDT", CGID: "avalanche-2"},
	{Key: "TRXUSDT", Type: TypeCrypto, Label: "TRXUSDT (TRON)", TVSymbol: "BINANCE:TRXUSDT", CGID: "tron"},
	{Key: "TONUSDT", Type: TypeCrypto, Label: "TONUSDT (TON)", TVSymbol: "BINANCE:TONUSDT", CGID: "the-open-network"},
	{Key: "LINKUSDT", Type: TypeCrypto, Label: "LINKUSDT (Chainlink)", TVSymbol: "BINANCE:LINKUSDT", CGID: "chainlink"},
	{Key: "MATICUSDT", Type: TypeCrypto, Label: "MATICUSDT (Polygon)", TVSymbol: "BINANCE:MATICUSDT", CGID: "matic-network"},
	{Key: "DOTUSDT", Type: TypeCrypto, Label: "DOTUSDT (Polkadot)", TVSymbol: "BINANCE:DOTUSDT", CGID: "polkadot"},
	{Key: "LTCUSDT", Type: TypeCrypto, Label: "LTCUSDT (Litecoin)", TVSymbol: "BINANCE:LTCUSDT", CGID: "litecoin"},
	{Key: "BCHUSDT", Type: TypeCrypto, Label: "BCHUSDT (Bitcoin Cash)", TVSymbol: "BINANCE:BCHUSDT", CGID: "bitcoin-cash"},
	{Key: "ATOMUSDT", Type: TypeCrypto, Label: "ATOMUSDT (Cosmos)", TVSymbol: "BINANCE:ATOMUSDT", CGID: "cosmos"},
	{Key: "ARBUSDT", Type: TypeCrypto, Label: "ARBUSDT (Arbitrum)", TVSymbol: "BINANCE:ARBUSDT", CGID: "arbitrum"},
	{Key: "OPUSDT", Type: TypeCrypto, Label: "OPUSDT (Optimism)", TVSymbol: "BINANCE:OPUSDT", CGID: "optimism"},

	// Forex
	{Key: "EURUSD", Type: TypeForex, Label: "EURUSD", TVSymbol: "FX:EURUSD", FX: &FXPair{Base: "EUR", Quote: "USD"}},
	{Key: "USDJPY", Type: TypeForex, Label: "USDJPY", TVSymbol: "FX:USDJPY", FX: &FXPair{Base: "USD", Quote: "JPY"}},
	{Key: "GBPUSD", Type: TypeForex, Label: "GBPUSD", TVSymbol: "FX:GBPUSD", FX: &FXPair{Base: "GBP", Quote: "USD"}},
	{Key: "USDCHF", Type: TypeForex, Label: "USDCHF", TVSymbol: "FX:USDCHF", FX: &FXPair{Base: "USD", Quote: "CHF"}},
	{Key: "AUDUSD", Type: TypeForex, Label: "AUDUSD", TVSymbol: "FX:AUDUSD", FX: &FXPair{Base: "AUD", Quote: "USD"}},
	{Key: "USDCAD", Type: TypeForex, Label: "USDCAD", TVSymbol: "FX:USDCAD", FX: &FXPair{Base: "USD", Quote: "CAD"}},
	{Key: "EURJPY", Type: TypeForex, Label: "EURJPY", TVSymbol: "FX:EURJPY", FX: &FXPair{Base: "EUR", Quote: "JPY"}},
	{Key: "GBPJPY", Type: TypeForex, Label: "GBPJPY", TVSymbol: "FX:GBPJPY", FX: &FXPair{Base: "GBP", Quote: "JPY"}},

	// Indices (Stooq daily close)
	{Key: "SPX", Type: TypeIndex, Label: "SPX (S&P 500)", TVSymbol: "SP:SPX", Stooq: "^spx"},
	{Key: "DJI", Type: TypeIndex, Label: "DJI (Dow Jones)", TVSymbol: "DJ:DJI", Stooq: "^dji"},
	{Key: "NDX", Type: TypeIndex, Label: "NDX (Nasdaq 100)", TVSymbol: "NASDAQ:NDX", Stooq: "^ndx"},
	{Key: "NKX", Type: TypeIndex, Label: "NKX (Nikkei 225)", TVSymbol: "TVC:NI225", Stooq: "^nkx"},
}

// Catalog returns the full static symbol descriptor list.
func Catalog() []Symbol {
	return top30
}
