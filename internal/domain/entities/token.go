package entities

import "encoding/json"

// BaseChainID is the chain id of Base, the only network swaps are routed on
const BaseChainID = 8453

// BasePlatformKey is the provider's platform key for BaseChainID
const BasePlatformKey = "base"

// CanonicalToken is the on-chain token reference handed to the swap widget.
// Address is the 0x-prefixed contract address exactly as the provider wrote it.
type CanonicalToken struct {
	Address  string `json:"address"`
	ChainID  int    `json:"chainId"`
	Decimals uint8  `json:"decimals"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Image    string `json:"image"`
}

// Sparkline holds the 7 day price series returned when sparkline=true
type Sparkline struct {
	Price []float64 `json:"price"`
}

// TokenListEntry is one row of the category markets listing.
// Nullable provider fields are pointers. A decoded row keeps its original
// JSON and is encoded back byte for byte, including fields not listed here.
type TokenListEntry struct {
	ID                       string     `json:"id"`
	Symbol                   string     `json:"symbol"`
	Name                     string     `json:"name"`
	Image                    string     `json:"image"`
	CurrentPrice             *float64   `json:"current_price"`
	MarketCap                *float64   `json:"market_cap"`
	MarketCapRank            *int       `json:"market_cap_rank"`
	FullyDilutedValuation    *float64   `json:"fully_diluted_valuation"`
	TotalVolume              *float64   `json:"total_volume"`
	High24h                  *float64   `json:"high_24h"`
	Low24h                   *float64   `json:"low_24h"`
	PriceChange24h           *float64   `json:"price_change_24h"`
	PriceChangePercentage24h *float64   `json:"price_change_percentage_24h"`
	CirculatingSupply        *float64   `json:"circulating_supply"`
	TotalSupply              *float64   `json:"total_supply"`
	MaxSupply                *float64   `json:"max_supply"`
	ATH                      *float64   `json:"ath"`
	ATL                      *float64   `json:"atl"`
	LastUpdated              string     `json:"last_updated,omitempty"`
	SparklineIn7d            *Sparkline `json:"sparkline_in_7d,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the typed fields and keeps the payload
func (e *TokenListEntry) UnmarshalJSON(data []byte) error {
	type plain TokenListEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = TokenListEntry(p)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the payload the entry was decoded from, if any
func (e TokenListEntry) MarshalJSON() ([]byte, error) {
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	type plain TokenListEntry
	return json.Marshal(plain(e))
}
