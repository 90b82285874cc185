package entities

import (
	"encoding/json"
	"fmt"
)

// Platform is a token's deployment on a single chain
type Platform struct {
	ContractAddress string `json:"contract_address"`
	DecimalPlace    *int   `json:"decimal_place"`
}

// TokenDetail is the provider's full record for a single token.
// Only the fields the selection flow needs are decoded; the original
// payload is kept so it can be proxied back unchanged.
type TokenDetail struct {
	ID              string              `json:"id"`
	Symbol          string              `json:"symbol"`
	Name            string              `json:"name"`
	DetailPlatforms map[string]Platform `json:"detail_platforms"`

	raw json.RawMessage
}

// ParseTokenDetail decodes a provider detail payload
func ParseTokenDetail(data []byte) (*TokenDetail, error) {
	var detail TokenDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse token detail: %w", err)
	}
	detail.raw = append(json.RawMessage(nil), data...)
	return &detail, nil
}

// Platform returns the deployment for the given chain key
func (d *TokenDetail) Platform(key string) (Platform, bool) {
	if d == nil || d.DetailPlatforms == nil {
		return Platform{}, false
	}
	p, ok := d.DetailPlatforms[key]
	return p, ok
}

// Raw returns the payload the detail was parsed from, or nil
func (d *TokenDetail) Raw() json.RawMessage {
	return d.raw
}

// MarshalJSON emits the original provider payload when one is available
func (d TokenDetail) MarshalJSON() ([]byte, error) {
	if len(d.raw) > 0 {
		return d.raw, nil
	}
	type plain TokenDetail
	return json.Marshal(plain(d))
}
