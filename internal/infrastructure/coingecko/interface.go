package coingecko

import (
	"context"

	"github.com/bimakw/meme-swap/internal/domain/entities"
)

// MarketDataClient defines the provider operations the API depends on
type MarketDataClient interface {
	// FetchTokenList returns one page of the category markets listing
	FetchTokenList(ctx context.Context, opts ListOptions) ([]entities.TokenListEntry, error)

	// FetchTokenDetail returns the full record for a single token
	FetchTokenDetail(ctx context.Context, id string) (*entities.TokenDetail, error)
}

// ListOptions shapes a listing request. Nil fields take their defaults,
// anything set is forwarded as is.
type ListOptions struct {
	Sparkline *bool `json:"sparkline,omitempty"`
	Page      *int  `json:"page,omitempty"`
	PerPage   *int  `json:"perPage,omitempty"`
}
