package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bimakw/meme-swap/internal/domain/entities"
	"github.com/bimakw/meme-swap/internal/infrastructure/coingecko"
)

// TokenService exposes the provider's listing and detail lookups
type TokenService struct {
	client coingecko.MarketDataClient
	log    zerolog.Logger
}

// NewTokenService creates a new token service
func NewTokenService(client coingecko.MarketDataClient, log zerolog.Logger) *TokenService {
	return &TokenService{
		client: client,
		log:    log.With().Str("component", "tokens").Logger(),
	}
}

// ListTokens returns one page of the listing. A failed fetch is logged
// and reported as an empty page.
func (s *TokenService) ListTokens(ctx context.Context, opts coingecko.ListOptions) []entities.TokenListEntry {
	entries, err := s.client.FetchTokenList(ctx, opts)
	if err != nil {
		s.log.Error().
			Err(err).
			Interface("options", opts).
			Msg("Failed to fetch token list")
		return []entities.TokenListEntry{}
	}

	if entries == nil {
		return []entities.TokenListEntry{}
	}
	return entries
}

// GetTokenDetail returns the provider's record for id. Errors are
// returned to the caller untouched.
func (s *TokenService) GetTokenDetail(ctx context.Context, id string) (*entities.TokenDetail, error) {
	return s.client.FetchTokenDetail(ctx, id)
}
