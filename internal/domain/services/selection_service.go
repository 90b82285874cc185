package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/bimakw/meme-swap/internal/domain/entities"
	"github.com/bimakw/meme-swap/internal/infrastructure/metrics"
)

var (
	// ErrNoDeployment means the token has no platform entry for Base
	ErrNoDeployment = errors.New("token is not deployed on base")

	// ErrInvalidContractAddress means the Base entry's contract address is not a 20 byte hex address
	ErrInvalidContractAddress = errors.New("invalid contract address")

	// ErrInvalidDecimals means the Base entry's decimal place is missing or does not fit in a uint8
	ErrInvalidDecimals = errors.New("invalid decimal place")
)

// SelectionOutcome is how a selection attempt ended
type SelectionOutcome string

const (
	OutcomeSelected       SelectionOutcome = "selected"
	OutcomeNoDeployment   SelectionOutcome = "no_deployment"
	OutcomeWalletRequired SelectionOutcome = "wallet_required"
	OutcomeFailed         SelectionOutcome = "failed"
)

// SelectionResult reports a selection attempt. Token is set only for
// OutcomeSelected, Err only for OutcomeFailed.
type SelectionResult struct {
	Outcome SelectionOutcome
	Token   *entities.CanonicalToken
	Err     error
}

// MapSelection builds the canonical Base token for a listing entry from its detail record
func MapSelection(entry entities.TokenListEntry, detail *entities.TokenDetail) (entities.CanonicalToken, error) {
	platform, ok := detail.Platform(entities.BasePlatformKey)
	if !ok {
		return entities.CanonicalToken{}, ErrNoDeployment
	}

	if !common.IsHexAddress(platform.ContractAddress) {
		return entities.CanonicalToken{}, fmt.Errorf("%w: %q", ErrInvalidContractAddress, platform.ContractAddress)
	}
	if platform.DecimalPlace == nil || *platform.DecimalPlace < 0 || *platform.DecimalPlace > 255 {
		return entities.CanonicalToken{}, ErrInvalidDecimals
	}

	address := platform.ContractAddress
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		address = "0x" + address
	}

	return entities.CanonicalToken{
		Address:  address,
		ChainID:  entities.BaseChainID,
		Decimals: uint8(*platform.DecimalPlace),
		Name:     entry.Name,
		Symbol:   entry.Symbol,
		Image:    entry.Image,
	}, nil
}

// SelectionService turns a clicked listing entry into a swap token
type SelectionService struct {
	tokens  *TokenService
	metrics *metrics.Collector
	log     zerolog.Logger
}

// NewSelectionService creates a new selection service
func NewSelectionService(tokens *TokenService, m *metrics.Collector, log zerolog.Logger) *SelectionService {
	return &SelectionService{
		tokens:  tokens,
		metrics: m,
		log:     log.With().Str("component", "selection").Logger(),
	}
}

// SelectToken resolves entry on Base and calls onSelected with the result.
// onSelected runs at most once and only for OutcomeSelected. Failures are
// logged and reported through the result, never returned as errors.
func (s *SelectionService) SelectToken(ctx context.Context, wallet string, entry entities.TokenListEntry, onSelected func(entities.CanonicalToken)) SelectionResult {
	result := s.selectToken(ctx, wallet, entry)
	s.metrics.ObserveSelection(string(result.Outcome))

	if result.Outcome == OutcomeSelected && onSelected != nil {
		onSelected(*result.Token)
	}
	return result
}

func (s *SelectionService) selectToken(ctx context.Context, wallet string, entry entities.TokenListEntry) SelectionResult {
	if wallet == "" {
		return SelectionResult{Outcome: OutcomeWalletRequired}
	}

	detail, err := s.tokens.GetTokenDetail(ctx, entry.ID)
	if err != nil {
		s.log.Error().Err(err).Str("token", entry.ID).Msg("Error selecting token")
		return SelectionResult{Outcome: OutcomeFailed, Err: err}
	}

	token, err := MapSelection(entry, detail)
	switch {
	case errors.Is(err, ErrNoDeployment):
		s.log.Debug().Str("token", entry.ID).Msg("Token has no base deployment")
		return SelectionResult{Outcome: OutcomeNoDeployment}
	case err != nil:
		s.log.Error().Err(err).Str("token", entry.ID).Msg("Error selecting token")
		return SelectionResult{Outcome: OutcomeFailed, Err: err}
	}

	return SelectionResult{Outcome: OutcomeSelected, Token: &token}
}
