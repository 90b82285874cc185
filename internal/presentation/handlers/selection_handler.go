package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/meme-swap/internal/domain/entities"
	"github.com/bimakw/meme-swap/internal/domain/services"
)

// SelectionHandler handles token selection requests
type SelectionHandler struct {
	selectionService *services.SelectionService
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(selectionService *services.SelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

// SelectRequest represents a click on a listing row
type SelectRequest struct {
	WalletAddress string                  `json:"walletAddress"`
	Token         entities.TokenListEntry `json:"token"`
}

// SelectResponse represents the result of a selection
type SelectResponse struct {
	Outcome services.SelectionOutcome `json:"outcome"`
	Token   *entities.CanonicalToken  `json:"token,omitempty"`
}

// SelectToken handles POST /api/v1/tokens/select
func (h *SelectionHandler) SelectToken(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON")
		return
	}

	if req.WalletAddress != "" && !common.IsHexAddress(req.WalletAddress) {
		writeError(w, http.StatusBadRequest, "invalid_wallet", "walletAddress is not a valid address")
		return
	}
	if req.WalletAddress != "" && req.Token.ID == "" {
		writeError(w, http.StatusBadRequest, "missing_id", "token.id is required")
		return
	}

	var selected *entities.CanonicalToken
	result := h.selectionService.SelectToken(r.Context(), req.WalletAddress, req.Token, func(token entities.CanonicalToken) {
		selected = &token
	})

	if result.Outcome == services.OutcomeWalletRequired {
		writeError(w, http.StatusPreconditionRequired, string(result.Outcome), "Please connect your wallet to swap")
		return
	}

	writeJSON(w, http.StatusOK, SelectResponse{
		Outcome: result.Outcome,
		Token:   selected,
	})
}
