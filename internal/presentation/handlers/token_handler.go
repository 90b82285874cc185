package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bimakw/meme-swap/internal/domain/services"
	"github.com/bimakw/meme-swap/internal/infrastructure/coingecko"
)

// TokenHandler handles token listing and detail requests
type TokenHandler struct {
	tokenService *services.TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

// DetailRequest represents a token detail request
type DetailRequest struct {
	ID string `json:"id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListTokens handles GET /api/v1/tokens
func (h *TokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var opts coingecko.ListOptions
	var err error

	if opts.Sparkline, err = parseOptionalBool(query.Get("sparkline")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_sparkline", "sparkline must be true or false")
		return
	}
	if opts.Page, err = parseOptionalInt(query.Get("page")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
		return
	}
	if opts.PerPage, err = parseOptionalInt(query.Get("perPage")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_per_page", "perPage must be an integer")
		return
	}

	tokens := h.tokenService.ListTokens(r.Context(), opts)
	writeJSON(w, http.StatusOK, tokens)
}

// GetTokenDetail handles POST /api/v1/tokens/detail
func (h *TokenHandler) GetTokenDetail(w http.ResponseWriter, r *http.Request) {
	var req DetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "missing_id", "id is required")
		return
	}

	detail, err := h.tokenService.GetTokenDetail(r.Context(), req.ID)
	if err != nil {
		var apiErr *coingecko.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "token_not_found", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "provider_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func parseOptionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}
