package v1

import (
	"context"
	"net/http"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/logger"
	"delivery-quote-backend/pkg/utils"
)

type AddressSearcher interface {
	SearchAddress(ctx context.Context, query string) ([]domain.Destination, error)
}

type AddressHandler struct {
	searcher AddressSearcher
}

func NewAddressHandler(searcher AddressSearcher) *AddressHandler {
	return &AddressHandler{searcher: searcher}
}

func (h *AddressHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > 256 {
		utils.WriteAPIError(w, http.StatusBadRequest, "QUERY_TOO_LONG", "Search query is too long")
		return
	}

	results, err := h.searcher.SearchAddress(r.Context(), query)
	if err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Msg("Address search failed")
		utils.WriteAPIError(w, http.StatusBadGateway, "SEARCH_FAILED", "Address search is unavailable")
		return
	}

	utils.WriteJSON(w, http.StatusOK, results)
}
