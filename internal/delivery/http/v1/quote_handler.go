package v1

import (
	"context"
	"net/http"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

type QuoteEngine interface {
	QuoteForWarehouse(ctx context.Context, warehouseID string, dest *domain.Coordinate) (*domain.Quote, error)
}

type QuoteHandler struct {
	engine QuoteEngine
}

func NewQuoteHandler(engine QuoteEngine) *QuoteHandler {
	return &QuoteHandler{engine: engine}
}

type QuoteRequest struct {
	WarehouseID string              `json:"warehouseId"`
	Destination *domain.Destination `json:"destination"`
}

// QuoteDisplay holds the amounts formatted for the quote card.
type QuoteDisplay struct {
	DistanceKm string `json:"distanceKm"`
	ExtraKm    string `json:"extraKm"`
	FlatFee    string `json:"flatFee"`
	ExtraFee   string `json:"extraFee"`
	Total      string `json:"total"`
}

type QuoteResponse struct {
	*domain.Quote
	Address string       `json:"address,omitempty"`
	Display QuoteDisplay `json:"display"`
}

func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteAPIError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request payload")
		return
	}

	var dest *domain.Coordinate
	if req.Destination != nil {
		c := req.Destination.Coordinate()
		dest = &c
	}

	q, err := h.engine.QuoteForWarehouse(r.Context(), req.WarehouseID, dest)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := QuoteResponse{
		Quote:   q,
		Display: displayQuote(q),
	}
	if req.Destination != nil {
		resp.Address = req.Destination.Address
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func displayQuote(q *domain.Quote) QuoteDisplay {
	return QuoteDisplay{
		DistanceKm: decimal.NewFromFloat(q.DistanceKm).StringFixed(1),
		ExtraKm:    decimal.NewFromFloat(q.ExtraKm).StringFixed(1),
		FlatFee:    decimal.NewFromFloat(q.FlatFee).StringFixed(2),
		ExtraFee:   decimal.NewFromFloat(q.ExtraFee).StringFixed(2),
		Total:      decimal.NewFromFloat(q.Total).StringFixed(2),
	}
}
