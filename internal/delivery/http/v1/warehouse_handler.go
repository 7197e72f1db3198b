package v1

import (
	"context"
	"net/http"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/utils"
)

// WarehouseRegistry is the read side of the registry used by the calculator.
type WarehouseRegistry interface {
	LoadLocal() []domain.Warehouse
	RefreshFromRemote(ctx context.Context) ([]domain.Warehouse, error)
}

type WarehouseHandler struct {
	registry WarehouseRegistry
}

func NewWarehouseHandler(registry WarehouseRegistry) *WarehouseHandler {
	return &WarehouseHandler{registry: registry}
}

// ListWarehouses returns the cached view. With ?refresh=true the remote store is
// consulted first; a failed refresh still returns the cached view, flagged with
// the X-Data-Stale header.
func (h *WarehouseHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") != "true" {
		utils.WriteJSON(w, http.StatusOK, h.registry.LoadLocal())
		return
	}

	warehouses, err := h.registry.RefreshFromRemote(r.Context())
	if err != nil {
		w.Header().Set("X-Data-Stale", "true")
	}
	utils.WriteJSON(w, http.StatusOK, warehouses)
}
