package v1

import (
	"context"
	"net/http"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/utils"
)

type SettingsService interface {
	Unlock(pin string) (string, error)
	Load(ctx context.Context) ([]domain.Warehouse, string)
	Save(ctx context.Context, inputs []domain.WarehouseInput) ([]domain.Warehouse, error)
}

type SettingsHandler struct {
	settings    SettingsService
	secure      bool
	tokenMaxAge int
}

// NewSettingsHandler wires the settings screen. secure marks the session cookie
// as HTTPS-only.
func NewSettingsHandler(settings SettingsService, secure bool, tokenMaxAge int) *SettingsHandler {
	return &SettingsHandler{
		settings:    settings,
		secure:      secure,
		tokenMaxAge: tokenMaxAge,
	}
}

type UnlockRequest struct {
	Pin string `json:"pin"`
}

type SettingsResponse struct {
	Warehouses []domain.Warehouse `json:"warehouses"`
	LoadError  string             `json:"loadError,omitempty"`
}

type SaveSettingsRequest struct {
	Warehouses []domain.WarehouseInput `json:"warehouses"`
}

func (h *SettingsHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteAPIError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request payload")
		return
	}

	token, err := h.settings.Unlock(req.Pin)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "settingsToken",
		Value:    token,
		Path:     "/api/v1/settings",
		MaxAge:   h.tokenMaxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *SettingsHandler) GetWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, loadErr := h.settings.Load(r.Context())
	utils.WriteJSON(w, http.StatusOK, SettingsResponse{Warehouses: warehouses, LoadError: loadErr})
}

func (h *SettingsHandler) SaveWarehouses(w http.ResponseWriter, r *http.Request) {
	var req SaveSettingsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteAPIError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request payload")
		return
	}

	saved, err := h.settings.Save(r.Context(), req.Warehouses)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, SettingsResponse{Warehouses: saved})
}
