package v1

import (
	"errors"
	"net/http"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/logger"
	"delivery-quote-backend/pkg/utils"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{domain.ErrMissingDestination, http.StatusBadRequest, "MISSING_DESTINATION"},
	{domain.ErrNoRouteFound, http.StatusUnprocessableEntity, "NO_ROUTE_FOUND"},
	{domain.ErrQuoteFailed, http.StatusBadGateway, "QUOTE_FAILED"},
	{domain.ErrPinMismatch, http.StatusUnauthorized, "PIN_MISMATCH"},
	{domain.ErrRegistrySaveFailed, http.StatusBadGateway, "SAVE_FAILED"},
	{domain.ErrUnknownWarehouse, http.StatusNotFound, "UNKNOWN_WAREHOUSE"},
	{domain.ErrInvalidPricing, http.StatusBadRequest, "INVALID_PRICING"},
	{domain.ErrRegistryRefreshFailed, http.StatusBadGateway, "REFRESH_FAILED"},
}

// writeDomainError maps err to its HTTP status and error code.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			utils.WriteAPIError(w, m.status, m.code, err.Error())
			return
		}
	}
	logger.WithContext(r.Context()).Error().Err(err).Msg("Unhandled error")
	utils.WriteAPIError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
}
