package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"setu/internal/domain/commerce"
	"setu/internal/ports"
	"setu/internal/usecase/listing"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps usecase errors onto HTTP statuses: missing rows
// are 404, domain-rule violations 422, stale status races 409, everything
// else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ports.ErrFarmerNotFound),
		errors.Is(err, ports.ErrCatalogNotFound),
		errors.Is(err, listing.ErrBidNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, commerce.ErrInvalidTransition),
		errors.Is(err, commerce.ErrUnknownStatus),
		errors.Is(err, commerce.ErrDescriptorRequired),
		errors.Is(err, commerce.ErrPriceNotPositive),
		errors.Is(err, commerce.ErrQuantityNotPositive):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ports.ErrStatusConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) decodeAndValidate(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return err
	}
	return s.validate.Struct(target)
}
